package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"todo/internal/task"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrOutOfRange indicates a task number past the end of the list.
var ErrOutOfRange = errors.New("task number out of range")

// ParseTaskRef parses the task number in args[0].
// Task numbers are 1-based positions in the unfiltered list, as printed by `todo list`.
// Returns the number and the remaining args.
func ParseTaskRef(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskRefRequired
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, nil, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, args[1:], nil
}

// ResolveTaskRef returns the task at 1-based position num.
func ResolveTaskRef(tasks task.Store, num int) (task.Task, error) {
	if num < 1 || num > len(tasks) {
		return task.Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, num)
	}
	return tasks[num-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
