package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

// lookupTask parses the task number at the front of args and resolves it.
// On failure it reports the error on errOut and returns the exit code.
func lookupTask(svc service.Service, args []string, errOut io.Writer) (task.Task, []string, int) {
	num, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, nil, exitcode.UserError
	}

	t, err := ResolveTaskRef(svc.Tasks(), num)
	if err != nil {
		if errors.Is(err, ErrOutOfRange) {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return task.Task{}, nil, exitcode.UserError
	}
	return t, rest, exitcode.Success
}
