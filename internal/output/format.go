// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

const (
	// NoTasks is printed when the list is empty.
	NoTasks = "no tasks found"

	// NoMatches is printed when a filter hides every task.
	NoMatches = "no matching tasks"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TEXT}\n" (4-wide right-aligned number, two spaces, checkbox, text)
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(t.Completed), NormalizeText(t.Text))
}

// FormatSummary formats the counts line printed after a list.
func FormatSummary(w io.Writer, c task.Counts) {
	fmt.Fprintf(w, "%d tasks, %d active, %d completed\n", c.Total, c.Active, c.Completed)
}

// Checkbox renders a completion flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeText normalizes task text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
