// Package service defines the front-end contract for task list operations.
package service

import (
	"context"

	"todo/internal/task"
)

// Service defines the operations the CLI commands and the interactive widget
// drive. Front ends never import a storage backend directly.
type Service interface {
	// Tasks returns a snapshot of the task list in insertion order.
	Tasks() task.Store

	// AddTask appends a task. Blank text is silently ignored (added is false).
	AddTask(ctx context.Context, text string) (t task.Task, added bool, err error)

	// ToggleCompletion flips the completed flag of a task.
	// A missing id is a no-op (changed is false).
	ToggleCompletion(ctx context.Context, id int64) (changed bool, err error)

	// DeleteTask removes a task. A missing id is a no-op.
	DeleteTask(ctx context.Context, id int64) (changed bool, err error)

	// StartEdit opens an edit of id with currentText as the buffer,
	// abandoning any other edit in progress.
	StartEdit(id int64, currentText string)

	// UpdateEditedText replaces the edit buffer while an edit is open.
	UpdateEditedText(text string)

	// CancelEdit discards the edit in progress.
	CancelEdit()

	// Editing returns the edit in progress.
	Editing() (id int64, text string, ok bool)

	// CommitEdit writes the edit buffer into its task and closes the edit.
	// A blank buffer is ignored and the edit stays open.
	CommitEdit(ctx context.Context) (committed bool, err error)
}
