// Package controller owns the task list, the edit session and their persistence.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"todo/internal/persist"
	"todo/internal/service"
	"todo/internal/task"
)

// ErrNotMounted is returned by mutations issued before Mount has loaded the
// stored list. Refusing them keeps the empty initial state from overwriting
// persisted data.
var ErrNotMounted = errors.New("task list not loaded")

var _ service.Service = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock ids are derived from.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// Controller applies user actions to the task list. Every change is written
// back through the bridge before the action returns.
//
// A Controller is not safe for concurrent use; actions are expected to arrive
// one at a time from a single event loop.
type Controller struct {
	bridge  *persist.Bridge
	clock   func() time.Time
	ids     *task.IDGenerator
	tasks   task.Store
	edit    task.EditSession
	mounted bool
}

// New creates a controller persisting through bridge. Call Mount before use.
func New(bridge *persist.Bridge, opts ...Option) *Controller {
	c := &Controller{
		bridge: bridge,
		clock:  time.Now,
		tasks:  task.Store{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount loads the stored task list. Only the first successful call loads;
// later calls do nothing.
func (c *Controller) Mount(ctx context.Context) error {
	if c.mounted {
		return nil
	}
	tasks, err := c.bridge.Load(ctx)
	if err != nil {
		return err
	}
	c.tasks = tasks
	c.ids = task.NewIDGenerator(0, c.clock)
	c.ids.Observe(tasks.MaxID())
	c.mounted = true
	return nil
}

// Mounted reports whether the stored list has been loaded.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Tasks implements service.Service.
func (c *Controller) Tasks() task.Store {
	out := make(task.Store, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// AddTask implements service.Service.
func (c *Controller) AddTask(ctx context.Context, text string) (task.Task, bool, error) {
	if !c.mounted {
		return task.Task{}, false, ErrNotMounted
	}
	if task.IsBlank(text) {
		return task.Task{}, false, nil
	}
	id := c.ids.Next()
	tasks, _ := task.Add(c.tasks, text, id)
	t, _ := tasks.Find(id)
	return t, true, c.apply(ctx, "add", tasks)
}

// ToggleCompletion implements service.Service.
func (c *Controller) ToggleCompletion(ctx context.Context, id int64) (bool, error) {
	if !c.mounted {
		return false, ErrNotMounted
	}
	tasks, changed := task.Toggle(c.tasks, id)
	if !changed {
		return false, nil
	}
	return true, c.apply(ctx, "toggle", tasks)
}

// DeleteTask implements service.Service.
// Deleting the task being edited also closes the edit.
func (c *Controller) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if !c.mounted {
		return false, ErrNotMounted
	}
	tasks, changed := task.Delete(c.tasks, id)
	if !changed {
		return false, nil
	}
	if c.edit.Editing(id) {
		c.edit.Cancel()
	}
	return true, c.apply(ctx, "delete", tasks)
}

// StartEdit implements service.Service.
func (c *Controller) StartEdit(id int64, currentText string) {
	c.edit.Start(id, currentText)
}

// UpdateEditedText implements service.Service.
func (c *Controller) UpdateEditedText(text string) {
	c.edit.Update(text)
}

// CancelEdit implements service.Service.
func (c *Controller) CancelEdit() {
	c.edit.Cancel()
}

// Editing implements service.Service.
func (c *Controller) Editing() (int64, string, bool) {
	return c.edit.Active()
}

// CommitEdit implements service.Service.
func (c *Controller) CommitEdit(ctx context.Context) (bool, error) {
	if !c.mounted {
		return false, ErrNotMounted
	}
	tasks, changed := c.edit.Commit(c.tasks)
	if !changed {
		return false, nil
	}
	return true, c.apply(ctx, "edit", tasks)
}

// apply installs the new list and persists it. The in-memory list keeps the
// change even when saving fails, so the next successful save catches up.
func (c *Controller) apply(ctx context.Context, action string, tasks task.Store) error {
	c.tasks = tasks
	if err := c.bridge.Save(ctx, tasks); err != nil {
		log.FromContext(ctx).Error("could not save tasks", "action", action, "err", err)
		return err
	}
	return nil
}
