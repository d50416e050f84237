// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"time"

	"todo/internal/controller"
	"todo/internal/persist"
	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/task"
)

// ClockStart is the millisecond timestamp the fake's first generated id is based on.
const ClockStart = 1000

var _ service.Service = (*FakeService)(nil)

// FakeService is a mounted controller over in-memory storage with error
// injection, for testing front ends.
type FakeService struct {
	*controller.Controller

	// Storage is the backing store, exposed for assertions on persisted data.
	Storage *storage.Memory

	// Error injection for testing
	AddTaskErr          error
	ToggleCompletionErr error
	DeleteTaskErr       error
	CommitEditErr       error
}

// NewFakeService creates a FakeService whose stored list holds tasks.
// Generated ids start at ClockStart and never repeat.
func NewFakeService(tasks ...task.Task) *FakeService {
	ctx := context.Background()
	mem := storage.NewMemory()
	if len(tasks) > 0 {
		raw, err := persist.Encode(tasks)
		if err != nil {
			panic(err)
		}
		_ = mem.SetItem(ctx, persist.DefaultKey, raw)
	}

	ctl := controller.New(persist.New(mem, persist.DefaultKey),
		controller.WithClock(func() time.Time { return time.UnixMilli(ClockStart) }))
	if err := ctl.Mount(ctx); err != nil {
		panic(err)
	}
	return &FakeService{Controller: ctl, Storage: mem}
}

// Stored returns the task list as currently persisted.
func (f *FakeService) Stored() task.Store {
	raw, ok, _ := f.Storage.GetItem(context.Background(), persist.DefaultKey)
	if !ok {
		return nil
	}
	s, err := persist.Decode(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, text string) (task.Task, bool, error) {
	if f.AddTaskErr != nil {
		return task.Task{}, false, f.AddTaskErr
	}
	return f.Controller.AddTask(ctx, text)
}

// ToggleCompletion implements service.Service.
func (f *FakeService) ToggleCompletion(ctx context.Context, id int64) (bool, error) {
	if f.ToggleCompletionErr != nil {
		return false, f.ToggleCompletionErr
	}
	return f.Controller.ToggleCompletion(ctx, id)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if f.DeleteTaskErr != nil {
		return false, f.DeleteTaskErr
	}
	return f.Controller.DeleteTask(ctx, id)
}

// CommitEdit implements service.Service.
func (f *FakeService) CommitEdit(ctx context.Context) (bool, error) {
	if f.CommitEditErr != nil {
		return false, f.CommitEditErr
	}
	return f.Controller.CommitEdit(ctx)
}
