// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"

	"tudo/internal/provider"
)

// FakeProvider is an in-memory implementation of provider.Provider for testing.
// UpdateTask writes to a separate "remote" copy and then reloads from it, the
// way a real backend does.
type FakeProvider struct {
	provider.Store

	remote []provider.Tasklist

	// Updates records every task passed to UpdateTask, in call order.
	Updates []provider.Task

	// Error injection for testing
	LoadErr       error
	UpdateTaskErr error

	// AfterUpdate, if set, may rewrite the remote tasklist before the reload.
	AfterUpdate func(list *provider.Tasklist)
}

// NewFakeProvider creates an empty FakeProvider.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

// AddList adds an empty tasklist on the remote side.
func (f *FakeProvider) AddList(id, title string) {
	f.remote = append(f.remote, provider.Tasklist{ID: id, Title: title})
}

// AddTask adds a todo task to a remote tasklist.
func (f *FakeProvider) AddTask(listID, taskID, title string) {
	f.AddTaskWithStatus(listID, taskID, title, provider.StatusTodo)
}

// AddTaskWithStatus adds a task with the given status to a remote tasklist.
func (f *FakeProvider) AddTaskWithStatus(listID, taskID, title string, status provider.Status) {
	for i := range f.remote {
		if f.remote[i].ID == listID {
			f.remote[i].Tasks = append(f.remote[i].Tasks, provider.Task{ID: taskID, Title: title, Status: status})
			return
		}
	}
	panic(fmt.Sprintf("testutil: no list %q", listID))
}

// Load copies the remote state into the held state.
func (f *FakeProvider) Load(ctx context.Context) error {
	if f.LoadErr != nil {
		return f.LoadErr
	}
	lists := make([]provider.Tasklist, len(f.remote))
	for i, l := range f.remote {
		lists[i] = cloneList(l)
	}
	f.Set(lists)
	return nil
}

// UpdateTask implements provider.Provider.
func (f *FakeProvider) UpdateTask(ctx context.Context, tasklistID string, task provider.Task) error {
	if _, ok := f.Tasklist(tasklistID); !ok {
		return fmt.Errorf("tasklist %s: %w", tasklistID, provider.ErrNotFound)
	}
	f.Updates = append(f.Updates, task)
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}

	for i := range f.remote {
		list := &f.remote[i]
		if list.ID != tasklistID {
			continue
		}
		if j := list.IndexOf(task.ID); j >= 0 && task.Status != provider.StatusUnknown {
			list.Tasks[j].Status = task.Status
		}
		if f.AfterUpdate != nil {
			f.AfterUpdate(list)
		}
		return f.Replace(cloneList(*list))
	}
	return fmt.Errorf("tasklist %s: %w", tasklistID, provider.ErrNotFound)
}

func cloneList(l provider.Tasklist) provider.Tasklist {
	l.Tasks = slices.Clone(l.Tasks)
	return l
}
