// Package app holds the navigation and selection state of a session.
package app

import (
	"context"
	"errors"

	"tudo/internal/provider"
)

// ErrNoActiveTask is returned by ToggleActiveTaskStatus when there is no
// active tasklist or no selected task.
var ErrNoActiveTask = errors.New("no active task")

// State tracks the active tasklist and the selected task over one Provider.
// It never changes tasklists itself; it only reads them through the Provider.
type State struct {
	provider provider.Provider

	active    int
	selection int // -1 when nothing is selected
	quit      bool
}

// New creates a State on the first tasklist with nothing selected.
func New(p provider.Provider) *State {
	return &State{provider: p, selection: -1}
}

// Provider returns the backend the state reads from.
func (s *State) Provider() provider.Provider { return s.provider }

// ActiveIndex returns the index of the active tasklist. It is meaningless
// when there are no tasklists.
func (s *State) ActiveIndex() int { return s.active }

// ActiveTasklist returns the active tasklist, if any.
func (s *State) ActiveTasklist() (provider.Tasklist, bool) {
	lists := s.provider.Tasklists()
	if s.active < 0 || s.active >= len(lists) {
		return provider.Tasklist{}, false
	}
	return lists[s.active], true
}

// Selection returns the selected task index within the active tasklist.
func (s *State) Selection() (int, bool) {
	return s.selection, s.selection >= 0
}

// SelectedTask returns the selected task, if the selection points at one.
func (s *State) SelectedTask() (provider.Task, bool) {
	list, ok := s.ActiveTasklist()
	if !ok || s.selection < 0 {
		return provider.Task{}, false
	}
	return list.Task(s.selection)
}

// NextTasklist activates the following tasklist, wrapping around, and
// clears the selection.
func (s *State) NextTasklist() {
	n := len(s.provider.Tasklists())
	if n == 0 {
		return
	}
	s.active = (s.active + 1) % n
	s.selection = -1
}

// PreviousTasklist activates the preceding tasklist, wrapping around, and
// clears the selection.
func (s *State) PreviousTasklist() {
	n := len(s.provider.Tasklists())
	if n == 0 {
		return
	}
	s.active = (s.active - 1 + n) % n
	s.selection = -1
}

// NextTask selects the following task, wrapping around. With nothing
// selected it selects the first task.
func (s *State) NextTask() {
	s.moveSelection(1)
}

// PreviousTask selects the preceding task, wrapping around. With nothing
// selected it selects the first task.
func (s *State) PreviousTask() {
	s.moveSelection(-1)
}

func (s *State) moveSelection(step int) {
	list, ok := s.ActiveTasklist()
	if !ok || list.IsEmpty() {
		s.selection = -1
		return
	}
	n := list.Len()
	if s.selection < 0 {
		s.selection = 0
		return
	}
	s.selection = ((s.selection+step)%n + n) % n
}

// ToggleActiveTaskStatus flips the selected task between Todo and Done and
// sends it to the Provider. Unknown statuses are sent unchanged.
//
// After a successful update the selection follows the task by ID in the
// reloaded tasklist, and is cleared if the task is gone. On error the
// selection is left alone and the Provider's error is returned.
func (s *State) ToggleActiveTaskStatus(ctx context.Context) error {
	list, ok := s.ActiveTasklist()
	if !ok {
		return ErrNoActiveTask
	}
	task, ok := s.SelectedTask()
	if !ok {
		return ErrNoActiveTask
	}

	task.Status = task.Status.Toggle()
	if err := s.provider.UpdateTask(ctx, list.ID, task); err != nil {
		return err
	}

	s.reselect(list.ID, task.ID)
	return nil
}

// reselect points the selection back at taskID after a reload.
func (s *State) reselect(tasklistID, taskID string) {
	s.selection = -1
	lists := s.provider.Tasklists()
	if s.active >= len(lists) {
		s.active = 0
	}
	list, ok := s.ActiveTasklist()
	if !ok || list.ID != tasklistID {
		return
	}
	s.selection = list.IndexOf(taskID)
}

// Quit marks the session finished.
func (s *State) Quit() { s.quit = true }

// ShouldQuit reports whether Quit was called.
func (s *State) ShouldQuit() bool { return s.quit }
