package app_test

import (
	"context"
	"errors"
	"testing"

	"tudo/internal/app"
	"tudo/internal/provider"
	"tudo/internal/testutil"
)

// newState loads a FakeProvider with Inbox (2 tasks) and Work (0 tasks).
func newState(t *testing.T) (*app.State, *testutil.FakeProvider) {
	t.Helper()

	p := testutil.NewFakeProvider()
	p.AddList("inbox", "Inbox")
	p.AddList("work", "Work")
	p.AddTask("inbox", "t1", "Buy milk")
	p.AddTask("inbox", "t2", "Buy eggs")
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return app.New(p), p
}

func selection(s *app.State) int {
	i, ok := s.Selection()
	if !ok {
		return -1
	}
	return i
}

func TestNew(t *testing.T) {
	s, _ := newState(t)

	list, ok := s.ActiveTasklist()
	if !ok || list.Title != "Inbox" {
		t.Errorf("expected Inbox active, got %+v", list)
	}
	if _, ok := s.Selection(); ok {
		t.Error("expected no selection")
	}
	if s.ShouldQuit() {
		t.Error("new state should not quit")
	}
}

func TestNextTasklist_SwitchesAndClearsSelection(t *testing.T) {
	s, _ := newState(t)
	s.NextTask()

	s.NextTasklist()

	list, _ := s.ActiveTasklist()
	if list.Title != "Work" {
		t.Errorf("expected Work, got %s", list.Title)
	}
	if _, ok := s.Selection(); ok {
		t.Error("expected selection cleared")
	}

	s.NextTask()
	if _, ok := s.Selection(); ok {
		t.Error("expected no selection on empty tasklist")
	}
	s.PreviousTask()
	if _, ok := s.Selection(); ok {
		t.Error("expected no selection on empty tasklist")
	}
}

func TestTasklistNavigation_Cycles(t *testing.T) {
	s, _ := newState(t)
	n := len(s.Provider().Tasklists())

	for i := 0; i < n; i++ {
		s.NextTasklist()
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("after %d NextTasklist, index = %d, want 0", n, s.ActiveIndex())
	}

	s.PreviousTasklist()
	if s.ActiveIndex() != n-1 {
		t.Errorf("PreviousTasklist from 0 = %d, want %d", s.ActiveIndex(), n-1)
	}
	for i := 0; i < n; i++ {
		s.PreviousTasklist()
	}
	if s.ActiveIndex() != n-1 {
		t.Errorf("PreviousTasklist cycle ended at %d, want %d", s.ActiveIndex(), n-1)
	}
}

func TestTaskNavigation_Cycles(t *testing.T) {
	s, _ := newState(t)

	s.NextTask()
	if selection(s) != 0 {
		t.Fatalf("first NextTask should select 0, got %d", selection(s))
	}
	s.NextTask()
	if selection(s) != 1 {
		t.Errorf("expected 1, got %d", selection(s))
	}
	s.NextTask()
	if selection(s) != 0 {
		t.Errorf("expected wrap to 0, got %d", selection(s))
	}

	s.PreviousTask()
	if selection(s) != 1 {
		t.Errorf("expected wrap back to 1, got %d", selection(s))
	}
	s.PreviousTask()
	s.PreviousTask()
	if selection(s) != 1 {
		t.Errorf("two PreviousTask should cycle back to 1, got %d", selection(s))
	}
}

func TestPreviousTask_FromNoSelection(t *testing.T) {
	s, _ := newState(t)

	s.PreviousTask()
	if selection(s) != 0 {
		t.Errorf("PreviousTask with no selection should select 0, got %d", selection(s))
	}
}

func TestNavigation_NoTasklists(t *testing.T) {
	s := app.New(testutil.NewFakeProvider())

	s.NextTasklist()
	s.PreviousTasklist()
	s.NextTask()
	s.PreviousTask()

	if _, ok := s.ActiveTasklist(); ok {
		t.Error("expected no active tasklist")
	}
	if _, ok := s.Selection(); ok {
		t.Error("expected no selection")
	}
	if err := s.ToggleActiveTaskStatus(context.Background()); !errors.Is(err, app.ErrNoActiveTask) {
		t.Errorf("expected ErrNoActiveTask, got %v", err)
	}
}

func TestToggle_NoSelection(t *testing.T) {
	s, p := newState(t)

	err := s.ToggleActiveTaskStatus(context.Background())
	if !errors.Is(err, app.ErrNoActiveTask) {
		t.Errorf("expected ErrNoActiveTask, got %v", err)
	}
	if len(p.Updates) != 0 {
		t.Error("provider should not be called without a selection")
	}
}

func TestToggle_FlipsAndKeepsSelection(t *testing.T) {
	s, p := newState(t)
	ctx := context.Background()
	s.NextTask()
	s.NextTask()

	if err := s.ToggleActiveTaskStatus(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	task, ok := s.SelectedTask()
	if !ok || task.ID != "t2" || task.Status != provider.StatusDone {
		t.Errorf("expected t2 done and selected, got %+v (%v)", task, ok)
	}

	if err := s.ToggleActiveTaskStatus(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	task, _ = s.SelectedTask()
	if task.Status != provider.StatusTodo {
		t.Errorf("double toggle should restore todo, got %v", task.Status)
	}
	if len(p.Updates) != 2 {
		t.Errorf("expected 2 updates, got %d", len(p.Updates))
	}
}

func TestToggle_UnknownIsSentUnchanged(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.AddList("inbox", "Inbox")
	p.AddTaskWithStatus("inbox", "t1", "Mystery", provider.StatusUnknown)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := app.New(p)
	s.NextTask()

	if err := s.ToggleActiveTaskStatus(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if p.Updates[0].Status != provider.StatusUnknown {
		t.Errorf("expected unknown to be sent unchanged, got %v", p.Updates[0].Status)
	}
}

func TestToggle_FollowsTaskAfterReorder(t *testing.T) {
	s, p := newState(t)
	p.AfterUpdate = func(list *provider.Tasklist) {
		// Backend moves the completed task to the end and adds one in front.
		list.Tasks = append([]provider.Task{{ID: "t0", Title: "New", Status: provider.StatusTodo}}, list.Tasks[1], list.Tasks[0])
	}
	s.NextTask() // t1

	if err := s.ToggleActiveTaskStatus(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	task, ok := s.SelectedTask()
	if !ok || task.ID != "t1" {
		t.Errorf("expected selection to follow t1, got %+v", task)
	}
	if selection(s) != 2 {
		t.Errorf("expected index 2, got %d", selection(s))
	}
}

func TestToggle_ClearsSelectionWhenTaskGone(t *testing.T) {
	s, p := newState(t)
	p.AfterUpdate = func(list *provider.Tasklist) {
		list.Tasks = list.Tasks[1:]
	}
	s.NextTask() // t1

	if err := s.ToggleActiveTaskStatus(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, ok := s.Selection(); ok {
		t.Error("expected selection cleared when the task disappeared")
	}
}

func TestToggle_PropagatesProviderError(t *testing.T) {
	s, p := newState(t)
	remote := &provider.RemoteError{Op: "update task", StatusCode: 500, Err: errors.New("boom")}
	p.UpdateTaskErr = remote
	s.NextTask()

	err := s.ToggleActiveTaskStatus(context.Background())
	if err != remote {
		t.Errorf("expected provider error unchanged, got %v", err)
	}
	if selection(s) != 0 {
		t.Errorf("selection should survive a failed toggle, got %d", selection(s))
	}
	task, _ := s.SelectedTask()
	if task.Status != provider.StatusTodo {
		t.Errorf("held task should be unchanged, got %v", task.Status)
	}
}

func TestQuit(t *testing.T) {
	s, _ := newState(t)
	s.Quit()
	if !s.ShouldQuit() {
		t.Error("expected ShouldQuit after Quit")
	}
}
