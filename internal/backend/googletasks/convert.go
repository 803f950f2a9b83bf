package googletasks

import (
	"fmt"

	tasks "google.golang.org/api/tasks/v1"

	"tudo/internal/provider"
	"tudo/internal/timestamp"
)

// Google Tasks status values.
const (
	statusNeedsAction = "needsAction"
	statusCompleted   = "completed"
)

func tasklistFromWire(raw *tasks.TaskList) (provider.Tasklist, error) {
	if raw == nil || raw.Id == "" || raw.Title == "" {
		return provider.Tasklist{}, fmt.Errorf("tasklist without id or title: %w", provider.ErrMalformedRecord)
	}
	return provider.Tasklist{ID: raw.Id, Title: raw.Title}, nil
}

func taskFromWire(raw *tasks.Task) (provider.Task, error) {
	if raw == nil || raw.Id == "" || raw.Title == "" {
		return provider.Task{}, fmt.Errorf("task without id or title: %w", provider.ErrMalformedRecord)
	}

	task := provider.Task{
		ID:     raw.Id,
		Title:  raw.Title,
		Status: statusFromWire(raw.Status),
	}
	if raw.Due != "" {
		// An unparsable due date is dropped, not the task.
		if due, ok := timestamp.Classify(raw.Due); ok {
			task.Due = &due
		}
	}
	if raw.Notes != "" {
		notes := raw.Notes
		task.Notes = &notes
	}
	return task, nil
}

// taskToWire builds a PATCH body. Fields left empty are not sent, so the
// backend keeps its own value for them. That covers an Unknown status and a
// time-only due date, neither of which has a wire value.
func taskToWire(task provider.Task) *tasks.Task {
	wire := &tasks.Task{
		Id:     task.ID,
		Title:  task.Title,
		Status: statusToWire(task.Status),
	}
	if task.Status == provider.StatusTodo {
		// Reopening a task also has to clear its completion time.
		wire.NullFields = []string{"Completed"}
	}
	if task.Due != nil {
		if due, ok := timestamp.Encode(*task.Due); ok {
			wire.Due = due
		}
	}
	if task.Notes != nil {
		wire.Notes = *task.Notes
	}
	return wire
}

func statusFromWire(s string) provider.Status {
	switch s {
	case statusNeedsAction:
		return provider.StatusTodo
	case statusCompleted:
		return provider.StatusDone
	default:
		return provider.StatusUnknown
	}
}

func statusToWire(s provider.Status) string {
	switch s {
	case provider.StatusTodo:
		return statusNeedsAction
	case provider.StatusDone:
		return statusCompleted
	default:
		return ""
	}
}
