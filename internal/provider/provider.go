package provider

import "context"

// Provider defines the interface for a task backend.
// The UI and application state only talk to a backend through it and never
// import a backend SDK directly.
type Provider interface {
	// Tasklists returns the tasklists currently held, in backend order.
	// It does no network I/O.
	Tasklists() []Tasklist

	// Tasklist looks up a held tasklist by ID.
	Tasklist(id string) (Tasklist, bool)

	// Task looks up a held task by tasklist and task ID.
	Task(tasklistID, taskID string) (Task, bool)

	// UpdateTask sends the task's field values to the backend and then
	// reloads the tasklist from the backend's response.
	// Returns ErrNotFound if the tasklist is not held and a *RemoteError if
	// the backend call fails.
	UpdateTask(ctx context.Context, tasklistID string, task Task) error
}
