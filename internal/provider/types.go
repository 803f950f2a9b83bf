// Package provider defines the backend-agnostic task model and interface.
package provider

import "tudo/internal/timestamp"

// Status is the completion state of a task.
type Status int

const (
	// StatusUnknown is a backend status value tudo does not recognize.
	StatusUnknown Status = iota
	StatusTodo
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Toggle flips Todo and Done. Unknown stays Unknown.
func (s Status) Toggle() Status {
	switch s {
	case StatusTodo:
		return StatusDone
	case StatusDone:
		return StatusTodo
	default:
		return s
	}
}

// Task represents a single task item.
type Task struct {
	ID     string
	Status Status
	Title  string
	Due    *timestamp.Timestamp
	Notes  *string
}

// Tasklist represents a task list and its tasks in backend order.
type Tasklist struct {
	ID    string
	Title string
	Tasks []Task
}

// Len returns the number of tasks in the list.
func (l Tasklist) Len() int { return len(l.Tasks) }

// IsEmpty reports whether the list has no tasks.
func (l Tasklist) IsEmpty() bool { return len(l.Tasks) == 0 }

// Task returns the task at index i.
func (l Tasklist) Task(i int) (Task, bool) {
	if i < 0 || i >= len(l.Tasks) {
		return Task{}, false
	}
	return l.Tasks[i], true
}

// IndexOf returns the index of the task with the given ID, or -1.
func (l Tasklist) IndexOf(taskID string) int {
	for i, t := range l.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// Open returns the number of tasks still to do.
func (l Tasklist) Open() int {
	n := 0
	for _, t := range l.Tasks {
		if t.Status == StatusTodo {
			n++
		}
	}
	return n
}
