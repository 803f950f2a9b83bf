package provider

import "fmt"

// Store holds tasklists in memory and answers the lookup half of Provider.
// Backends embed it and are its only writer.
type Store struct {
	tasklists []Tasklist
}

// Tasklists implements Provider.
func (s *Store) Tasklists() []Tasklist {
	return s.tasklists
}

// Tasklist implements Provider.
func (s *Store) Tasklist(id string) (Tasklist, bool) {
	i := s.index(id)
	if i < 0 {
		return Tasklist{}, false
	}
	return s.tasklists[i], true
}

// Task implements Provider.
func (s *Store) Task(tasklistID, taskID string) (Task, bool) {
	list, ok := s.Tasklist(tasklistID)
	if !ok {
		return Task{}, false
	}
	i := list.IndexOf(taskID)
	if i < 0 {
		return Task{}, false
	}
	return list.Tasks[i], true
}

// Set replaces everything held.
func (s *Store) Set(tasklists []Tasklist) {
	s.tasklists = tasklists
}

// Replace swaps in a freshly loaded version of a held tasklist, keeping its
// position.
func (s *Store) Replace(list Tasklist) error {
	i := s.index(list.ID)
	if i < 0 {
		return fmt.Errorf("tasklist %s: %w", list.ID, ErrNotFound)
	}
	s.tasklists[i] = list
	return nil
}

func (s *Store) index(id string) int {
	for i, l := range s.tasklists {
		if l.ID == id {
			return i
		}
	}
	return -1
}
