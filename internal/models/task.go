package models

import "errors"

// ErrEmptyTitle is returned by Validate when a new task has no title.
var ErrEmptyTitle = errors.New("title is required")

// Task represents a single entry in the task list.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Validate checks that the task can be created.
// Only creation rejects an empty title; edits may clear it.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Toggled returns a copy of the task with its completion flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}
