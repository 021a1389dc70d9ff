package models

import "time"

// Task is a single card on the board
type Task struct {
	ID          string
	Text        string
	IsCompleted bool
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// Clone returns a copy of the task that shares no timestamp pointers with t.
func (t Task) Clone() Task {
	if t.CreatedAt != nil {
		c := *t.CreatedAt
		t.CreatedAt = &c
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		t.UpdatedAt = &u
	}
	return t
}

// Touch returns a copy of the task with UpdatedAt set to now
func (t Task) Touch(now time.Time) Task {
	t.UpdatedAt = &now
	return t
}
