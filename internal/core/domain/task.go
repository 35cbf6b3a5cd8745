package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("access forbidden")
var ErrTitleRequired = errors.New("task title is required")

// Task is a single to-do item. Status is a two-state flag: false = pending,
// true = completed. UserID identifies the owner and is immutable after
// creation; no operation ever rewrites it.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      bool       `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AccessibleBy reports whether the given caller may read or mutate the task:
// the owner always may, and admins may regardless of ownership.
func (t *Task) AccessibleBy(callerID, callerRole string) bool {
	return t.UserID == callerID || callerRole == RoleAdmin
}
