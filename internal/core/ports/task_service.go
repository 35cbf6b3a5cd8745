package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-system/internal/core/domain"
)

// Caller identifies the authenticated user performing an operation.
type Caller struct {
	ID   string
	Role string
}

// CreateTaskInput carries the data for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      bool
	DueDate     *time.Time
}

// TaskPatch is a partial task update. Nil fields are left untouched.
// DueDateSet distinguishes "clear the due date" (true, nil DueDate) from
// "leave it alone" (false).
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *bool
	DueDate     *time.Time
	DueDateSet  bool
}

// ListTasksInput carries the caller-facing list parameters.
type ListTasksInput struct {
	Status *bool
	Sort   string
}

// TaskService defines use-case operations for tasks. All resource-scoped
// operations fetch first and authorize against the stored owner, never
// against anything the client claims.
type TaskService interface {
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID string, input ListTasksInput) ([]*domain.Task, error)
	GetByID(ctx context.Context, id string, caller Caller) (*domain.Task, error)
	Update(ctx context.Context, id string, caller Caller, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string, caller Caller) error
}
