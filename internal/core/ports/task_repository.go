package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// ListTasksFilter carries the query parameters for listing a user's tasks.
// OwnerID is always enforced by the service layer.
type ListTasksFilter struct {
	OwnerID string // required: tasks are always owner-scoped for non-admin listing
	Status  *bool  // optional: filter by completion status
	Sort    string // one of dueDate, -dueDate, createdAt, -createdAt; empty = -createdAt
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	ListByOwner(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	// ListAll returns every task across all owners, newest first.
	ListAll(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes all tasks owned by the given user and returns the
	// number removed. Used by the admin user-delete cascade.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
