package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// OwnerProjection is the minimal owner view attached to cross-user task listings.
type OwnerProjection struct {
	Username string
	Email    string
}

// TaskWithOwner pairs a task with a projection of its owner.
type TaskWithOwner struct {
	Task  *domain.Task
	Owner OwnerProjection
}

// AdminService defines admin-only cross-user operations.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// DeleteUser removes the target user and all of their tasks. Deleting
	// one's own account is rejected with domain.ErrSelfDeletion.
	DeleteUser(ctx context.Context, targetID string, caller Caller) error
	ListAllTasks(ctx context.Context) ([]TaskWithOwner, error)
}
