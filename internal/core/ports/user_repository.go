package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Emails are stored lowercased; callers normalize before lookups.
type UserRepository interface {
	// Create inserts a new user. A duplicate email maps to domain.ErrEmailTaken
	// (backed by the unique index on the users collection).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns the user including the password hash, for login.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the matching users keyed by id. Missing ids are
	// simply absent from the map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// Update persists username/email changes for an existing user.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
