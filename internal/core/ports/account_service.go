package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// RegisterInput carries the registration payload after validation.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
// Role and password are deliberately absent: they cannot be changed here.
type ProfilePatch struct {
	Username *string
	Email    *string
}

// AuthResult bundles the issued token with the authenticated user.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AccountService handles registration, login, and profile management.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error)
}
