package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// AdminService implements cross-user operations. Role gating happens at the
// router; the only policy enforced here is the self-deletion guard.
type AdminService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, tasks ports.TaskRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, tasks: tasks, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes the target user and cascades to all of their tasks.
// The cascade is two sequential single-document-atomic operations, tasks
// first: a crash in between leaves no task whose owner still exists, only
// the (recoverable) inverse. There is no multi-document transaction here.
func (s *AdminService) DeleteUser(ctx context.Context, targetID string, caller ports.Caller) error {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.ID == caller.ID {
		return domain.ErrSelfDeletion
	}

	removed, err := s.tasks.DeleteByOwner(ctx, target.ID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", target.ID).
		Str("deleted_by", caller.ID).
		Int64("tasks_removed", removed).
		Msg("user deleted")
	return nil
}

// ListAllTasks returns every task annotated with a minimal projection of its
// owner. Owners deleted mid-listing simply yield an empty projection.
func (s *AdminService) ListAllTasks(ctx context.Context) ([]ports.TaskWithOwner, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.UserID]; !ok {
			seen[t.UserID] = struct{}{}
			ids = append(ids, t.UserID)
		}
	}

	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.TaskWithOwner, 0, len(tasks))
	for _, t := range tasks {
		item := ports.TaskWithOwner{Task: t}
		if owner, ok := owners[t.UserID]; ok {
			item.Owner = ports.OwnerProjection{Username: owner.Username, Email: owner.Email}
		}
		out = append(out, item)
	}
	return out, nil
}
