package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// TaskService implements task CRUD under the ownership policy: a task may be
// read or mutated by its owner or by an admin, decided against the stored
// owner after the task is fetched.
type TaskService struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, notifier: notifier, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		DueDate:     input.DueDate,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("user_id", ownerID).Msg("task created")
	return created, nil
}

// List returns only tasks owned by the caller. The sort field has been
// whitelisted at the boundary; an empty sort means newest-created-first.
func (s *TaskService) List(ctx context.Context, ownerID string, input ports.ListTasksInput) ([]*domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ports.ListTasksFilter{
		OwnerID: ownerID,
		Status:  input.Status,
		Sort:    input.Sort,
	})
}

// GetByID fetches then authorizes: an absent id fails with ErrTaskNotFound
// before any ownership check, a present task the caller does not own fails
// with ErrForbidden.
func (s *TaskService) GetByID(ctx context.Context, id string, caller ports.Caller) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.AccessibleBy(caller.ID, caller.Role) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// Update applies only the fields present in the patch. A pending→completed
// transition enqueues one completion notification; completed→pending and
// idempotent re-completion do not. The owner reference is never touched.
func (s *TaskService) Update(ctx context.Context, id string, caller ports.Caller, patch ports.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.AccessibleBy(caller.ID, caller.Role) {
		return nil, domain.ErrForbidden
	}

	wasCompleted := task.Status

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.DueDateSet {
		task.DueDate = patch.DueDate
	}
	if task.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	task.UpdatedAt = time.Now().UTC()

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	if updated.Status && !wasCompleted {
		s.notifyCompleted(ctx, updated)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string, caller ports.Caller) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !task.AccessibleBy(caller.ID, caller.Role) {
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

// notifyCompleted enqueues the completion email for the task's owner. Any
// failure here is logged and swallowed; the update already succeeded.
func (s *TaskService) notifyCompleted(ctx context.Context, task *domain.Task) {
	owner, err := s.users.FindByID(ctx, task.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("task_id", task.ID).Msg("completion notification skipped: owner lookup failed")
		return
	}
	s.notifier.Enqueue(domain.Notification{
		Kind: domain.NotificationTaskCompleted,
		User: *owner,
		Task: task,
	})
}
