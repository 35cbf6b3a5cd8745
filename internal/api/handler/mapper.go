package handler

import (
	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Token: r.Token,
		User:  toUserResponse(r.User),
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskListResponse(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toUserListResponse(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toTaskWithOwnerResponse(items []ports.TaskWithOwner) []taskWithOwnerResponse {
	out := make([]taskWithOwnerResponse, len(items))
	for i, item := range items {
		out[i] = taskWithOwnerResponse{
			taskResponse: toTaskResponse(item.Task),
			Owner: ownerResponse{
				Username: item.Owner.Username,
				Email:    item.Owner.Email,
			},
		}
	}
	return out
}
