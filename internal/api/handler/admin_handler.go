package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/ports"
)

// AdminHandler handles the admin-only cross-user endpoints. Role gating is
// done by the RBAC middleware on the route group.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers handles GET /admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  map[string]any
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(users), toUserListResponse(users))
}

// DeleteUser handles DELETE /admin/users/:id, cascading to the user's tasks.
//
// @Summary      Delete a user and their tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.admin.DeleteUser(c.Request().Context(), c.Param("id"), caller); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User and their tasks removed", nil)
}

// ListTasks handles GET /admin/tasks.
//
// @Summary      List all tasks with owner projections
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskWithOwnerResponse
// @Failure      403  {object}  map[string]any
// @Router       /admin/tasks [get]
func (h *AdminHandler) ListTasks(c echo.Context) error {
	items, err := h.admin.ListAllTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(items), toTaskWithOwnerResponse(items))
}
