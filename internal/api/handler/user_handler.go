package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/ports"
)

// UserHandler handles the authenticated user's own profile.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// GetProfile returns the caller's own projection.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]any
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.GetProfile(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toUserResponse(user))
}

// UpdateProfile applies a partial update to username and/or email.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == nil && req.Email == nil {
		return NewValidationError("body", "At least one field is required to update")
	}
	if err := req.normalize(); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.accounts.UpdateProfile(c.Request().Context(), caller.ID, ports.ProfilePatch{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", toUserResponse(user))
}
