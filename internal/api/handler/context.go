package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// IdentityKey is the Echo context key under which the auth middleware stores
// the resolved *domain.User.
const IdentityKey = "identity"

// ctxCaller extracts the identity injected by the Auth middleware. Presence
// proves the middleware ran; a missing identity on a protected route means a
// wiring bug, rejected as 401 rather than panicking.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	user, ok := c.Get(IdentityKey).(*domain.User)
	if !ok || user == nil {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}
	return ports.Caller{ID: user.ID, Role: user.Role}, nil
}
