package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/api/handler"
	"github.com/taskhive/task-system/internal/core/domain"
)

// RBAC enforces role-based access control against the identity resolved by
// Auth. Roles are a closed set; an unknown role is simply not in the allowed
// map and gets denied.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(handler.IdentityKey).(*domain.User)
			if !ok || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden,
					"Access denied. Required role: "+strings.Join(allowedRoles, " or "))
			}
			return next(c)
		}
	}
}
