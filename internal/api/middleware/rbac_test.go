package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/api/handler"
	"github.com/taskhive/task-system/internal/core/domain"
)

func invokeRBAC(t *testing.T, identity *domain.User, allowed ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(handler.IdentityKey, identity)
	}

	mw := RBAC(allowed...)
	return mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
}

func TestRBAC_AllowsMatchingRole(t *testing.T) {
	admin := &domain.User{ID: "u1", Role: domain.RoleAdmin}
	if err := invokeRBAC(t, admin, domain.RoleAdmin); err != nil {
		t.Fatalf("admin denied: %v", err)
	}
}

func TestRBAC_DeniesOtherRole(t *testing.T) {
	user := &domain.User{ID: "u2", Role: domain.RoleUser}
	err := invokeRBAC(t, user, domain.RoleAdmin)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Access denied. Required role: admin" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestRBAC_MissingIdentity(t *testing.T) {
	err := invokeRBAC(t, nil, domain.RoleAdmin)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
