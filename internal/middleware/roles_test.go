package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securebank/portal/internal/models"
)

func newGuardedServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Use(SessionGate(gateSecret, "/auth/signin"))

	admin := e.Group("/admin", RequireRole(models.RoleAdmin))
	admin.GET("/users", func(c echo.Context) error {
		return c.String(http.StatusOK, "admin area")
	})
	return e
}

func TestRequireRole_DeniesAuthenticatedNonAdmin(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t)

	// The edge gate allows the request (authenticated), the role guard
	// denies it.
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(sessionCookie(t, models.RoleUser, time.Hour))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied")
	assert.NotContains(t, rec.Body.String(), "admin area")
}

func TestRequireRole_AllowsAdmin(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(sessionCookie(t, models.RoleAdmin, time.Hour))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_MissingRoleUnauthorized(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/admin/users", func(c echo.Context) error {
		return c.String(http.StatusOK, "admin area")
	}, RequireRole(models.RoleAdmin))

	// No edge gate ran, so no role is on the context at all.
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
