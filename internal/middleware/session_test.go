package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/tokens"
)

var gateSecret = []byte("gate-test-secret")

func newGateServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Use(SessionGate(gateSecret, "/auth/signin"))

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/auth/signin", ok)
	e.GET("/api/auth/session", ok)
	e.GET("/health/live", ok)
	e.GET("/dashboard", ok)
	e.GET("/admin/users", func(c echo.Context) error {
		role, _ := c.Get(CtxRole).(string)
		return c.String(http.StatusOK, role)
	})
	return e
}

func sessionCookie(t *testing.T, role string, ttl time.Duration) *http.Cookie {
	t.Helper()

	raw, _, err := tokens.Issue(&models.Account{
		ID:          "user-1",
		Email:       "user@securebank.com",
		DisplayName: "John User",
		Role:        role,
	}, gateSecret, ttl)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: raw}
}

func TestIsPublicPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		public bool
	}{
		{path: "/auth/signin", public: true},
		{path: "/auth/signout", public: true},
		{path: "/api/auth/session", public: true},
		{path: "/static/logo.svg", public: true},
		{path: "/health/live", public: true},
		{path: "/favicon.ico", public: true},
		{path: "/", public: false},
		{path: "/dashboard", public: false},
		{path: "/customers", public: false},
		{path: "/admin/users", public: false},
		{path: "/authx", public: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.public, IsPublicPath(tt.path))
		})
	}
}

func TestSessionGate_RedirectsUnauthenticated(t *testing.T) {
	t.Parallel()

	e := newGateServer(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/signin", loc.Path)
	assert.Equal(t, "/admin/users", loc.Query().Get("callbackUrl"))
}

func TestSessionGate_PublicPathsPassWithoutSession(t *testing.T) {
	t.Parallel()

	e := newGateServer(t)
	for _, path := range []string{"/auth/signin", "/api/auth/session", "/health/live"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestSessionGate_ValidSessionPasses(t *testing.T) {
	t.Parallel()

	e := newGateServer(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(sessionCookie(t, models.RoleManager, time.Hour))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "manager", rec.Body.String())
}

func TestSessionGate_ExpiredSessionRedirects(t *testing.T) {
	t.Parallel()

	e := newGateServer(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, models.RoleUser, -time.Minute))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", loc.Query().Get("callbackUrl"))
}

func TestSessionGate_TamperedCookieRedirects(t *testing.T) {
	t.Parallel()

	e := newGateServer(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage.token.value"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
}
