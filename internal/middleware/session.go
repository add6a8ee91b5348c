package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/securebank/portal/internal/tokens"
)

const (
	CtxSession   = "session"
	CtxAccountID = "account_id"
	CtxRole      = "role"

	SessionCookie = "portalSession"
)

// Public allow-list: sign-in pages, the backend API namespace, static
// assets and health probes. Every path not matched here is protected —
// deny by default.
var (
	publicPrefixes = []string{"/auth/", "/api/", "/static/", "/health"}
	publicExact    = []string{"/favicon.ico"}
)

// IsPublicPath classifies a request path. Classification is total: a path
// is public on an exact or prefix match, protected otherwise.
func IsPublicPath(path string) bool {
	for _, p := range publicExact {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SessionGate is the edge gate: it runs ahead of every page handler,
// reads the session cookie and either allows the request through (with
// the identity on the context) or redirects to sign-in carrying the
// original path as callbackUrl. It proves authentication only; role
// checks are left to RequireRole.
func SessionGate(secret []byte, signInPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if IsPublicPath(path) {
				return next(c)
			}

			session := readSession(c, secret)
			if session == nil {
				q := url.Values{}
				q.Set("callbackUrl", path)
				return c.Redirect(http.StatusFound, signInPath+"?"+q.Encode())
			}

			c.Set(CtxSession, session)
			c.Set(CtxAccountID, session.AccountID)
			c.Set(CtxRole, session.Role)
			return next(c)
		}
	}
}

// readSession decodes the cookie, treating every failure (missing,
// malformed, expired, tampered) identically as "not authenticated".
func readSession(c echo.Context, secret []byte) *tokens.Session {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := tokens.SessionFromToken(cookie.Value, secret)
	if err != nil {
		return nil
	}
	return session
}

// SessionFromContext returns the session placed by SessionGate, or nil on
// public paths.
func SessionFromContext(c echo.Context) *tokens.Session {
	s, _ := c.Get(CtxSession).(*tokens.Session)
	return s
}

// ReadSession decodes the session cookie directly, for handlers in the
// public namespace that still want to know who is calling.
func ReadSession(c echo.Context, secret []byte) *tokens.Session {
	return readSession(c, secret)
}
