package httpserver

import (
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/securebank/portal/internal/logging"
	"github.com/securebank/portal/internal/middleware"
	"github.com/securebank/portal/internal/service"
)

type AuthHTTP struct {
	Svc            *service.AuthService
	SignInPath     string
	DefaultLanding string
}

// sanitizeCallback only accepts same-origin relative paths as post-login
// redirect targets. Absolute URLs and protocol-relative //host values are
// silently replaced by the default landing path.
func (h *AuthHTTP) sanitizeCallback(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\") {
		return raw
	}
	return h.DefaultLanding
}

func (h *AuthHTTP) SignInPage(c echo.Context) error {
	// callbackUrl passed the path check but is still user input; escape it
	// before it lands inside an attribute.
	callback := html.EscapeString(h.sanitizeCallback(c.QueryParam("callbackUrl")))
	return c.HTML(http.StatusOK, `<!DOCTYPE html>
<html><head><title>SecureBank Portal — Sign in</title></head>
<body>
<form method="post" action="`+h.SignInPath+`">
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <input type="hidden" name="callbackUrl" value="`+callback+`">
  <button type="submit">Sign in</button>
</form>
</body></html>`)
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signin")

	var req struct {
		Email       string `json:"email" form:"email"`
		Password    string `json:"password" form:"password"`
		CallbackURL string `json:"callbackUrl" form:"callbackUrl"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("signin_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": service.MsgValidation})
	}

	res, err := h.Svc.SignIn(ctx, req.Email, req.Password, c.RealIP())
	if err != nil {
		return c.JSON(signInStatus(err), echo.Map{"error": service.UserMessage(err)})
	}

	c.SetCookie(createCookie(middleware.SessionCookie, res.Token, "/", res.ExpiresAt))

	return c.JSON(http.StatusOK, echo.Map{
		"error":      nil,
		"redirectTo": h.sanitizeCallback(req.CallbackURL),
	})
}

func signInStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (h *AuthHTTP) SignOut(c echo.Context) error {
	ctx := c.Request().Context()

	session := middleware.ReadSession(c, h.Svc.SessionSecret)
	h.Svc.SignOut(ctx, session, c.RealIP())

	c.SetCookie(deleteCookie(middleware.SessionCookie, "/"))
	return c.Redirect(http.StatusFound, h.SignInPath)
}

// CurrentSession mirrors the session endpoint of the public API namespace:
// it reads the cookie itself and answers null when there is no valid
// session, without distinguishing reasons.
func (h *AuthHTTP) CurrentSession(c echo.Context) error {
	session := middleware.ReadSession(c, h.Svc.SessionSecret)
	if session == nil {
		return c.JSON(http.StatusOK, echo.Map{"session": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session": echo.Map{
			"id":        session.AccountID,
			"name":      session.DisplayName,
			"email":     session.Email,
			"role":      session.Role,
			"expiresAt": session.ExpiresAt,
		},
	})
}
