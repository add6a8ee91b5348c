package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/securebank/portal/internal/middleware"
	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/repo"
	"github.com/securebank/portal/internal/service"
)

type Deps struct {
	Auth      *service.AuthService
	Customers *service.CustomerService
	Orders    *service.OrderService
	Repo      *repo.GormRepo

	SignInPath     string
	DefaultLanding string
	Logger         *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, m := range middleware.Common() {
		e.Use(m)
	}
	e.Use(middleware.RequestLogger(d.Logger))

	// Edge gate: classifies every path and redirects unauthenticated
	// requests for protected paths to sign-in. Runs before any page
	// handler.
	e.Use(middleware.SessionGate(d.Auth.SessionSecret, d.SignInPath))

	authH := &AuthHTTP{Svc: d.Auth, SignInPath: d.SignInPath, DefaultLanding: d.DefaultLanding}
	pagesH := &PagesHTTP{Repo: d.Repo}
	customerH := &CustomerHTTP{Svc: d.Customers}
	orderH := &OrderHTTP{Svc: d.Orders}

	e.GET("/auth/signin", authH.SignInPage)
	e.POST("/auth/signin", authH.SignIn)
	e.POST("/auth/signout", authH.SignOut)
	e.GET("/api/auth/session", authH.CurrentSession)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, d.DefaultLanding)
	})
	e.GET("/dashboard", pagesH.Dashboard)
	e.GET("/reports", pagesH.Reports)
	e.GET("/settings", pagesH.Settings)

	e.GET("/customers", customerH.List)
	e.GET("/customers/search", customerH.Search)
	e.POST("/customers", customerH.Create)
	e.GET("/customers/:id", customerH.Get)
	e.PUT("/customers/:id", customerH.Update)
	e.DELETE("/customers/:id", customerH.Delete)

	e.GET("/orders", orderH.List)
	e.POST("/orders", orderH.Create)
	e.GET("/orders/:id", orderH.Get)
	e.PUT("/orders/:id/status", orderH.UpdateStatus)
	e.DELETE("/orders/:id", orderH.Delete)

	// The admin section re-checks the role on top of the edge gate.
	admin := e.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", pagesH.AdminUsers)
	admin.GET("/audit", pagesH.AdminAudit)
}
