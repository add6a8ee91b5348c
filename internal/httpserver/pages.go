package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/securebank/portal/internal/logging"
	"github.com/securebank/portal/internal/middleware"
	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/repo"
	"github.com/securebank/portal/internal/util"
)

type PagesHTTP struct {
	Repo *repo.GormRepo
}

func sessionPayload(c echo.Context) echo.Map {
	s := middleware.SessionFromContext(c)
	if s == nil {
		return nil
	}
	return echo.Map{
		"id":    s.AccountID,
		"name":  s.DisplayName,
		"email": s.Email,
		"role":  s.Role,
	}
}

func (h *PagesHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard")

	customers, err := h.Repo.CountCustomers(ctx)
	if err != nil {
		l.Error("dashboard_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}
	orders, err := h.Repo.CountOrders(ctx)
	if err != nil {
		l.Error("dashboard_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}
	pending, err := h.Repo.CountOrdersByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		l.Error("dashboard_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load dashboard")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": sessionPayload(c),
		"stats": echo.Map{
			"customers":      customers,
			"orders":         orders,
			"pending_orders": pending,
		},
	})
}

func (h *PagesHTTP) Reports(c echo.Context) error {
	ctx := c.Request().Context()

	rows, err := h.Repo.OrderTotalsByStatus(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("reports_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load report")
	}
	return c.JSON(http.StatusOK, echo.Map{"by_status": rows})
}

func (h *PagesHTTP) Settings(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": sessionPayload(c)})
}

func (h *PagesHTTP) AdminUsers(c echo.Context) error {
	ctx := c.Request().Context()

	accounts, err := h.Repo.ListAccounts(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("admin_users_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load users")
	}
	return c.JSON(http.StatusOK, echo.Map{"users": accounts})
}

func (h *PagesHTTP) AdminAudit(c echo.Context) error {
	ctx := c.Request().Context()

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 20)
	events, total, err := h.Repo.ListAuditEvents(ctx, page, pageSize)
	if err != nil {
		logging.FromContext(ctx).Error("admin_audit_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load audit trail")
	}

	_, limit := util.Calculate(page, pageSize)
	return c.JSON(http.StatusOK, echo.Map{
		"events":   events,
		"total":    total,
		"page":     page,
		"pageSize": limit,
	})
}
