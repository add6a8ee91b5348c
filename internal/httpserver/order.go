package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/securebank/portal/internal/logging"
	"github.com/securebank/portal/internal/repo"
	"github.com/securebank/portal/internal/service"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	q := repo.OrderQuery{
		Filter:        c.QueryParam("filter"),
		Status:        c.QueryParam("status"),
		SortField:     c.QueryParam("sortField"),
		SortDirection: c.QueryParam("sortDirection"),
		Page:          intQuery(c, "page", 1),
		PageSize:      intQuery(c, "pageSize", 10),
	}

	orders, total, err := h.Svc.List(ctx, q)
	if err != nil {
		if errors.Is(err, service.ErrUnknownStatus) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		logging.FromContext(ctx).Error("order_list_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load orders")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"orders": orders,
		"total":  total,
		"page":   q.Page,
	})
}

func (h *OrderHTTP) Get(c echo.Context) error {
	order, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")

	var req struct {
		CustomerID string                   `json:"customerId" form:"customerId"`
		Items      []service.OrderItemInput `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("order_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Create(ctx, req.CustomerID, req.Items)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return orderError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func orderError(err error) error {
	switch {
	case errors.Is(err, service.ErrOrderMissing):
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrCustomerMissing):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "customer not found")
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrBadItem),
		errors.Is(err, service.ErrUnknownStatus):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
