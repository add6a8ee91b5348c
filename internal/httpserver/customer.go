package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/securebank/portal/internal/logging"
	"github.com/securebank/portal/internal/repo"
	"github.com/securebank/portal/internal/service"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func intQuery(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (h *CustomerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	q := repo.CustomerQuery{
		Filter:        c.QueryParam("filter"),
		SortField:     c.QueryParam("sortField"),
		SortDirection: c.QueryParam("sortDirection"),
		Page:          intQuery(c, "page", 1),
		PageSize:      intQuery(c, "pageSize", 10),
	}

	customers, total, err := h.Svc.List(ctx, q)
	if err != nil {
		logging.FromContext(ctx).Error("customer_list_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load customers")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"customers": customers,
		"total":     total,
		"page":      q.Page,
	})
}

func (h *CustomerHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	customers, total, err := h.Svc.Search(ctx, query, intQuery(c, "page", 1), intQuery(c, "pageSize", 10))
	if err != nil {
		logging.FromContext(ctx).Error("customer_search_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"customers": customers,
		"total":     total,
	})
}

func (h *CustomerHTTP) Get(c echo.Context) error {
	customer, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return customerError(err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer_create")

	var req struct {
		Name    string `json:"name" form:"name"`
		Email   string `json:"email" form:"email"`
		Company string `json:"company" form:"company"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("customer_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.Create(ctx, req.Name, req.Email, req.Company)
	if err != nil {
		return customerError(err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name    string `json:"name" form:"name"`
		Email   string `json:"email" form:"email"`
		Company string `json:"company" form:"company"`
		Status  string `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.Update(ctx, c.Param("id"), req.Name, req.Email, req.Company, req.Status)
	if err != nil {
		return customerError(err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHTTP) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return customerError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func customerError(err error) error {
	switch {
	case errors.Is(err, service.ErrCustomerMissing):
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	case errors.Is(err, service.ErrCustomerFields), errors.Is(err, service.ErrUnknownStatus):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
