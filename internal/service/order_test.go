package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/repo"
)

func newOrderFixture(t *testing.T) (*OrderService, *models.Customer) {
	t.Helper()

	customerSvc := newCustomerService(t)
	customer, err := customerSvc.Create(context.Background(), "Acme Corp", "ops@acme.example", "Acme")
	require.NoError(t, err)

	return &OrderService{Repo: customerSvc.Repo}, customer
}

func TestOrderService_Create(t *testing.T) {
	t.Parallel()

	svc, customer := newOrderFixture(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, customer.ID, []OrderItemInput{
		{Name: "Widget", Quantity: 2, Price: 12.50},
		{Name: "Gadget", Quantity: 1, Price: 80},
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, "Acme Corp", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 105, order.Total, 0.001)
}

func TestOrderService_CreateValidation(t *testing.T) {
	t.Parallel()

	svc, customer := newOrderFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, customer.ID, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create(ctx, customer.ID, []OrderItemInput{{Name: "", Quantity: 1, Price: 5}})
	assert.ErrorIs(t, err, ErrBadItem)

	_, err = svc.Create(ctx, customer.ID, []OrderItemInput{{Name: "Widget", Quantity: 0, Price: 5}})
	assert.ErrorIs(t, err, ErrBadItem)

	_, err = svc.Create(ctx, "ghost-customer", []OrderItemInput{{Name: "Widget", Quantity: 1, Price: 5}})
	assert.ErrorIs(t, err, ErrCustomerMissing)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Parallel()

	svc, customer := newOrderFixture(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, customer.ID, []OrderItemInput{{Name: "Widget", Quantity: 1, Price: 5}})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, "lost")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = svc.UpdateStatus(ctx, "missing-id", models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderMissing)
}

func TestOrderService_ListRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newOrderFixture(t)
	_, _, err := svc.List(context.Background(), repo.OrderQuery{Status: "misplaced"})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
