package service

import (
	"context"
	"errors"

	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/repo"
)

var (
	ErrOrderMissing = errors.New("order not found")
	ErrEmptyOrder   = errors.New("order needs at least one item")
	ErrBadItem      = errors.New("order item needs a name, positive quantity and non-negative price")
)

type OrderService struct {
	Repo *repo.GormRepo
}

type OrderItemInput struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (s *OrderService) List(ctx context.Context, q repo.OrderQuery) ([]models.Order, int64, error) {
	if q.Status != "" && !models.ValidOrderStatus(q.Status) {
		return nil, 0, ErrUnknownStatus
	}
	return s.Repo.ListOrders(ctx, q)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderMissing
		}
		return nil, err
	}
	return o, nil
}

// Create validates the customer exists, denormalizes its name onto the
// order and computes the total from the items.
func (s *OrderService) Create(ctx context.Context, customerID string, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, it := range items {
		if it.Name == "" || it.Quantity <= 0 || it.Price < 0 {
			return nil, ErrBadItem
		}
	}

	customer, err := s.Repo.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCustomerMissing
		}
		return nil, err
	}

	order := models.Order{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Status:       models.OrderStatusPending,
	}
	for _, it := range items {
		order.Items = append(order.Items, models.OrderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	if err := s.Repo.CreateOrder(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrUnknownStatus
	}
	if err := s.Repo.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderMissing
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderMissing
		}
		return err
	}
	return nil
}
