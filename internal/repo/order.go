package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/util"
)

var orderSortColumns = map[string]string{
	"customerName": "customer_name",
	"total":        "total",
	"status":       "status",
	"createdAt":    "created_at",
}

type OrderQuery struct {
	Filter        string
	Status        string
	SortField     string
	SortDirection string
	Page          int
	PageSize      int
}

func (q OrderQuery) orderClause() string {
	col, ok := orderSortColumns[q.SortField]
	if !ok {
		col = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(q.SortDirection, "asc") {
		dir = "asc"
	}
	return col + " " + dir
}

func (r *GormRepo) ListOrders(ctx context.Context, q OrderQuery) ([]models.Order, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Order{})
	if f := strings.TrimSpace(q.Filter); f != "" {
		tx = tx.Where("lower(customer_name) LIKE ?", "%"+strings.ToLower(f)+"%")
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	from, limit := util.Calculate(q.Page, q.PageSize)
	var orders []models.Order
	if err := tx.Preload("Items").Order(q.orderClause()).Offset(from).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder persists the order and its items. The total is recomputed
// from the items; the caller's value is ignored.
func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	total := 0.0
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
		total += float64(o.Items[i].Quantity) * o.Items[i].Price
	}
	o.Total = total
	return r.DB.WithContext(ctx).Create(o).Error
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id, status string) error {
	result := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	})
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

func (r *GormRepo) CountOrdersByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

type StatusTotal struct {
	Status string  `json:"status"`
	Orders int64   `json:"orders"`
	Total  float64 `json:"total"`
}

// OrderTotalsByStatus aggregates order counts and value per status, for the
// reports page.
func (r *GormRepo) OrderTotalsByStatus(ctx context.Context) ([]StatusTotal, error) {
	var rows []StatusTotal
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, count(*) as orders, coalesce(sum(total), 0) as total").
		Group("status").
		Order("status asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
