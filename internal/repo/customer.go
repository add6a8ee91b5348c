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

// customerSortColumns whitelists sortable fields so request input never
// reaches the ORDER BY clause directly.
var customerSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"company":   "company",
	"status":    "status",
	"createdAt": "created_at",
}

type CustomerQuery struct {
	Filter        string
	SortField     string
	SortDirection string
	Page          int
	PageSize      int
}

func (q CustomerQuery) orderClause() string {
	col, ok := customerSortColumns[q.SortField]
	if !ok {
		col = "name"
	}
	dir := "asc"
	if strings.EqualFold(q.SortDirection, "desc") {
		dir = "desc"
	}
	return col + " " + dir
}

func (r *GormRepo) ListCustomers(ctx context.Context, q CustomerQuery) ([]models.Customer, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Customer{})
	if f := strings.TrimSpace(q.Filter); f != "" {
		like := "%" + strings.ToLower(f) + "%"
		tx = tx.Where(
			"lower(name) LIKE ? OR lower(email) LIKE ? OR lower(company) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	from, limit := util.Calculate(q.Page, q.PageSize)
	var customers []models.Customer
	if err := tx.Order(q.orderClause()).Offset(from).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *GormRepo) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.CustomerStatusPending
	}
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	result := r.DB.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":    c.Name,
			"email":   c.Email,
			"company": c.Company,
			"status":  c.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteCustomer(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}
