package service

import (
	"context"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/securebank/portal/internal/models"
	"github.com/securebank/portal/internal/repo"
	"github.com/securebank/portal/internal/search"
	"github.com/securebank/portal/internal/util"
)

var (
	ErrCustomerFields  = errors.New("name, email and company are required")
	ErrUnknownStatus   = errors.New("unknown status value")
	ErrCustomerMissing = errors.New("customer not found")
)

type CustomerService struct {
	Repo          *repo.GormRepo
	ES            *elasticsearch.Client
	CustomerIndex string
}

func (s *CustomerService) List(ctx context.Context, q repo.CustomerQuery) ([]models.Customer, int64, error) {
	return s.Repo.ListCustomers(ctx, q)
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	c, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCustomerMissing
		}
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Create(ctx context.Context, name, email, company string) (*models.Customer, error) {
	name, email, company = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(company)
	if name == "" || email == "" || company == "" {
		return nil, ErrCustomerFields
	}
	c := models.Customer{
		Name:    name,
		Email:   email,
		Company: company,
		Status:  models.CustomerStatusPending,
	}
	if err := s.Repo.CreateCustomer(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, name, email, company, status string) (*models.Customer, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(name); v != "" {
		existing.Name = v
	}
	if v := strings.TrimSpace(email); v != "" {
		existing.Email = v
	}
	if v := strings.TrimSpace(company); v != "" {
		existing.Company = v
	}
	if status != "" {
		if !models.ValidCustomerStatus(status) {
			return nil, ErrUnknownStatus
		}
		existing.Status = status
	}

	if err := s.Repo.UpdateCustomer(ctx, existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCustomerMissing
		}
		return nil, err
	}
	return existing, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCustomerMissing
		}
		return err
	}
	return nil
}

// Search uses the Elasticsearch index when configured and degrades to the
// database filter otherwise.
func (s *CustomerService) Search(ctx context.Context, query string, page, pageSize int) ([]models.Customer, int64, error) {
	if s.ES != nil {
		from, limit := util.Calculate(page, pageSize)
		total, customers, err := search.Customers(ctx, s.ES, s.CustomerIndex, query, from, limit)
		if err != nil {
			return nil, 0, err
		}
		return customers, total, nil
	}

	return s.Repo.ListCustomers(ctx, repo.CustomerQuery{
		Filter:   query,
		Page:     page,
		PageSize: pageSize,
	})
}
