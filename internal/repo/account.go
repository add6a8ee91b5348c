package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/securebank/portal/internal/hash"
	"github.com/securebank/portal/internal/models"
)

// AccountByCredentials looks up the account for an email/password pair.
// Unknown email and wrong password both return ErrInvalidCredentials so the
// caller cannot tell which one failed.
func (r *GormRepo) AccountByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

func (r *GormRepo) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *GormRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.DB.WithContext(ctx).Order("email asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
