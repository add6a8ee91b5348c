package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/securebank/portal/internal/hash"
	"github.com/securebank/portal/internal/models"
)

type seedAccount struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	Role        string
}

// Development accounts. Passwords are bcrypt-hashed on insert; nothing is
// stored in the clear.
var devAccounts = []seedAccount{
	{ID: "admin-1", Email: "admin@securebank.com", Password: "admin123", DisplayName: "Admin User", Role: models.RoleAdmin},
	{ID: "manager-1", Email: "manager@securebank.com", Password: "manager123", DisplayName: "Sarah Manager", Role: models.RoleManager},
	{ID: "user-1", Email: "user@securebank.com", Password: "user123", DisplayName: "John User", Role: models.RoleUser},
}

// SeedAccounts inserts the development accounts when the accounts table is
// empty. Existing data is never touched.
func SeedAccounts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, sa := range devAccounts {
		pwHash, err := hash.HashPassword(sa.Password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		acc := models.Account{
			ID:           sa.ID,
			Email:        sa.Email,
			DisplayName:  sa.DisplayName,
			PasswordHash: pwHash,
			Role:         sa.Role,
		}
		if err := db.Create(&acc).Error; err != nil {
			return fmt.Errorf("seed account %s: %w", sa.Email, err)
		}
	}
	return nil
}
