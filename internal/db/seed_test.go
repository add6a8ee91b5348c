package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/securebank/portal/internal/hash"
	"github.com/securebank/portal/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(gdb))
	return gdb
}

func TestSeedAccounts(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	require.NoError(t, SeedAccounts(gdb))

	var accounts []models.Account
	require.NoError(t, gdb.Order("id asc").Find(&accounts).Error)
	require.Len(t, accounts, 3)

	byEmail := map[string]models.Account{}
	for _, a := range accounts {
		byEmail[a.Email] = a
	}
	assert.Equal(t, models.RoleAdmin, byEmail["admin@securebank.com"].Role)
	assert.Equal(t, models.RoleManager, byEmail["manager@securebank.com"].Role)
	assert.Equal(t, models.RoleUser, byEmail["user@securebank.com"].Role)

	// Passwords are stored hashed, never in the clear.
	admin := byEmail["admin@securebank.com"]
	assert.NotEqual(t, "admin123", admin.PasswordHash)
	assert.True(t, hash.CheckPassword(admin.PasswordHash, "admin123"))
}

func TestSeedAccounts_Idempotent(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	require.NoError(t, SeedAccounts(gdb))
	require.NoError(t, SeedAccounts(gdb))

	var count int64
	require.NoError(t, gdb.Model(&models.Account{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSeedAccounts_LeavesExistingDataAlone(t *testing.T) {
	t.Parallel()

	gdb := newTestDB(t)
	existing := models.Account{
		ID:           "custom-1",
		Email:        "existing@securebank.com",
		DisplayName:  "Existing",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	require.NoError(t, gdb.Create(&existing).Error)

	require.NoError(t, SeedAccounts(gdb))

	var count int64
	require.NoError(t, gdb.Model(&models.Account{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOpen_SQLite(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/portal.db"
	gdb, err := Open(context.Background(), "", path)
	require.NoError(t, err)

	var count int64
	assert.NoError(t, gdb.Model(&models.Account{}).Count(&count).Error)
}
