package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/securebank/portal/internal/db"
	"github.com/securebank/portal/internal/hash"
	"github.com/securebank/portal/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return &GormRepo{DB: gdb}
}

func createAccount(t *testing.T, r *GormRepo, id, email, password, role string) *models.Account {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	acc := models.Account{
		ID:           id,
		Email:        email,
		DisplayName:  "Test " + id,
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(t, r.DB.Create(&acc).Error)
	return &acc
}

func TestAccountByCredentials(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	createAccount(t, r, "user-1", "user@securebank.com", "user123", models.RoleUser)

	t.Run("valid pair", func(t *testing.T) {
		acc, err := r.AccountByCredentials(ctx, "user@securebank.com", "user123")
		require.NoError(t, err)
		require.Equal(t, "user-1", acc.ID)
		require.Equal(t, models.RoleUser, acc.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		acc, err := r.AccountByCredentials(ctx, "user@securebank.com", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Nil(t, acc)
	})

	t.Run("unknown email", func(t *testing.T) {
		acc, err := r.AccountByCredentials(ctx, "ghost@securebank.com", "user123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Nil(t, acc)
	})
}

func TestListAccounts_SortedByEmail(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	createAccount(t, r, "b-1", "bob@securebank.com", "pw", models.RoleManager)
	createAccount(t, r, "a-1", "alice@securebank.com", "pw", models.RoleAdmin)

	accounts, err := r.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "alice@securebank.com", accounts[0].Email)
	require.Equal(t, "bob@securebank.com", accounts[1].Email)
}

func TestRecordAndListAuditEvents(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	for _, typ := range []string{"signin_failed", "signin_failed", "signin_succeeded"} {
		require.NoError(t, r.RecordAuditEvent(ctx, &models.AuditEvent{
			Type:  typ,
			Email: "user@securebank.com",
		}))
	}

	events, total, err := r.ListAuditEvents(ctx, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, events, 3)
}
