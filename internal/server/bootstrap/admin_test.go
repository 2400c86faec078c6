package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examia/examia-backend/internal/crypto"
	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
)

type fakeAccountStorage struct {
	accounts map[string]*models.Account // email -> Account
	updates  int
}

func newFakeAccountStorage() *fakeAccountStorage {
	return &fakeAccountStorage{accounts: make(map[string]*models.Account)}
}

func (f *fakeAccountStorage) CreateAccount(ctx context.Context, account *models.Account) error {
	if _, exists := f.accounts[account.Email]; exists {
		return storage.ErrAccountExists
	}
	f.accounts[account.Email] = account
	return nil
}

func (f *fakeAccountStorage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeAccountStorage) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, storage.ErrAccountNotFound
}

func (f *fakeAccountStorage) UpdateAccount(ctx context.Context, account *models.Account) error {
	for email, existing := range f.accounts {
		if existing.ID == account.ID {
			delete(f.accounts, email)
			f.accounts[account.Email] = account
			f.updates++
			return nil
		}
	}
	return storage.ErrAccountNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestEnsureAdmin_CreatesAccount(t *testing.T) {
	accounts := newFakeAccountStorage()

	err := EnsureAdmin(context.Background(), testLogger(), accounts, "admin@x.com", "adminpass")
	require.NoError(t, err)

	admin := accounts.accounts["admin@x.com"]
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, crypto.VerifyPassword("adminpass", admin.PasswordHash))
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	accounts := newFakeAccountStorage()
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, testLogger(), accounts, "admin@x.com", "adminpass"))
	firstHash := accounts.accounts["admin@x.com"].PasswordHash

	require.NoError(t, EnsureAdmin(ctx, testLogger(), accounts, "admin@x.com", "adminpass"))

	// Same credentials must not touch the stored row
	assert.Equal(t, firstHash, accounts.accounts["admin@x.com"].PasswordHash)
	assert.Equal(t, 0, accounts.updates)
	assert.Len(t, accounts.accounts, 1)
}

func TestEnsureAdmin_NormalizesEmail(t *testing.T) {
	accounts := newFakeAccountStorage()
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, testLogger(), accounts, "  Admin@X.Com ", "adminpass"))
	require.NoError(t, EnsureAdmin(ctx, testLogger(), accounts, "ADMIN@x.com", "adminpass"))

	assert.Len(t, accounts.accounts, 1)
	assert.NotNil(t, accounts.accounts["admin@x.com"])
}

func TestEnsureAdmin_RotatesPassword(t *testing.T) {
	accounts := newFakeAccountStorage()
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, testLogger(), accounts, "admin@x.com", "oldpass"))
	require.NoError(t, EnsureAdmin(ctx, testLogger(), accounts, "admin@x.com", "newpass"))

	admin := accounts.accounts["admin@x.com"]
	assert.True(t, crypto.VerifyPassword("newpass", admin.PasswordHash))
	assert.False(t, crypto.VerifyPassword("oldpass", admin.PasswordHash))
	assert.Equal(t, 1, accounts.updates)
}

func TestEnsureAdmin_PromotesExistingAccount(t *testing.T) {
	accounts := newFakeAccountStorage()
	ctx := context.Background()

	hash, err := crypto.HashPassword("adminpass")
	require.NoError(t, err)

	now := time.Now().UTC()
	accounts.accounts["admin@x.com"] = &models.Account{
		ID:           uuid.New().String(),
		Name:         "Someone",
		Email:        "admin@x.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	require.NoError(t, EnsureAdmin(ctx, testLogger(), accounts, "admin@x.com", "adminpass"))

	assert.Equal(t, models.RoleAdmin, accounts.accounts["admin@x.com"].Role)
}

func TestEnsureAdmin_SkipsWithoutCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"both empty", "", ""},
		{"no email", "", "adminpass"},
		{"no password", "admin@x.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := newFakeAccountStorage()
			err := EnsureAdmin(context.Background(), testLogger(), accounts, tt.email, tt.password)
			require.NoError(t, err)
			assert.Empty(t, accounts.accounts)
		})
	}
}
