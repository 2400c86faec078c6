// Package bootstrap provisions the admin account on process start.
// The environment is the source of truth for admin credentials; the
// stored row is a derived cache this routine keeps in sync.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/examia/examia-backend/internal/crypto"
	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
	"github.com/examia/examia-backend/internal/validation"
)

// EnsureAdmin makes sure exactly one account matches the configured
// admin email with role admin and a hash of the configured password.
// Idempotent: safe to run on every start and concurrently with other
// instances; the normalized email is the idempotency key.
func EnsureAdmin(ctx context.Context, logger *slog.Logger, accounts storage.AccountStorage, email, password string) error {
	if email == "" || password == "" {
		logger.Warn("admin credentials not configured, skipping admin provisioning")
		return nil
	}

	email = validation.NormalizeEmail(email)

	existing, err := accounts.GetAccountByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrAccountNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	if existing != nil {
		return syncAdmin(ctx, logger, accounts, existing, password)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &models.Account{
		ID:           uuid.New().String(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := accounts.CreateAccount(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			// Another instance created it between our check and insert
			existing, err := accounts.GetAccountByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("failed to re-read admin account: %w", err)
			}
			return syncAdmin(ctx, logger, accounts, existing, password)
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("admin account created", slog.String("account_id", admin.ID))
	return nil
}

// syncAdmin brings an existing account in line with the configured
// credentials: role forced to admin, hash refreshed on rotation.
func syncAdmin(ctx context.Context, logger *slog.Logger, accounts storage.AccountStorage, account *models.Account, password string) error {
	roleOK := account.Role == models.RoleAdmin
	passwordOK := crypto.VerifyPassword(password, account.PasswordHash)

	if roleOK && passwordOK {
		logger.Info("admin account up to date", slog.String("account_id", account.ID))
		return nil
	}

	if !passwordOK {
		hash, err := crypto.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		account.PasswordHash = hash
	}

	account.Role = models.RoleAdmin
	account.UpdatedAt = time.Now().UTC()

	if err := accounts.UpdateAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to update admin account: %w", err)
	}

	logger.Info("admin account synced",
		slog.String("account_id", account.ID),
		slog.Bool("password_rotated", !passwordOK),
		slog.Bool("role_fixed", !roleOK))
	return nil
}
