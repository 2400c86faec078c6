package storage

import (
	"context"

	"github.com/examia/examia-backend/internal/models"
)

// AccountStorage defines the interface for account persistence.
// Implementations receive emails already normalized by the caller.
type AccountStorage interface {
	// CreateAccount creates a new account.
	// Returns ErrAccountExists if the email is already taken.
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccountByEmail retrieves an account by normalized email.
	// Returns ErrAccountNotFound if no account matches.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetAccountByID retrieves an account by id.
	// Returns ErrAccountNotFound if no account matches.
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)

	// UpdateAccount persists changed fields of an existing account.
	// Returns ErrAccountNotFound if no account matches the id.
	UpdateAccount(ctx context.Context, account *models.Account) error
}
