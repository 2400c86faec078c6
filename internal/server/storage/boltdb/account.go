package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
)

// boltAccount is the stored form of an account. models.Account hides
// the password hash from JSON serialization; the store must keep it.
type boltAccount struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toBoltAccount(a *models.Account) *boltAccount {
	return &boltAccount{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (b *boltAccount) toModel() *models.Account {
	return &models.Account{
		ID:           b.ID,
		Name:         b.Name,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		Role:         models.Role(b.Role),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// CreateAccount creates a new account.
// The email index is checked and written inside the same update
// transaction, so two racing creates for one email cannot both win.
func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		emails := tx.Bucket(bucketAccountEmail)
		if emails.Get([]byte(account.Email)) != nil {
			return storage.ErrAccountExists
		}

		data, err := json.Marshal(toBoltAccount(account))
		if err != nil {
			return fmt.Errorf("failed to marshal account: %w", err)
		}

		if err := tx.Bucket(bucketAccounts).Put([]byte(account.ID), data); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}

		if err := emails.Put([]byte(account.Email), []byte(account.ID)); err != nil {
			return fmt.Errorf("failed to index account email: %w", err)
		}

		return nil
	})
}

// GetAccountByEmail retrieves an account by normalized email
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account *models.Account

	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(bucketAccountEmail).Get([]byte(email))
		if id == nil {
			return storage.ErrAccountNotFound
		}

		var err error
		account, err = getAccount(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccountByID retrieves an account by id
func (s *Storage) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	var account *models.Account

	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		account, err = getAccount(tx, []byte(id))
		return err
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// UpdateAccount persists changed fields of an existing account.
// The email index is rewritten when the address changed.
func (s *Storage) UpdateAccount(ctx context.Context, account *models.Account) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		existing, err := getAccount(tx, []byte(account.ID))
		if err != nil {
			return err
		}

		data, err := json.Marshal(toBoltAccount(account))
		if err != nil {
			return fmt.Errorf("failed to marshal account: %w", err)
		}

		if err := tx.Bucket(bucketAccounts).Put([]byte(account.ID), data); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}

		emails := tx.Bucket(bucketAccountEmail)
		if existing.Email != account.Email {
			if err := emails.Delete([]byte(existing.Email)); err != nil {
				return fmt.Errorf("failed to drop old email index: %w", err)
			}
		}
		if err := emails.Put([]byte(account.Email), []byte(account.ID)); err != nil {
			return fmt.Errorf("failed to index account email: %w", err)
		}

		return nil
	})
}

func getAccount(tx *bbolt.Tx, id []byte) (*models.Account, error) {
	data := tx.Bucket(bucketAccounts).Get(id)
	if data == nil {
		return nil, storage.ErrAccountNotFound
	}

	stored := &boltAccount{}
	if err := json.Unmarshal(data, stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return stored.toModel(), nil
}
