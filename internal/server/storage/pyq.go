package storage

import (
	"context"

	"github.com/examia/examia-backend/internal/models"
)

// PYQStorage defines the interface for PYQ record persistence.
// Every mutation is durable before the call returns: a subsequent
// ListPYQs, even from a freshly started process, reflects it.
type PYQStorage interface {
	// CreatePYQ persists a new record. The caller has already
	// validated fields and assigned id and creation timestamp.
	CreatePYQ(ctx context.Context, pyq *models.PYQ) error

	// ListPYQs returns records matching the filter in insertion order.
	// An empty filter returns everything.
	ListPYQs(ctx context.Context, filter models.PYQFilter) ([]*models.PYQ, error)

	// DeletePYQ removes one record by id.
	// Returns ErrPYQNotFound if the id does not exist.
	DeletePYQ(ctx context.Context, id string) error
}
