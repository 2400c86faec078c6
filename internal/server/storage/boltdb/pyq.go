package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
)

// CreatePYQ persists a new record under a NextSequence key.
// bbolt keys iterate in byte order, so big-endian sequence numbers
// give stable insertion-order listings for free.
func (s *Storage) CreatePYQ(ctx context.Context, pyq *models.PYQ) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		records := tx.Bucket(bucketPYQs)

		seq, err := records.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		data, err := json.Marshal(pyq)
		if err != nil {
			return fmt.Errorf("failed to marshal pyq: %w", err)
		}

		if err := records.Put(key, data); err != nil {
			return fmt.Errorf("failed to save pyq: %w", err)
		}

		if err := tx.Bucket(bucketPYQIndex).Put([]byte(pyq.ID), key); err != nil {
			return fmt.Errorf("failed to index pyq id: %w", err)
		}

		return nil
	})
}

// ListPYQs returns records matching the filter in insertion order
func (s *Storage) ListPYQs(ctx context.Context, filter models.PYQFilter) ([]*models.PYQ, error) {
	pyqs := make([]*models.PYQ, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPYQs).ForEach(func(k, v []byte) error {
			pyq := &models.PYQ{}
			if err := json.Unmarshal(v, pyq); err != nil {
				return fmt.Errorf("failed to unmarshal pyq: %w", err)
			}

			if filter.Matches(pyq) {
				pyqs = append(pyqs, pyq)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return pyqs, nil
}

// DeletePYQ removes one record by id
func (s *Storage) DeletePYQ(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		index := tx.Bucket(bucketPYQIndex)

		key := index.Get([]byte(id))
		if key == nil {
			return storage.ErrPYQNotFound
		}

		if err := tx.Bucket(bucketPYQs).Delete(key); err != nil {
			return fmt.Errorf("failed to delete pyq: %w", err)
		}

		if err := index.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete pyq index: %w", err)
		}

		return nil
	})
}
