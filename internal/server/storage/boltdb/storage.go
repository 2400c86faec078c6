// Package boltdb is the file-backed storage driver. It keeps the same
// contracts as the sqlite driver: bbolt's single update transaction at
// a time serializes writers, and every mutation is fsynced before the
// call returns.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketAccounts     = []byte("accounts")       // account id -> JSON
	bucketAccountEmail = []byte("accounts_email") // normalized email -> account id
	bucketPYQs         = []byte("pyqs")           // insertion seq (8-byte BE) -> JSON
	bucketPYQIndex     = []byte("pyqs_id")        // record id -> insertion seq
)

// Storage is the bbolt-backed implementation of the account and PYQ
// stores
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance.
// dbPath is the path to the database file.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the required buckets if they do not exist
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketAccounts, bucketAccountEmail, bucketPYQs, bucketPYQIndex} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}
