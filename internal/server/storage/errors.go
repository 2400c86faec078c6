package storage

import "errors"

// Common storage errors
var (
	// ErrAccountNotFound indicates that no account matched the lookup
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates that an account with this normalized email already exists
	ErrAccountExists = errors.New("account already exists")

	// ErrPYQNotFound indicates that no PYQ record matched the id
	ErrPYQNotFound = errors.New("pyq record not found")
)
