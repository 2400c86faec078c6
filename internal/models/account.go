package models

import "time"

// Role defines the access level of an account
type Role string

const (
	// RoleUser is the default role assigned at signup
	RoleUser Role = "user"
	// RoleAdmin grants access to mutating PYQ endpoints
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account represents a registered user of the service
// Email is stored normalized (trimmed, lower-cased) and is unique
type Account struct {
	ID           string    `json:"id"`         // UUID
	Name         string    `json:"name"`       // display name, optional for admin
	Email        string    `json:"email"`      // normalized, unique
	PasswordHash string    `json:"-"`          // bcrypt hash, never serialized
	Role         Role      `json:"role"`       // user | admin
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}
