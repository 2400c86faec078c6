package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern defines the accepted email shape.
// Deliberately permissive; the unique index on the normalized value is
// what actually guards the invariant.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	// MaxEmailLen maximum accepted email length
	MaxEmailLen = 254
	// MinPasswordLen minimum accepted password length
	MinPasswordLen = 6
	// MaxPasswordLen bcrypt truncates beyond 72 bytes
	MaxPasswordLen = 72
)

// NormalizeEmail trims surrounding whitespace and lower-cases the
// address. Every comparison and stored value goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the normalized address against the pattern
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}

	return nil
}

// ValidatePassword checks minimal password requirements
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}
