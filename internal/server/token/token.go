// Package token issues and verifies the signed session tokens that
// carry identity and role between requests. Tokens are stateless:
// verification needs only the signing secret, there is no server-side
// session table and no revocation.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/examia/examia-backend/internal/models"
)

// Verification failure kinds. An expired-but-well-signed token and a
// tampered token both map to 401 at the HTTP layer but must stay
// distinguishable here.
var (
	// ErrTokenExpired means the signature verified but the token is past its expiry
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid means the token is malformed or its signature does not verify
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the decoded payload of a verified token
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Service signs and verifies session tokens with a process-wide secret
type Service struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a token service.
// secret must be non-empty; use RandomSecret when none is configured.
func NewService(secret string, tokenTTL time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// RandomSecret generates an ephemeral signing secret for processes
// started without JWT_SECRET. Tokens issued against it become
// unverifiable after a restart; callers are expected to log that.
func RandomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// TTL returns the fixed token lifetime
func (s *Service) TTL() time.Duration {
	return s.tokenTTL
}

// Issue creates a signed token for the account. Lifetime is fixed at
// issuance; tokens are not renewable without a fresh login.
func (s *Service) Issue(account *models.Account) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    "examia",
		},
		Email: account.Email,
		Role:  account.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature integrity first, then expiry, and returns
// the decoded claims. Timestamps are compared in UTC.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	if !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
