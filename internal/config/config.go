// Package config handles runtime configuration for the server,
// sourced from environment variables with development defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names accepted in STORAGE_DRIVER
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config holds runtime settings for the EXAMIA backend.
//
// Fields:
//   - Address: bind address for the HTTP endpoint.
//   - StorageDriver: "sqlite" (default) or "bolt".
//   - DatabasePath: path to the database file.
//   - JWTSecret: HMAC secret for signing tokens. When empty an
//     ephemeral secret is generated and all tokens die with the process.
//   - TokenTTL: session token lifetime.
//   - AdminEmail / AdminPassword: bootstrap admin credentials; the
//     environment is authoritative, the stored row is derived.
//   - FrontendOrigin: allowed CORS origin for the web frontend.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	Address        string
	StorageDriver  string
	DatabasePath   string
	JWTSecret      string
	TokenTTL       time.Duration
	AdminEmail     string
	AdminPassword  string
	FrontendOrigin string
	LogLevel       string
}

// Load builds a Config from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is the normal production case
	_ = godotenv.Load()

	cfg := &Config{
		Address:        envOrDefault("ADDRESS", ":8080"),
		StorageDriver:  envOrDefault("STORAGE_DRIVER", DriverSQLite),
		DatabasePath:   envOrDefault("DATABASE_PATH", "examia.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		FrontendOrigin: os.Getenv("FRONTEND_ORIGIN"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.StorageDriver != DriverSQLite && cfg.StorageDriver != DriverBolt {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	ttl := envOrDefault("TOKEN_TTL", "168h")
	parsed, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
	}
	if parsed <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %q", ttl)
	}
	cfg.TokenTTL = parsed

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
