package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/examia/examia-backend/internal/config"
	"github.com/examia/examia-backend/internal/server"
	"github.com/examia/examia-backend/internal/server/bootstrap"
	"github.com/examia/examia-backend/internal/server/storage"
	"github.com/examia/examia-backend/internal/server/storage/boltdb"
	"github.com/examia/examia-backend/internal/server/storage/sqlite"
	"github.com/examia/examia-backend/internal/server/token"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// store is what a storage driver must provide
type store interface {
	storage.AccountStorage
	storage.PYQStorage
	Close() error
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close storage", slog.Any("error", cerr))
		}
	}()

	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = token.RandomSecret()
		if err != nil {
			return fmt.Errorf("failed to generate signing secret: %w", err)
		}
		logger.Warn("JWT_SECRET not set, generated an ephemeral secret; issued tokens will not survive a restart")
	}
	tokens := token.NewService(secret, cfg.TokenTTL)

	if err := bootstrap.EnsureAdmin(ctx, logger, st, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to provision admin: %w", err)
	}

	srv := server.New(logger, cfg, st, st, tokens, Version)

	logger.Info("starting EXAMIA backend",
		slog.String("version", Version),
		slog.String("storage_driver", cfg.StorageDriver))

	return srv.Run(ctx)
}

// openStorage picks the configured storage driver. Both drivers honor
// the same durability and uniqueness contracts.
func openStorage(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.StorageDriver {
	case config.DriverBolt:
		return boltdb.New(ctx, cfg.DatabasePath)
	default:
		return sqlite.New(ctx, cfg.DatabasePath)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("EXAMIA Backend\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
