// Package server assembles the HTTP surface: route table, access
// policies, middleware chain and server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/examia/examia-backend/internal/config"
	"github.com/examia/examia-backend/internal/server/handlers"
	"github.com/examia/examia-backend/internal/server/middleware"
	"github.com/examia/examia-backend/internal/server/storage"
	"github.com/examia/examia-backend/internal/server/token"
)

// Server is the HTTP server for the EXAMIA backend
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// New wires handlers, the per-route access policy table and the
// middleware chain into a ready-to-run server.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	accounts storage.AccountStorage,
	pyqs storage.PYQStorage,
	tokens *token.Service,
	version string,
) *Server {
	authHandler := handlers.NewAuthHandler(logger, accounts, tokens)
	pyqHandler := handlers.NewPYQHandler(logger, pyqs)
	healthHandler := handlers.NewHealthHandler(logger, version)

	// Credential endpoints get a tighter budget against brute force
	limit := middleware.RateLimit(20, time.Minute, logger)

	mux := http.NewServeMux()
	for _, rt := range routeTable(authHandler, pyqHandler, healthHandler) {
		h := http.Handler(rt.handler)
		if rt.limited {
			h = limit(h)
		}
		h = middleware.Guard(logger, tokens, rt.policy)(h)
		mux.Handle(rt.pattern, h)
	}

	// Outermost first: CORS answers preflight before anything else,
	// recovery wraps everything that can panic, logging sees the
	// final status code.
	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/health"})(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.CORS(cfg.FrontendOrigin)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler returns the assembled handler chain for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is canceled, then shuts down
// gracefully with a bounded drain period.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", slog.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
