package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/examia/examia-backend/internal/server/token"
	"github.com/examia/examia-backend/pkg/api"
)

// contextKey type for context keys
type contextKey string

// ClaimsKey holds the verified token claims in the request context
const ClaimsKey contextKey = "claims"

// WithClaims injects verified claims into the context
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims extracts the verified claims placed by the access guard
func GetClaims(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*token.Claims)
	return claims, ok
}

// SendJSON writes a JSON response
func SendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError writes a structured error payload
func SendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	SendJSON(logger, w, api.ErrorResponse{Error: message}, statusCode)
}
