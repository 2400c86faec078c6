package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/examia/examia-backend/internal/crypto"
	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
	"github.com/examia/examia-backend/internal/server/token"
	"github.com/examia/examia-backend/internal/validation"
	"github.com/examia/examia-backend/pkg/api"
)

// AuthHandler handles signup and login requests
type AuthHandler struct {
	logger   *slog.Logger
	accounts storage.AccountStorage
	tokens   *token.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, accounts storage.AccountStorage, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		accounts: accounts,
		tokens:   tokens,
	}
}

// Signup handles POST /api/auth/signup.
// New accounts always get the user role; admin exists only through
// bootstrap provisioning.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signup request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		SendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		SendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			h.logger.WarnContext(ctx, "signup for existing email", slog.String("email", email))
			SendError(h.logger, w, "Email already registered", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create account", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	signed, err := h.tokens.Issue(account)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "account created",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)))

	SendJSON(h.logger, w, api.AuthResponse{
		Token: signed,
		Role:  string(account.Role),
		Name:  account.Name,
	}, http.StatusOK)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		SendError(h.logger, w, "email and password are required", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			// Same answer as a wrong password; don't leak which emails exist
			SendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get account", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !crypto.VerifyPassword(req.Password, account.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed", slog.String("account_id", account.ID))
		SendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	signed, err := h.tokens.Issue(account)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "login successful",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)))

	SendJSON(h.logger, w, api.AuthResponse{
		Token: signed,
		Role:  string(account.Role),
		Name:  account.Name,
	}, http.StatusOK)
}
