package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
	"github.com/examia/examia-backend/pkg/api"
)

// PYQHandler handles question-record requests
type PYQHandler struct {
	logger *slog.Logger
	pyqs   storage.PYQStorage
}

// NewPYQHandler creates a new PYQ handler
func NewPYQHandler(logger *slog.Logger, pyqs storage.PYQStorage) *PYQHandler {
	return &PYQHandler{
		logger: logger,
		pyqs:   pyqs,
	}
}

// filterFromQuery builds the exact-match filter from query params.
// Absent params impose no constraint.
func filterFromQuery(r *http.Request) models.PYQFilter {
	q := r.URL.Query()
	return models.PYQFilter{
		Exam:    q.Get("exam"),
		Year:    q.Get("year"),
		Subject: q.Get("subject"),
		Chapter: q.Get("chapter"),
		Type:    q.Get("type"),
	}
}

// List handles GET /api/pyqs
// Records come back in insertion order; filters are exact matches.
func (h *PYQHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.pyqs.ListPYQs(ctx, filterFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list pyqs", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	SendJSON(h.logger, w, api.PYQListResponse{
		Count: len(items),
		Items: items,
	}, http.StatusOK)
}

// Chapters handles GET /api/pyqs/chapters
// Returns the distinct chapter names under the current filters, in
// first-seen order, so the frontend can populate its chapter picker.
func (h *PYQHandler) Chapters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := filterFromQuery(r)
	filter.Chapter = ""

	items, err := h.pyqs.ListPYQs(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list pyqs", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	seen := make(map[string]bool)
	chapters := make([]string, 0)
	for _, item := range items {
		if !seen[item.Chapter] {
			seen[item.Chapter] = true
			chapters = append(chapters, item.Chapter)
		}
	}

	SendJSON(h.logger, w, api.ChaptersResponse{Chapters: chapters}, http.StatusOK)
}

// Create handles POST /api/admin/pyqs
func (h *PYQHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreatePYQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create pyq request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	pyq := &models.PYQ{
		ID:        uuid.New().String(),
		Exam:      req.Exam,
		Year:      req.Year,
		Subject:   req.Subject,
		Chapter:   req.Chapter,
		Question:  req.Question,
		Solution:  req.Solution,
		Type:      models.SolutionType(req.Type),
		CreatedAt: time.Now().UTC(),
	}

	pyq.Normalize()
	if err := pyq.Validate(); err != nil {
		SendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.pyqs.CreatePYQ(ctx, pyq); err != nil {
		h.logger.ErrorContext(ctx, "failed to create pyq", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "pyq created",
		slog.String("pyq_id", pyq.ID),
		slog.String("exam", pyq.Exam),
		slog.String("subject", pyq.Subject))

	SendJSON(h.logger, w, pyq, http.StatusCreated)
}

// Delete handles DELETE /api/admin/pyqs/{id}
func (h *PYQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if id == "" {
		SendError(h.logger, w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.pyqs.DeletePYQ(ctx, id); err != nil {
		if errors.Is(err, storage.ErrPYQNotFound) {
			SendError(h.logger, w, "pyq not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete pyq", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "pyq deleted", slog.String("pyq_id", id))

	SendJSON(h.logger, w, api.DeleteResponse{DeletedID: id}, http.StatusOK)
}
