package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verakita/verakita-api/internal/reviews"
)

// ReviewHandler serves /api/reviews.
type ReviewHandler struct {
	Service *reviews.Service
	Log     *slog.Logger
}

// ==========================
// List Reviews
// ==========================

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)
	target := r.URL.Query().Get("target")

	list, err := h.Service.ForTarget(r.Context(), target, limit)
	if err != nil {
		loggerOr(h.Log).ErrorContext(r.Context(), "list reviews failed", slog.String("error", err.Error()))
		JSONError(w, "Failed to fetch reviews", http.StatusInternalServerError)
		return
	}

	JSONSuccess(w, map[string]any{
		"reviews": list,
		"total":   len(list),
		"limit":   limit,
	})
}

// ==========================
// Create Review
// ==========================

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input reviews.Submission
	if !decodeJSON(w, r, &input) {
		return
	}

	receipt, err := h.Service.Submit(r.Context(), input)
	switch {
	case errors.Is(err, reviews.ErrMissingFields):
		JSONError(w, "Missing required fields", http.StatusBadRequest)
		return
	case errors.Is(err, reviews.ErrRatingRange):
		JSONError(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	case err != nil:
		loggerOr(h.Log).ErrorContext(r.Context(), "create review failed", slog.String("error", err.Error()))
		JSONError(w, "Failed to create review", http.StatusInternalServerError)
		return
	}

	JSONSuccess(w, receipt)
}

// ==========================
// Get / Delete Review
// ==========================

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, map[string]string{"id": chi.URLParam(r, "id")})
}

// Delete always refuses: on-chain reviews cannot be removed.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	JSONError(w, "Reviews on blockchain are immutable and cannot be deleted", http.StatusForbidden)
}

// ==========================
// Stats / Verify
// ==========================

func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.StatsFor(r.Context(), r.URL.Query().Get("target"))
	if err != nil {
		loggerOr(h.Log).ErrorContext(r.Context(), "review stats failed", slog.String("error", err.Error()))
		JSONError(w, "Failed to fetch review stats", http.StatusInternalServerError)
		return
	}
	JSONSuccess(w, stats)
}

func (h *ReviewHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	JSONSuccess(w, map[string]any{
		"id":       id,
		"verified": h.Service.Verify(r.Context(), id),
	})
}
