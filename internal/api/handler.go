// internal/api/handler.go
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/klausur-trainer/backend/internal/dataset"
	"github.com/klausur-trainer/backend/internal/flashcards"
	"github.com/klausur-trainer/backend/internal/review"
	"github.com/klausur-trainer/backend/internal/tracker"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of
// relying on package-level globals, every handler method receives its
// dependencies through this struct.
type Handler struct {
	tracker  *tracker.Tracker
	reviews  *review.Scheduler
	analyzer *review.Analyzer
	deck     *flashcards.Deck
	corpus   *dataset.Corpus
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(t *tracker.Tracker, s *review.Scheduler, a *review.Analyzer, d *flashcards.Deck, c *dataset.Corpus, logger *slog.Logger) *Handler {
	return &Handler{
		tracker:  t,
		reviews:  s,
		analyzer: a,
		deck:     d,
		corpus:   c,
		logger:   logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v. Returns false (after
// writing a 400) when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func errRequired(field string) error {
	return fmt.Errorf("%s is required", field)
}

func errInvalid(field string) error {
	return fmt.Errorf("%s is invalid", field)
}

// storeError logs err and answers 500. Returns true if err was set.
func (h *Handler) storeError(w http.ResponseWriter, err error, op string) bool {
	if err == nil {
		return false
	}
	h.logger.Error("store error", "op", op, "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
