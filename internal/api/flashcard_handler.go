package api

import (
	"errors"
	"net/http"

	"github.com/klausur-trainer/backend/internal/dataset"
	"github.com/klausur-trainer/backend/internal/domain/flashcard"
	"github.com/klausur-trainer/backend/internal/flashcards"
)

// ── Request / Response types ────────────────────────────────────────────────

type RateFlashcardRequest struct {
	Level int `json:"level"`
}

type FlashcardQueueEntry struct {
	ID         string            `json:"id"`
	TopicID    string            `json:"topic_id"`
	TopicName  string            `json:"topic_name"`
	Front      string            `json:"front"`
	Back       string            `json:"back"`
	Source     string            `json:"source,omitempty"`
	Mastery    flashcard.Mastery `json:"mastery"`
	Confidence int               `json:"confidence"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /flashcards/{cardID}/rating
func (h *Handler) rateFlashcard(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("cardID")

	var req RateFlashcardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.deck.Rate(r.Context(), cardID, req.Level)
	if errors.Is(err, flashcards.ErrInvalidConfidence) {
		respondError(w, http.StatusBadRequest, "level must be between 1 and 5")
		return
	}
	if h.storeError(w, err, "rate flashcard") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /flashcards/queue?topic=
func (h *Handler) getFlashcardQueue(w http.ResponseWriter, r *http.Request) {
	cards := h.corpus.FlashcardsByTopic(r.URL.Query().Get("topic"))

	ids := make([]string, len(cards))
	byID := make(map[string]dataset.Flashcard, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
		byID[c.ID] = c
	}

	ordered, err := h.deck.Queue(r.Context(), ids)
	if h.storeError(w, err, "flashcard queue") {
		return
	}

	prog, err := h.deck.Progress(r.Context())
	if h.storeError(w, err, "flashcard progress") {
		return
	}

	queue := make([]FlashcardQueueEntry, len(ordered))
	for i, id := range ordered {
		c := byID[id]
		p := prog[id]
		queue[i] = FlashcardQueueEntry{
			ID:         c.ID,
			TopicID:    c.TopicID,
			TopicName:  c.TopicName,
			Front:      c.Front,
			Back:       c.Back,
			Source:     c.Source,
			Mastery:    p.MasteryLevel(),
			Confidence: p.Confidence,
		}
	}

	respondJSON(w, http.StatusOK, queue)
}

// GET /flashcards/stats?topic=
func (h *Handler) getFlashcardStats(w http.ResponseWriter, r *http.Request) {
	cards := h.corpus.FlashcardsByTopic(r.URL.Query().Get("topic"))

	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}

	stats, err := h.deck.Stats(r.Context(), ids)
	if h.storeError(w, err, "flashcard stats") {
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
