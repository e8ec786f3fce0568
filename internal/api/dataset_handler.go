package api

import (
	"net/http"
	"strconv"

	"github.com/klausur-trainer/backend/internal/dataset"
)

// ── Request / Response types ────────────────────────────────────────────────

type TopicResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Answered   int    `json:"answered"`
	Correct    int    `json:"correct"`
	Percentage int    `json:"percentage"`
}

type TopicQuestionsResponse struct {
	MCQuestions   []dataset.MCQuestion   `json:"mc_questions"`
	OpenQuestions []dataset.OpenQuestion `json:"open_questions"`
}

type ExamSelectionResponse struct {
	MCQuestions   []dataset.MCQuestion   `json:"mc_questions"`
	OpenQuestions []dataset.OpenQuestion `json:"open_questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /topics
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	rec, err := h.tracker.Record(r.Context())
	if h.storeError(w, err, "load progress") {
		return
	}

	topics := make([]TopicResponse, len(h.corpus.Topics))
	for i, t := range h.corpus.Topics {
		stats := rec.TopicStats(t.ID)
		topics[i] = TopicResponse{
			ID:         t.ID,
			Name:       t.Name,
			Answered:   stats.Answered,
			Correct:    stats.Correct,
			Percentage: stats.Percentage,
		}
	}
	respondJSON(w, http.StatusOK, topics)
}

// GET /topics/{topicID}/questions
func (h *Handler) getTopicQuestions(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicID")
	if _, ok := h.corpus.TopicByID(topicID); !ok {
		respondError(w, http.StatusNotFound, "topic not found")
		return
	}

	mc, open := h.corpus.QuestionsByTopic(topicID)
	if mc == nil {
		mc = []dataset.MCQuestion{}
	}
	if open == nil {
		open = []dataset.OpenQuestion{}
	}
	respondJSON(w, http.StatusOK, TopicQuestionsResponse{MCQuestions: mc, OpenQuestions: open})
}

// GET /exam?mc=20&open=3
func (h *Handler) getExamSelection(w http.ResponseWriter, r *http.Request) {
	mcCount := queryInt(r, "mc", 20)
	openCount := queryInt(r, "open", 3)
	if mcCount < 1 || openCount < 0 {
		respondError(w, http.StatusBadRequest, "invalid question counts")
		return
	}

	mc, open := h.corpus.ExamSelection(mcCount, openCount)
	if mc == nil {
		mc = []dataset.MCQuestion{}
	}
	if open == nil {
		open = []dataset.OpenQuestion{}
	}
	respondJSON(w, http.StatusOK, ExamSelectionResponse{MCQuestions: mc, OpenQuestions: open})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
