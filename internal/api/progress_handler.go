package api

import (
	"net/http"
	"strconv"

	"github.com/klausur-trainer/backend/internal/domain/progress"
	"github.com/klausur-trainer/backend/internal/export"
	"github.com/klausur-trainer/backend/internal/review"
	"github.com/klausur-trainer/backend/internal/tracker"
)

// ── Request / Response types ────────────────────────────────────────────────

type RecordAnswerRequest struct {
	QuestionID string `json:"question_id"`
	TopicID    string `json:"topic_id"`
	Correct    bool   `json:"correct"`
	Mode       string `json:"mode,omitempty"` // "learn" (default) or "exam"
}

func (r *RecordAnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return errRequired("question_id")
	}
	if r.TopicID == "" {
		return errRequired("topic_id")
	}
	switch tracker.Mode(r.Mode) {
	case "", tracker.ModeLearn, tracker.ModeExam:
		return nil
	}
	return errInvalid("mode")
}

type RecordExamResultRequest struct {
	MCCorrect    int `json:"mc_correct"`
	MCTotal      int `json:"mc_total"`
	OpenAnswered int `json:"open_answered"`
}

type ProgressSummary struct {
	TotalAnswered  int  `json:"total_answered"`
	CorrectAnswers int  `json:"correct_answers"`
	SuccessRate    int  `json:"success_rate"`
	Streak         int  `json:"streak"`
	MaxStreak      int  `json:"max_streak"`
	ExamsTaken     int  `json:"exams_taken"`
	LastPercentage *int `json:"last_exam_percentage,omitempty"`
}

type DueReviewsResponse struct {
	QuestionIDs []string `json:"question_ids"`
	Count       int      `json:"count"`
}

func summarize(rec *progress.Record) ProgressSummary {
	s := ProgressSummary{
		TotalAnswered:  rec.TotalAnswered,
		CorrectAnswers: rec.CorrectAnswers,
		SuccessRate:    progress.Percentage(rec.CorrectAnswers, rec.TotalAnswered),
		Streak:         rec.Streak,
		MaxStreak:      rec.MaxStreak,
		ExamsTaken:     len(rec.ExamResults),
	}
	if n := len(rec.ExamResults); n > 0 {
		pct := rec.ExamResults[n-1].Percentage
		s.LastPercentage = &pct
	}
	return s
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /progress
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := h.tracker.Record(r.Context())
	if h.storeError(w, err, "load progress") {
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// POST /answers
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.tracker.RecordAnswer(r.Context(), req.QuestionID, req.TopicID, req.Correct)
	if h.storeError(w, err, "record answer") {
		return
	}
	respondJSON(w, http.StatusOK, summarize(rec))
}

// POST /exam-results
func (h *Handler) recordExamResult(w http.ResponseWriter, r *http.Request) {
	var req RecordExamResultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MCCorrect < 0 || req.MCTotal < 0 || req.OpenAnswered < 0 {
		respondError(w, http.StatusBadRequest, "counts must not be negative")
		return
	}
	if req.MCCorrect > req.MCTotal {
		respondError(w, http.StatusBadRequest, "mc_correct exceeds mc_total")
		return
	}

	rec, err := h.tracker.RecordExamResult(r.Context(), req.MCCorrect, req.MCTotal, req.OpenAnswered)
	if h.storeError(w, err, "record exam result") {
		return
	}
	respondJSON(w, http.StatusCreated, rec.ExamResults[len(rec.ExamResults)-1])
}

// GET /topics/{topicID}/stats
func (h *Handler) getTopicStats(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicID")

	stats, err := h.tracker.TopicStats(r.Context(), topicID)
	if h.storeError(w, err, "topic stats") {
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GET /reviews/due
func (h *Handler) getDueReviews(w http.ResponseWriter, r *http.Request) {
	ids, err := h.reviews.DueQuestions(r.Context())
	if h.storeError(w, err, "due questions") {
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, DueReviewsResponse{QuestionIDs: ids, Count: len(ids)})
}

// GET /weak-topics?threshold=70
func (h *Handler) getWeakTopics(w http.ResponseWriter, r *http.Request) {
	threshold := review.DefaultWeakThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil || t < 0 || t > 100 {
			respondError(w, http.StatusBadRequest, "threshold must be an integer in [0,100]")
			return
		}
		threshold = t
	}

	weak, err := h.analyzer.WeakTopics(r.Context(), threshold)
	if h.storeError(w, err, "weak topics") {
		return
	}
	if weak == nil {
		weak = []review.WeakTopic{}
	}
	respondJSON(w, http.StatusOK, weak)
}

// POST /progress/reset
func (h *Handler) resetProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := h.tracker.Reset(r.Context())
	if h.storeError(w, err, "reset progress") {
		return
	}
	respondJSON(w, http.StatusOK, summarize(rec))
}

// GET /export
func (h *Handler) exportProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := h.tracker.Record(r.Context())
	if h.storeError(w, err, "load progress") {
		return
	}

	wb, err := export.Workbook(rec, h.corpus.Topics)
	if err != nil {
		h.logger.Error("export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=trainer-progress.xlsx")
	if err := wb.Write(w); err != nil {
		h.logger.Error("export write failed", "error", err)
	}
}
