// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Progress
	mux.HandleFunc("GET /progress", h.getProgress)
	mux.HandleFunc("POST /progress/reset", h.resetProgress)
	mux.HandleFunc("POST /answers", h.recordAnswer)
	mux.HandleFunc("POST /exam-results", h.recordExamResult)
	mux.HandleFunc("GET /reviews/due", h.getDueReviews)
	mux.HandleFunc("GET /weak-topics", h.getWeakTopics)
	mux.HandleFunc("GET /export", h.exportProgress)

	// Dataset
	mux.HandleFunc("GET /topics", h.listTopics)
	mux.HandleFunc("GET /topics/{topicID}/stats", h.getTopicStats)
	mux.HandleFunc("GET /topics/{topicID}/questions", h.getTopicQuestions)
	mux.HandleFunc("GET /exam", h.getExamSelection)

	// Flashcards
	mux.HandleFunc("POST /flashcards/{cardID}/rating", h.rateFlashcard)
	mux.HandleFunc("GET /flashcards/queue", h.getFlashcardQueue)
	mux.HandleFunc("GET /flashcards/stats", h.getFlashcardStats)
}
