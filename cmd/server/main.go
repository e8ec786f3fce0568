package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klausur-trainer/backend/internal/api"
	"github.com/klausur-trainer/backend/internal/dataset"
	"github.com/klausur-trainer/backend/internal/flashcards"
	"github.com/klausur-trainer/backend/internal/infrastructure/config"
	"github.com/klausur-trainer/backend/internal/remind"
	"github.com/klausur-trainer/backend/internal/review"
	"github.com/klausur-trainer/backend/internal/store"
	"github.com/klausur-trainer/backend/internal/tracker"
)

// slogNotifier reports due reviews through the application log.
type slogNotifier struct {
	logger *slog.Logger
}

func (n *slogNotifier) DueReviews(questions, cards int) {
	n.logger.Info("reviews due", "questions", questions, "flashcards", cards)
}

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	corpus, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	progressTracker := tracker.New(db)
	reviewScheduler := review.NewScheduler(db)
	weakAnalyzer := review.NewAnalyzer(db)
	deck := flashcards.New(db)
	handler := api.NewHandler(progressTracker, reviewScheduler, weakAnalyzer, deck, corpus, logger)

	// ── Review reminder ─────────────────────────────────────────────
	cardIDs := make([]string, len(corpus.Flashcards))
	for i, c := range corpus.Flashcards {
		cardIDs[i] = c.ID
	}
	reminder := remind.New(cfg.ReminderInterval, reviewScheduler, deck, cardIDs, &slogNotifier{logger: logger})
	if err := reminder.Start(); err != nil {
		logger.Error("failed to start reminder", "error", err)
		os.Exit(1)
	}
	defer reminder.Stop()

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "topics", len(corpus.Topics))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
