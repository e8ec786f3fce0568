// Package remind periodically re-reads the review queues and reports
// how much is due. It only reads; mutation stays with the tracker and
// the flashcard deck.
package remind

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/klausur-trainer/backend/internal/flashcards"
	"github.com/klausur-trainer/backend/internal/review"
)

// Notifier receives the periodic due counts.
type Notifier interface {
	DueReviews(questions, cards int)
}

// Reminder runs the periodic due-check job.
type Reminder struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	reviews   *review.Scheduler
	deck      *flashcards.Deck
	cardIDs   []string
	notifier  Notifier
}

// New creates a reminder that checks every interval which questions
// and which of cardIDs are due, and hands the counts to the notifier.
func New(interval time.Duration, reviews *review.Scheduler, deck *flashcards.Deck, cardIDs []string, n Notifier) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		reviews:   reviews,
		deck:      deck,
		cardIDs:   cardIDs,
		notifier:  n,
	}
}

// Start begins the periodic check in the background.
func (r *Reminder) Start() error {
	if _, err := r.scheduler.Every(r.interval).Do(r.check); err != nil {
		return err
	}
	r.scheduler.StartAsync()
	return nil
}

// CheckNow runs a single due check synchronously, outside the
// schedule.
func (r *Reminder) CheckNow() {
	r.check()
}

// Stop terminates the scheduled job.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) check() {
	ctx := context.Background()

	due, err := r.reviews.DueQuestions(ctx)
	if err != nil {
		return
	}

	cards, err := r.deck.DueCount(ctx, r.cardIDs)
	if err != nil {
		return
	}

	if len(due) > 0 || cards > 0 {
		r.notifier.DueReviews(len(due), cards)
	}
}
