// Package flashcards owns the flashcard confidence schedule. It is
// independent of the question tracker: its own persisted document,
// keyed by card ID, driven by 1-5 self-ratings instead of correctness.
package flashcards

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klausur-trainer/backend/internal/domain/flashcard"
	"github.com/klausur-trainer/backend/internal/store"
)

var ErrInvalidConfidence = errors.New("flashcards: confidence level out of range")

type Deck struct {
	kv  store.KV
	now func() time.Time
}

func New(kv store.KV) *Deck {
	return &Deck{kv: kv, now: time.Now}
}

// NewWithClock is used by tests to pin "now".
func NewWithClock(kv store.KV, now func() time.Time) *Deck {
	return &Deck{kv: kv, now: now}
}

// Rate records a self-assessed confidence level for a card and
// schedules its next review from the level's interval. Levels outside
// 1..5 are rejected.
func (d *Deck) Rate(ctx context.Context, cardID string, level int) error {
	interval, ok := flashcard.Interval(level)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidConfidence, level)
	}

	cards, err := store.LoadFlashcards(ctx, d.kv)
	if err != nil {
		return err
	}

	now := d.now().UnixMilli()
	prev := cards[cardID]
	cards[cardID] = flashcard.Progress{
		Confidence:  level,
		LastReview:  now,
		NextReview:  now + interval.Milliseconds(),
		ReviewCount: prev.ReviewCount + 1,
	}

	return store.SaveFlashcards(ctx, d.kv, cards)
}

// Queue orders the given card IDs for a learning session: due and
// never-rated cards first, weakest confidence first within each group.
func (d *Deck) Queue(ctx context.Context, cards []string) ([]string, error) {
	prog, err := store.LoadFlashcards(ctx, d.kv)
	if err != nil {
		return nil, err
	}
	return flashcard.Prioritize(cards, prog, d.now()), nil
}

// Progress returns the stored per-card scheduling state. Cards that
// were never rated have no entry.
func (d *Deck) Progress(ctx context.Context) (map[string]flashcard.Progress, error) {
	return store.LoadFlashcards(ctx, d.kv)
}

// DueCount reports how many of the given cards are due for review,
// counting never-rated cards as due.
func (d *Deck) DueCount(ctx context.Context, cards []string) (int, error) {
	prog, err := store.LoadFlashcards(ctx, d.kv)
	if err != nil {
		return 0, err
	}

	now := d.now()
	n := 0
	for _, id := range cards {
		if prog[id].Due(now) {
			n++
		}
	}
	return n, nil
}

// Stats are deck-level mastery counts for display.
type Stats struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Mastered int `json:"mastered"`
}

// Stats classifies the given cards by mastery bucket.
func (d *Deck) Stats(ctx context.Context, cards []string) (Stats, error) {
	prog, err := store.LoadFlashcards(ctx, d.kv)
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	for _, id := range cards {
		switch prog[id].MasteryLevel() {
		case flashcard.MasteryNew:
			s.New++
		case flashcard.MasteryMastered:
			s.Mastered++
		default:
			s.Learning++
		}
	}
	return s, nil
}
