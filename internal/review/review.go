// Package review computes spaced-repetition schedules and the queue of
// questions due for re-testing. Intervals are fixed buckets: each
// correct answer adds a day up to one week, a wrong answer forces the
// question back after 30 minutes.
package review

import (
	"context"
	"sort"
	"time"

	"github.com/klausur-trainer/backend/internal/store"
)

const (
	// RetryInterval is applied after an incorrect answer regardless of
	// the question's history.
	RetryInterval = 30 * time.Minute

	// MaxInterval caps the growth of the correct-answer interval.
	MaxInterval = 168 * time.Hour
)

// Interval returns the review delay after a correct answer, given the
// question's cumulative correct count (after the current answer).
func Interval(correctCount int) time.Duration {
	if correctCount < 1 {
		correctCount = 1
	}
	d := time.Duration(correctCount) * 24 * time.Hour
	if d > MaxInterval {
		d = MaxInterval
	}
	return d
}

// Scheduler produces the priority-ordered due queue from the persisted
// progress record. It never mutates the record.
type Scheduler struct {
	kv  store.KV
	now func() time.Time
}

func NewScheduler(kv store.KV) *Scheduler {
	return &Scheduler{kv: kv, now: time.Now}
}

// NewSchedulerWithClock is used by tests to pin "now".
func NewSchedulerWithClock(kv store.KV, now func() time.Time) *Scheduler {
	return &Scheduler{kv: kv, now: now}
}

// DueQuestions returns the IDs of every question whose next review is
// due, weakest mastery first. Priority is attempts/correct (1 for
// never-correct questions); ties are broken by the earlier review
// deadline, then by ID so the order is deterministic.
func (s *Scheduler) DueQuestions(ctx context.Context) ([]string, error) {
	rec, err := store.LoadProgress(ctx, s.kv)
	if err != nil {
		return nil, err
	}

	now := s.now()

	type dueQuestion struct {
		id         string
		priority   float64
		nextReview time.Time
	}

	var due []dueQuestion
	for id, qs := range rec.QuestionHistory {
		if qs.NextReview == nil || qs.NextReview.After(now) {
			continue
		}
		priority := 1.0
		if qs.Correct > 0 {
			priority = float64(qs.Attempts) / float64(qs.Correct)
		}
		due = append(due, dueQuestion{id: id, priority: priority, nextReview: *qs.NextReview})
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].priority != due[j].priority {
			return due[i].priority > due[j].priority
		}
		if !due[i].nextReview.Equal(due[j].nextReview) {
			return due[i].nextReview.Before(due[j].nextReview)
		}
		return due[i].id < due[j].id
	})

	ids := make([]string, len(due))
	for i, q := range due {
		ids[i] = q.id
	}
	return ids, nil
}
