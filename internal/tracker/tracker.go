// Package tracker mutates the progress record in response to answer
// and exam events. It is the only writer of the progress document;
// every event is a full load-mutate-save cycle so a persisted record
// never reflects half an update.
package tracker

import (
	"context"
	"time"

	"github.com/klausur-trainer/backend/internal/domain/progress"
	"github.com/klausur-trainer/backend/internal/review"
	"github.com/klausur-trainer/backend/internal/store"
)

// Mode distinguishes where an answer came from. The counters are
// mode-agnostic; the mode exists so callers can label feedback without
// swapping behavior at runtime.
type Mode string

const (
	ModeLearn Mode = "learn"
	ModeExam  Mode = "exam"
)

type Tracker struct {
	kv  store.KV
	now func() time.Time
}

func New(kv store.KV) *Tracker {
	return &Tracker{kv: kv, now: time.Now}
}

// NewWithClock is used by tests to pin "now".
func NewWithClock(kv store.KV, now func() time.Time) *Tracker {
	return &Tracker{kv: kv, now: now}
}

// Record returns the current progress record, initialized to defaults
// if nothing has been persisted yet.
func (t *Tracker) Record(ctx context.Context) (*progress.Record, error) {
	return store.LoadProgress(ctx, t.kv)
}

// RecordAnswer updates global, topic and question counters for one
// answered question and schedules the question's next review. Topic
// and question IDs are opaque; unknown IDs simply create new entries.
// Returns the updated record after it has been persisted.
func (t *Tracker) RecordAnswer(ctx context.Context, questionID, topicID string, correct bool) (*progress.Record, error) {
	rec, err := store.LoadProgress(ctx, t.kv)
	if err != nil {
		return nil, err
	}

	now := t.now()

	rec.TotalAnswered++
	if correct {
		rec.CorrectAnswers++
		rec.Streak++
		if rec.Streak > rec.MaxStreak {
			rec.MaxStreak = rec.Streak
		}
	} else {
		rec.Streak = 0
	}

	ts := rec.Topic(topicID)
	ts.Answered++
	if correct {
		ts.Correct++
	}
	ts.LastPracticed = &now

	qs := rec.Question(questionID)
	qs.Attempts++
	var next time.Time
	if correct {
		qs.Correct++
		next = now.Add(review.Interval(qs.Correct))
	} else {
		next = now.Add(review.RetryInterval)
	}
	qs.NextReview = &next
	qs.LastAttempt = &now

	rec.LastSession = &now

	if err := store.SaveProgress(ctx, t.kv, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordExamResult appends one exam simulation outcome. A zero MC total
// yields percentage 0 instead of a division fault; exams always carry
// questions, but the API must not crash on bad input.
func (t *Tracker) RecordExamResult(ctx context.Context, mcCorrect, mcTotal, openAnswered int) (*progress.Record, error) {
	rec, err := store.LoadProgress(ctx, t.kv)
	if err != nil {
		return nil, err
	}

	now := t.now()
	rec.ExamResults = append(rec.ExamResults, progress.ExamResult{
		Date:         now,
		MCCorrect:    mcCorrect,
		MCTotal:      mcTotal,
		OpenAnswered: openAnswered,
		Percentage:   progress.Percentage(mcCorrect, mcTotal),
	})
	rec.LastSession = &now

	if err := store.SaveProgress(ctx, t.kv, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// TopicStats returns the computed stats for a topic. An unknown topic
// yields all-zero stats.
func (t *Tracker) TopicStats(ctx context.Context, topicID string) (progress.TopicStats, error) {
	rec, err := store.LoadProgress(ctx, t.kv)
	if err != nil {
		return progress.TopicStats{}, err
	}
	return rec.TopicStats(topicID), nil
}

// Reset discards the stored record and persists fresh defaults.
// Irreversible; any confirmation belongs to the caller.
func (t *Tracker) Reset(ctx context.Context) (*progress.Record, error) {
	if err := t.kv.Delete(ctx, store.KeyProgress); err != nil {
		return nil, err
	}
	rec := progress.NewRecord()
	if err := store.SaveProgress(ctx, t.kv, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
