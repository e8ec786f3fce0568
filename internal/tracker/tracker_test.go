package tracker_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/klausur-trainer/backend/internal/store"
	"github.com/klausur-trainer/backend/internal/tracker"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func TestRecordAnswer_FreshStore(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	rec, err := tr.RecordAnswer(ctx, "q1", "t1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.TotalAnswered != 1 || rec.CorrectAnswers != 1 {
		t.Errorf("expected 1/1 answered, got %d/%d", rec.TotalAnswered, rec.CorrectAnswers)
	}
	if rec.Streak != 1 || rec.MaxStreak != 1 {
		t.Errorf("expected streak 1/1, got %d/%d", rec.Streak, rec.MaxStreak)
	}
	if rec.LastSession == nil || !rec.LastSession.Equal(testNow) {
		t.Errorf("expected lastSession %v, got %v", testNow, rec.LastSession)
	}

	stats, err := tr.TopicStats(ctx, "t1")
	if err != nil {
		t.Fatalf("topic stats: %v", err)
	}
	if stats.Answered != 1 || stats.Correct != 1 || stats.Percentage != 100 {
		t.Errorf("expected {1 1 100}, got %+v", stats)
	}
}

func TestRecordAnswer_IncorrectResetsStreak(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := tr.RecordAnswer(ctx, "q1", "t1", true); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	rec, err := tr.RecordAnswer(ctx, "q2", "t1", false)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if rec.Streak != 0 {
		t.Errorf("expected streak reset to 0, got %d", rec.Streak)
	}
	if rec.MaxStreak != 5 {
		t.Errorf("expected maxStreak to keep 5, got %d", rec.MaxStreak)
	}

	qs := rec.QuestionHistory["q2"]
	if qs == nil || qs.NextReview == nil {
		t.Fatal("expected q2 to be scheduled for review")
	}
	if want := testNow.Add(30 * time.Minute); !qs.NextReview.Equal(want) {
		t.Errorf("expected next review %v, got %v", want, qs.NextReview)
	}
}

func TestRecordAnswer_ReviewIntervalGrowsAndCaps(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	var next *time.Time
	for i := 0; i < 3; i++ {
		rec, err := tr.RecordAnswer(ctx, "q1", "t1", true)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		next = rec.QuestionHistory["q1"].NextReview
	}

	// Third correct answer: 3 * 24h, under the weekly cap.
	if want := testNow.Add(72 * time.Hour); next == nil || !next.Equal(want) {
		t.Errorf("expected next review %v, got %v", want, next)
	}

	for i := 0; i < 7; i++ {
		rec, err := tr.RecordAnswer(ctx, "q1", "t1", true)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		next = rec.QuestionHistory["q1"].NextReview
	}

	// Tenth correct answer: capped at one week.
	if want := testNow.Add(168 * time.Hour); next == nil || !next.Equal(want) {
		t.Errorf("expected capped next review %v, got %v", want, next)
	}
}

func TestRecordAnswer_Invariants(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	answers := []struct {
		q, topic string
		correct  bool
	}{
		{"q1", "t1", true}, {"q2", "t1", false}, {"q1", "t1", true},
		{"q3", "t2", false}, {"q3", "t2", true}, {"q2", "t1", false},
	}

	for _, a := range answers {
		rec, err := tr.RecordAnswer(ctx, a.q, a.topic, a.correct)
		if err != nil {
			t.Fatalf("record: %v", err)
		}

		if rec.CorrectAnswers > rec.TotalAnswered {
			t.Fatalf("correctAnswers %d > totalAnswered %d", rec.CorrectAnswers, rec.TotalAnswered)
		}
		if rec.MaxStreak < rec.Streak {
			t.Fatalf("maxStreak %d < streak %d", rec.MaxStreak, rec.Streak)
		}
		for id, ts := range rec.TopicProgress {
			if ts.Correct > ts.Answered {
				t.Fatalf("topic %s: correct %d > answered %d", id, ts.Correct, ts.Answered)
			}
		}
		for id, qs := range rec.QuestionHistory {
			if qs.Correct > qs.Attempts {
				t.Fatalf("question %s: correct %d > attempts %d", id, qs.Correct, qs.Attempts)
			}
		}
	}
}

func TestRecordAnswer_Persisted(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	tr := tracker.NewWithClock(db, fixedClock(testNow))
	if _, err := tr.RecordAnswer(ctx, "q1", "t1", true); err != nil {
		t.Fatalf("record: %v", err)
	}

	// A second tracker over the same store sees the update.
	other := tracker.New(db)
	rec, err := other.Record(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.TotalAnswered != 1 {
		t.Errorf("expected persisted totalAnswered 1, got %d", rec.TotalAnswered)
	}
}

func TestRecordExamResult(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	rec, err := tr.RecordExamResult(ctx, 15, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.ExamResults) != 1 {
		t.Fatalf("expected 1 exam result, got %d", len(rec.ExamResults))
	}
	res := rec.ExamResults[0]
	if res.Percentage != 75 {
		t.Errorf("expected percentage 75, got %d", res.Percentage)
	}
	if res.MCCorrect != 15 || res.MCTotal != 20 || res.OpenAnswered != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if !res.Date.Equal(testNow) {
		t.Errorf("expected date %v, got %v", testNow, res.Date)
	}
}

func TestRecordExamResult_ZeroTotal(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))

	rec, err := tr.RecordExamResult(context.Background(), 0, 0, 0)
	if err != nil {
		t.Fatalf("zero total must not fail: %v", err)
	}
	if rec.ExamResults[0].Percentage != 0 {
		t.Errorf("expected percentage 0 for zero total, got %d", rec.ExamResults[0].Percentage)
	}
}

func TestRecordExamResult_AppendOnly(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	if _, err := tr.RecordExamResult(ctx, 10, 20, 1); err != nil {
		t.Fatalf("record: %v", err)
	}
	rec, err := tr.RecordExamResult(ctx, 18, 20, 3)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if len(rec.ExamResults) != 2 {
		t.Fatalf("expected 2 exam results, got %d", len(rec.ExamResults))
	}
	if rec.ExamResults[0].Percentage != 50 || rec.ExamResults[1].Percentage != 90 {
		t.Errorf("results out of order: %+v", rec.ExamResults)
	}
}

func TestTopicStats_Idempotent(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	if _, err := tr.RecordAnswer(ctx, "q1", "t1", true); err != nil {
		t.Fatalf("record: %v", err)
	}

	first, err := tr.TopicStats(ctx, "t1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	second, err := tr.TopicStats(ctx, "t1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if first != second {
		t.Errorf("reads without mutation differ: %+v vs %+v", first, second)
	}
}

func TestReset(t *testing.T) {
	tr := tracker.NewWithClock(newTestStore(t), fixedClock(testNow))
	ctx := context.Background()

	if _, err := tr.RecordAnswer(ctx, "q1", "t1", true); err != nil {
		t.Fatalf("record: %v", err)
	}

	rec, err := tr.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if rec.TotalAnswered != 0 || len(rec.TopicProgress) != 0 || len(rec.QuestionHistory) != 0 {
		t.Errorf("expected fresh record after reset, got %+v", rec)
	}

	reloaded, err := tr.Record(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.TotalAnswered != 0 {
		t.Errorf("reset was not persisted, got %+v", reloaded)
	}
}
