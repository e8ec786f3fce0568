package progress_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/klausur-trainer/backend/internal/domain/progress"
)

func TestNewRecord_Defaults(t *testing.T) {
	rec := progress.NewRecord()

	if rec.TotalAnswered != 0 || rec.CorrectAnswers != 0 {
		t.Errorf("expected zero counters, got %d/%d", rec.TotalAnswered, rec.CorrectAnswers)
	}
	if rec.TopicProgress == nil || rec.QuestionHistory == nil {
		t.Error("expected maps to be allocated")
	}
	if rec.ExamResults == nil || len(rec.ExamResults) != 0 {
		t.Errorf("expected empty exam results, got %v", rec.ExamResults)
	}
	if rec.LastSession != nil {
		t.Error("expected no last session on a fresh record")
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 1, 100},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{15, 20, 75},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := progress.Percentage(tt.correct, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestTopicStats_UnknownTopic(t *testing.T) {
	rec := progress.NewRecord()

	stats := rec.TopicStats("never-seen")
	if stats.Answered != 0 || stats.Correct != 0 || stats.Percentage != 0 {
		t.Errorf("expected all-zero stats for unknown topic, got %+v", stats)
	}
}

func TestTopicStats_Computed(t *testing.T) {
	rec := progress.NewRecord()
	ts := rec.Topic("t1")
	ts.Answered = 4
	ts.Correct = 3

	stats := rec.TopicStats("t1")
	if stats.Answered != 4 || stats.Correct != 3 || stats.Percentage != 75 {
		t.Errorf("expected {4 3 75}, got %+v", stats)
	}
}

func TestNormalize_RepairsInvariants(t *testing.T) {
	rec := &progress.Record{
		TotalAnswered:  2,
		CorrectAnswers: 5, // violates correct <= total
		Streak:         4,
		MaxStreak:      1, // violates maxStreak >= streak
	}
	rec.Normalize()

	if rec.CorrectAnswers > rec.TotalAnswered {
		t.Errorf("correctAnswers %d > totalAnswered %d after normalize", rec.CorrectAnswers, rec.TotalAnswered)
	}
	if rec.MaxStreak < rec.Streak {
		t.Errorf("maxStreak %d < streak %d after normalize", rec.MaxStreak, rec.Streak)
	}
	if rec.TopicProgress == nil || rec.QuestionHistory == nil || rec.ExamResults == nil {
		t.Error("expected normalize to allocate missing collections")
	}
}

func TestNormalize_ClampsTopicAndQuestionStats(t *testing.T) {
	rec := progress.NewRecord()
	rec.TopicProgress["t1"] = &progress.TopicStat{Answered: 1, Correct: 3}
	rec.QuestionHistory["q1"] = &progress.QuestionStat{Attempts: 2, Correct: 9}

	rec.Normalize()

	if ts := rec.TopicProgress["t1"]; ts.Correct > ts.Answered {
		t.Errorf("topic correct %d > answered %d", ts.Correct, ts.Answered)
	}
	if qs := rec.QuestionHistory["q1"]; qs.Correct > qs.Attempts {
		t.Errorf("question correct %d > attempts %d", qs.Correct, qs.Attempts)
	}
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	next := now.Add(48 * time.Hour)

	rec := progress.NewRecord()
	rec.TotalAnswered = 7
	rec.CorrectAnswers = 5
	rec.Streak = 2
	rec.MaxStreak = 4
	rec.LastSession = &now
	rec.TopicProgress["t1"] = &progress.TopicStat{Answered: 3, Correct: 2, LastPracticed: &now}
	rec.QuestionHistory["q1"] = &progress.QuestionStat{Attempts: 2, Correct: 2, LastAttempt: &now, NextReview: &next}
	rec.ExamResults = append(rec.ExamResults, progress.ExamResult{
		Date: now, MCCorrect: 15, MCTotal: 20, OpenAnswered: 2, Percentage: 75,
	})

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got progress.Record
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(rec, &got) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", &got, rec)
	}
}

func TestRecord_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(progress.NewRecord())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"totalAnswered", "correctAnswers", "streak", "maxStreak",
		"topicProgress", "questionHistory", "lastSession", "examResults",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("expected stored document to contain key %q", key)
		}
	}
}
