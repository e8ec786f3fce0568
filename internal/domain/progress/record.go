package progress

import (
	"math"
	"time"
)

// Record is the single persisted aggregate for quiz progress. Field
// names follow the stored JSON document exactly.
type Record struct {
	TotalAnswered   int                      `json:"totalAnswered"`
	CorrectAnswers  int                      `json:"correctAnswers"`
	Streak          int                      `json:"streak"`
	MaxStreak       int                      `json:"maxStreak"`
	TopicProgress   map[string]*TopicStat    `json:"topicProgress"`
	QuestionHistory map[string]*QuestionStat `json:"questionHistory"`
	LastSession     *time.Time               `json:"lastSession"`
	ExamResults     []ExamResult             `json:"examResults"`
}

// TopicStat tracks answers within a single topic.
type TopicStat struct {
	Answered      int        `json:"answered"`
	Correct       int        `json:"correct"`
	LastPracticed *time.Time `json:"lastPracticed"`
}

// QuestionStat tracks attempts on a single question. NextReview is nil
// until the question has been attempted at least once.
type QuestionStat struct {
	Attempts    int        `json:"attempts"`
	Correct     int        `json:"correct"`
	LastAttempt *time.Time `json:"lastAttempt"`
	NextReview  *time.Time `json:"nextReview"`
}

// ExamResult is one completed exam simulation. Append-only, never
// mutated after creation.
type ExamResult struct {
	Date         time.Time `json:"date"`
	MCCorrect    int       `json:"mcCorrect"`
	MCTotal      int       `json:"mcTotal"`
	OpenAnswered int       `json:"openAnswered"`
	Percentage   int       `json:"percentage"`
}

// TopicStats is the computed per-topic view returned to callers.
type TopicStats struct {
	Answered   int `json:"answered"`
	Correct    int `json:"correct"`
	Percentage int `json:"percentage"`
}

// NewRecord returns a record with empty defaults, ready to persist.
func NewRecord() *Record {
	return &Record{
		TopicProgress:   map[string]*TopicStat{},
		QuestionHistory: map[string]*QuestionStat{},
		ExamResults:     []ExamResult{},
	}
}

// Topic returns the stat entry for topicID, creating it if absent.
func (r *Record) Topic(topicID string) *TopicStat {
	ts, ok := r.TopicProgress[topicID]
	if !ok {
		ts = &TopicStat{}
		r.TopicProgress[topicID] = ts
	}
	return ts
}

// Question returns the history entry for questionID, creating it if absent.
func (r *Record) Question(questionID string) *QuestionStat {
	qs, ok := r.QuestionHistory[questionID]
	if !ok {
		qs = &QuestionStat{}
		r.QuestionHistory[questionID] = qs
	}
	return qs
}

// TopicStats computes the read-only view for a topic. An unknown topic
// yields all-zero stats, never an error.
func (r *Record) TopicStats(topicID string) TopicStats {
	ts, ok := r.TopicProgress[topicID]
	if !ok {
		return TopicStats{}
	}
	return TopicStats{
		Answered:   ts.Answered,
		Correct:    ts.Correct,
		Percentage: Percentage(ts.Correct, ts.Answered),
	}
}

// Percentage returns round(correct/total*100), or 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Normalize repairs a record loaded from storage so that the counter
// invariants hold even if the stored document was hand-edited or
// written by an older version. Missing maps are allocated, counters
// clamped to non-negative and consistent values.
func (r *Record) Normalize() {
	if r.TopicProgress == nil {
		r.TopicProgress = map[string]*TopicStat{}
	}
	if r.QuestionHistory == nil {
		r.QuestionHistory = map[string]*QuestionStat{}
	}
	if r.ExamResults == nil {
		r.ExamResults = []ExamResult{}
	}

	r.TotalAnswered = max(r.TotalAnswered, 0)
	r.CorrectAnswers = clamp(r.CorrectAnswers, 0, r.TotalAnswered)
	r.Streak = max(r.Streak, 0)
	r.MaxStreak = max(r.MaxStreak, r.Streak)

	for _, ts := range r.TopicProgress {
		ts.Answered = max(ts.Answered, 0)
		ts.Correct = clamp(ts.Correct, 0, ts.Answered)
	}
	for _, qs := range r.QuestionHistory {
		qs.Attempts = max(qs.Attempts, 0)
		qs.Correct = clamp(qs.Correct, 0, qs.Attempts)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
