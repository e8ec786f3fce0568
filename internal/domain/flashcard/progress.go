package flashcard

import (
	"sort"
	"time"
)

// Progress is the per-card scheduling state, keyed by card ID in the
// persisted document. Review timestamps are epoch milliseconds.
type Progress struct {
	Confidence  int   `json:"confidence"`
	LastReview  int64 `json:"lastReview"`
	NextReview  int64 `json:"nextReview"`
	ReviewCount int   `json:"reviewCount"`
}

// Mastery buckets for stats display. Scheduling never reads these.
type Mastery string

const (
	MasteryNew      Mastery = "new"
	MasteryLearning Mastery = "learning"
	MasteryMastered Mastery = "mastered"
)

const (
	MinConfidence = 1
	MaxConfidence = 5
)

// intervals maps a confidence level to the delay before the card comes
// up for review again.
var intervals = map[int]time.Duration{
	1: time.Minute,
	2: 10 * time.Minute,
	3: 24 * time.Hour,
	4: 3 * 24 * time.Hour,
	5: 7 * 24 * time.Hour,
}

// Interval returns the review delay for a confidence level. ok is
// false when the level is outside [MinConfidence, MaxConfidence].
func Interval(level int) (time.Duration, bool) {
	d, ok := intervals[level]
	return d, ok
}

// MasteryLevel classifies the card. The zero value (never rated) is new.
func (p Progress) MasteryLevel() Mastery {
	switch {
	case p.Confidence == 0:
		return MasteryNew
	case p.Confidence >= 4:
		return MasteryMastered
	default:
		return MasteryLearning
	}
}

// Due reports whether the card should be shown now. Cards that were
// never rated are always due.
func (p Progress) Due(now time.Time) bool {
	return p.NextReview <= now.UnixMilli()
}

// Prioritize orders card IDs for a learning session: due cards (or
// never-rated ones) first, then within each group ascending by
// confidence so the weakest cards surface first. The sort is stable,
// so equal cards keep their input order.
func Prioritize(cards []string, prog map[string]Progress, now time.Time) []string {
	ordered := make([]string, len(cards))
	copy(ordered, cards)

	sort.SliceStable(ordered, func(i, j int) bool {
		a := prog[ordered[i]]
		b := prog[ordered[j]]

		dueA := a.Due(now)
		dueB := b.Due(now)
		if dueA != dueB {
			return dueA
		}
		return a.Confidence < b.Confidence
	})

	return ordered
}
