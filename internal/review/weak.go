package review

import (
	"context"
	"sort"

	"github.com/klausur-trainer/backend/internal/domain/progress"
	"github.com/klausur-trainer/backend/internal/store"
)

// DefaultWeakThreshold is the success percentage below which a topic
// counts as weak.
const DefaultWeakThreshold = 70

// minWeakAnswers is the statistical floor: topics with fewer answers
// are never flagged, one unlucky answer says nothing.
const minWeakAnswers = 3

// WeakTopic is one under-performing topic, for remediation surfacing.
type WeakTopic struct {
	TopicID    string `json:"topicId"`
	Percentage int    `json:"percentage"`
	Answered   int    `json:"answered"`
}

// Analyzer derives weak topics from the persisted progress record.
type Analyzer struct {
	kv store.KV
}

func NewAnalyzer(kv store.KV) *Analyzer {
	return &Analyzer{kv: kv}
}

// WeakTopics returns topics answered at least three times whose success
// percentage is below threshold, weakest first. An empty result is not
// an error.
func (a *Analyzer) WeakTopics(ctx context.Context, threshold int) ([]WeakTopic, error) {
	rec, err := store.LoadProgress(ctx, a.kv)
	if err != nil {
		return nil, err
	}

	var weak []WeakTopic
	for topicID, ts := range rec.TopicProgress {
		if ts.Answered < minWeakAnswers {
			continue
		}
		pct := progress.Percentage(ts.Correct, ts.Answered)
		if pct < threshold {
			weak = append(weak, WeakTopic{TopicID: topicID, Percentage: pct, Answered: ts.Answered})
		}
	}

	sort.Slice(weak, func(i, j int) bool {
		if weak[i].Percentage != weak[j].Percentage {
			return weak[i].Percentage < weak[j].Percentage
		}
		return weak[i].TopicID < weak[j].TopicID
	})

	return weak, nil
}
