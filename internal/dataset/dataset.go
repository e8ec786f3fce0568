// Package dataset loads the static question corpus. The corpus is
// read-only after load; the progress engine treats every ID in it as
// an opaque string.
package dataset

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

type Metadata struct {
	Title    string `json:"title"`
	Version  string `json:"version"`
	ExamDate string `json:"examDate,omitempty"`
}

type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type MCQuestion struct {
	ID          string   `json:"id"`
	TopicID     string   `json:"topicId"`
	Stem        string   `json:"stem"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty"`
	MultiSelect bool     `json:"isMultiSelect"`
}

type OpenQuestion struct {
	ID          string   `json:"id"`
	TopicID     string   `json:"topicId"`
	Stem        string   `json:"stem"`
	ModelAnswer string   `json:"modelAnswer"`
	KeyPoints   []string `json:"keyPoints"`
}

type Flashcard struct {
	ID        string `json:"id"`
	TopicID   string `json:"topicId"`
	TopicName string `json:"topicName"`
	Front     string `json:"front"`
	Back      string `json:"back"`
	Source    string `json:"source"`
}

// Corpus is the parsed dataset.
type Corpus struct {
	Metadata      Metadata       `json:"metadata"`
	Topics        []Topic        `json:"topics"`
	MCQuestions   []MCQuestion   `json:"mcQuestions"`
	OpenQuestions []OpenQuestion `json:"openQuestions"`
	Flashcards    []Flashcard    `json:"flashcards"`
}

// Load reads and parses the corpus JSON from path.
func Load(path string) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a corpus document.
func Parse(raw []byte) (*Corpus, error) {
	var c Corpus
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("dataset: parse: %w", err)
	}
	return &c, nil
}

// TopicByID looks a topic up by its ID.
func (c *Corpus) TopicByID(id string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// QuestionsByTopic returns the MC and open questions of one topic.
func (c *Corpus) QuestionsByTopic(topicID string) ([]MCQuestion, []OpenQuestion) {
	var mc []MCQuestion
	for _, q := range c.MCQuestions {
		if q.TopicID == topicID {
			mc = append(mc, q)
		}
	}
	var open []OpenQuestion
	for _, q := range c.OpenQuestions {
		if q.TopicID == topicID {
			open = append(open, q)
		}
	}
	return mc, open
}

// FlashcardsByTopic returns the flashcards of one topic, or all cards
// when topicID is empty.
func (c *Corpus) FlashcardsByTopic(topicID string) []Flashcard {
	if topicID == "" {
		return c.Flashcards
	}
	var cards []Flashcard
	for _, f := range c.Flashcards {
		if f.TopicID == topicID {
			cards = append(cards, f)
		}
	}
	return cards
}

// ExamSelection picks a random exam: up to mcCount single-choice MC
// questions and up to openCount open questions. Multi-select questions
// are excluded from exam simulations.
func (c *Corpus) ExamSelection(mcCount, openCount int) ([]MCQuestion, []OpenQuestion) {
	var single []MCQuestion
	for _, q := range c.MCQuestions {
		if !q.MultiSelect {
			single = append(single, q)
		}
	}

	mc := shuffleMC(single)
	if mcCount < len(mc) {
		mc = mc[:mcCount]
	}

	open := shuffleOpen(c.OpenQuestions)
	if openCount < len(open) {
		open = open[:openCount]
	}

	return mc, open
}

func shuffleMC(questions []MCQuestion) []MCQuestion {
	shuffled := make([]MCQuestion, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func shuffleOpen(questions []OpenQuestion) []OpenQuestion {
	shuffled := make([]OpenQuestion, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
