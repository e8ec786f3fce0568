// internal/store/documents.go
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/klausur-trainer/backend/internal/domain/flashcard"
	"github.com/klausur-trainer/backend/internal/domain/progress"
)

// LoadProgress reads the progress record. An absent or malformed
// document yields a fresh default record rather than an error; only a
// store failure is surfaced.
func LoadProgress(ctx context.Context, kv KV) (*progress.Record, error) {
	raw, err := kv.Load(ctx, KeyProgress)
	if errors.Is(err, ErrNotFound) {
		return progress.NewRecord(), nil
	}
	if err != nil {
		return nil, err
	}

	var rec progress.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Corrupted local data: recoverability beats detection here.
		return progress.NewRecord(), nil
	}
	rec.Normalize()
	return &rec, nil
}

// SaveProgress overwrites the stored progress record.
func SaveProgress(ctx context.Context, kv KV, rec *progress.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return kv.Save(ctx, KeyProgress, raw)
}

// LoadFlashcards reads the flashcard progress map, keyed by card ID.
// Absent or malformed data yields an empty map.
func LoadFlashcards(ctx context.Context, kv KV) (map[string]flashcard.Progress, error) {
	raw, err := kv.Load(ctx, KeyFlashcards)
	if errors.Is(err, ErrNotFound) {
		return map[string]flashcard.Progress{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cards map[string]flashcard.Progress
	if err := json.Unmarshal(raw, &cards); err != nil || cards == nil {
		return map[string]flashcard.Progress{}, nil
	}
	return cards, nil
}

// SaveFlashcards overwrites the stored flashcard progress map.
func SaveFlashcards(ctx context.Context, kv KV, cards map[string]flashcard.Progress) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return kv.Save(ctx, KeyFlashcards, raw)
}
