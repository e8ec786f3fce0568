package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// Document keys for the persisted aggregates. Each aggregate is one
// JSON document, fully overwritten on every save.
const (
	KeyProgress   = "klausurTrainer_progress"
	KeyFlashcards = "flashcardProgress"
)

// KV persists whole JSON documents under fixed keys. Load returns
// ErrNotFound when no document exists for the key.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
