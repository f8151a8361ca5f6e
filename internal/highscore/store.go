// Package highscore persists the single best score across sessions.
package highscore

import (
	"context"
	"errors"
	"fmt"
)

// Key is the name the best score is stored under in every backend.
const Key = "oldguy_game_highscore"

// ErrCorrupt is returned when a stored value is not a score.
var ErrCorrupt = errors.New("corrupt high score")

// Store reads and raises the best score.
type Store interface {
	// Load returns the stored score, zero when nothing was stored yet.
	Load(ctx context.Context) (int, error)
	// Submit stores score if it beats the stored value and returns the best.
	Submit(ctx context.Context, score int) (int, error)
	Close() error
}

// Options selects a backend. Redis wins over the file when both are set.
type Options struct {
	RedisURL string
	File     string
}

// Open returns the backend described by opts, falling back to memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch {
	case opts.RedisURL != "":
		s, err := NewRedisStore(ctx, opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis high score: %w", err)
		}
		return s, nil
	case opts.File != "":
		return NewFileStore(opts.File), nil
	default:
		return NewMemoryStore(0), nil
	}
}
