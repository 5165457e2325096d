// Package store persists TripState documents keyed by conversation ID.
//
// Each dialogue turn is one load-mutate-save cycle with no lock around
// it: turns for different conversations are fully independent, and two
// concurrent turns on the same conversation race with last-writer-wins.
// The engine documents rather than guards this.
package store

import (
	"context"
	"errors"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

// ErrNotFound is returned when no state exists for a conversation ID.
var ErrNotFound = errors.New("trip state not found")

// Store is the durable key-value persistence the engine depends on.
type Store interface {
	Load(ctx context.Context, conversationID string) (*model.TripState, error)
	Save(ctx context.Context, state *model.TripState) error
	Delete(ctx context.Context, conversationID string) error
}
