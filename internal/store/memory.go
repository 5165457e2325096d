package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

// MemoryStore is a map-backed Store for tests and local development.
// Documents are copied through JSON on both paths so callers never
// share pointers with the store, matching the isolation Redis gives.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, conversationID string) (*model.TripState, error) {
	s.mu.RLock()
	raw, ok := s.data[conversationID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var state model.TripState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, state *model.TripState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[state.ConversationID] = raw
	s.mu.Unlock()
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	delete(s.data, conversationID)
	s.mu.Unlock()
	return nil
}
