package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
	"github.com/capitalize-ai/trip-dialogue-engine/pkg/metrics"
)

const keyPrefix = "trip:state:"

// RedisStore keeps one JSON document per conversation in Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store over an existing Redis client. A zero
// ttl keeps documents until explicitly deleted.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient dials Redis with the standard options.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, conversationID string) (*model.TripState, error) {
	start := time.Now()
	raw, err := s.client.Get(ctx, keyPrefix+conversationID).Bytes()
	metrics.ObserveStoreOp("load", time.Since(start).Seconds())
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load trip state: %w", err)
	}

	var state model.TripState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode trip state: %w", err)
	}
	return &state, nil
}

// Save implements Store. The write is unconditional: the later of two
// racing turns wins.
func (s *RedisStore) Save(ctx context.Context, state *model.TripState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode trip state: %w", err)
	}

	start := time.Now()
	err = s.client.Set(ctx, keyPrefix+state.ConversationID, raw, s.ttl).Err()
	metrics.ObserveStoreOp("save", time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("save trip state: %w", err)
	}
	return nil
}

// Delete implements Store. Deletion is an administrative operation; the
// engine never calls it on its own.
func (s *RedisStore) Delete(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, keyPrefix+conversationID).Err(); err != nil {
		return fmt.Errorf("delete trip state: %w", err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
