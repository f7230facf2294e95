package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quotes-shopify-layer/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const stateKeyPrefix = "oauth_state:"

// RedisStateStore implements StateStore using Redis with TTL-based expiry.
type RedisStateStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStateStore creates a new Redis-backed state store
func NewRedisStateStore(client *redis.Client, logger zerolog.Logger) ports.StateStore {
	return &RedisStateStore{
		client: client,
		logger: logger,
	}
}

// Save stores the shop a state nonce was issued for, expiring after ttl
func (s *RedisStateStore) Save(ctx context.Context, state, shop string, ttl time.Duration) error {
	if err := s.client.Set(ctx, stateKeyPrefix+state, shop, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// Take consumes a state nonce and returns the shop it was issued for.
// An unknown or expired nonce returns an empty string, not an error.
func (s *RedisStateStore) Take(ctx context.Context, state string) (string, error) {
	shop, err := s.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to take oauth state: %w", err)
	}
	return shop, nil
}
