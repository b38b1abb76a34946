package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "idempotency:"

// placeholder stored while the first request with a key is still in flight.
const processingMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore on Redis. A key is
// either absent, locked with a processing marker, or holds the cached
// response of the first completed request.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet returns (true, stored, nil) when the key is already taken.
// Otherwise it claims the key: with the given response when provided, or
// with the processing marker when response is nil. A lost SetNX race is
// reported as taken, returning whatever the winner stored.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := idempotencyPrefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	switch {
	case err == nil:
		return true, existing, nil
	case !errors.Is(err, redis.Nil):
		return false, nil, fmt.Errorf("idempotency lookup: %w", err)
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, fmt.Errorf("idempotency store: %w", err)
		}
		return false, nil, nil
	}

	claimed, err := s.client.SetNX(ctx, fullKey, processingMarker, ttl).Result()
	if err != nil {
		return false, nil, fmt.Errorf("idempotency lock: %w", err)
	}
	if claimed {
		return false, nil, nil
	}

	// Another request won the claim between Get and SetNX.
	existing, err = s.client.Get(ctx, fullKey).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, nil, fmt.Errorf("idempotency lookup: %w", err)
	}
	return true, existing, nil
}

// Update replaces the stored value for a key, typically swapping the
// processing marker for the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyPrefix+key, response, ttl).Err()
}
