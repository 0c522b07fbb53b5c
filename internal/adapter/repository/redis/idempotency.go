package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

// CheckAndSet reserves key with value for ttl. When the key is already
// present it returns the stored value and false; the caller replays that
// value instead of re-executing the request.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key, value string, ttl time.Duration) (string, bool, error) {
	fullKey := s.prefix + key

	set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if set {
		return "", true, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Result()
	if err != nil && err != redis.Nil {
		return "", false, err
	}
	return existing, false, nil
}

// Update replaces the value stored under an already reserved key.
func (s *IdempotencyStore) Update(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

// Delete releases a reserved key.
func (s *IdempotencyStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
