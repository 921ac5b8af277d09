package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const favoritesKeyPrefix = "portal:favorites:" // Sorted set of plan IDs scored by added-at: portal:favorites:{owner}

// RedisStore keeps favorites in a sorted set that expires after ttl of
// inactivity.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func (s *RedisStore) Add(ctx context.Context, owner, planID string) error {
	key := s.key(owner)

	pipe := s.client.TxPipeline()
	pipe.ZAddNX(ctx, key, redis.Z{Score: float64(s.now().UnixMilli()), Member: planID})
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, owner, planID string) error {
	if err := s.client.ZRem(ctx, s.key(owner), planID).Err(); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, owner string) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.key(owner), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

func (s *RedisStore) Contains(ctx context.Context, owner, planID string) (bool, error) {
	err := s.client.ZScore(ctx, s.key(owner), planID).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return true, nil
}

func (s *RedisStore) key(owner string) string {
	return favoritesKeyPrefix + owner
}
