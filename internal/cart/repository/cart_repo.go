package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "portal:cart:"     // Hash of plan ID -> added-at (unix ms): portal:cart:{session_id}
	cartTTL       = 7 * 24 * time.Hour // TTL for cart data (7 days)
)

// Entry is one plan in a cart.
type Entry struct {
	PlanID  string
	AddedAt time.Time
}

// CartRepository handles Redis operations for session carts
type CartRepository struct {
	client *redis.Client
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{client: client}
}

// Add puts planID in the cart. Adding a plan that is already there keeps its
// original position. Every write pushes the cart expiry out.
func (r *CartRepository) Add(ctx context.Context, sessionID, planID string, at time.Time) error {
	key := r.cartKey(sessionID)

	pipe := r.client.TxPipeline()
	pipe.HSetNX(ctx, key, planID, at.UnixMilli())
	pipe.Expire(ctx, key, cartTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	return nil
}

// Remove drops planID from the cart. Removing an absent plan is not an error.
func (r *CartRepository) Remove(ctx context.Context, sessionID string, planIDs ...string) error {
	if len(planIDs) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, r.cartKey(sessionID), planIDs...).Err(); err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}
	return nil
}

// List returns the cart entries, oldest first.
func (r *CartRepository) List(ctx context.Context, sessionID string) ([]Entry, error) {
	raw, err := r.client.HGetAll(ctx, r.cartKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for planID, v := range raw {
		ms, _ := strconv.ParseInt(v, 10, 64)
		entries = append(entries, Entry{PlanID: planID, AddedAt: time.UnixMilli(ms).UTC()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].PlanID < entries[j].PlanID
		}
		return entries[i].AddedAt.Before(entries[j].AddedAt)
	})
	return entries, nil
}

// Clear empties the cart.
func (r *CartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Helper methods for key generation
func (r *CartRepository) cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}
