package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotKey   = "portal:catalog:snapshot"   // Serialized normalized plan list
	categoriesKey = "portal:catalog:categories" // Serialized category listing
)

// ErrCacheMiss is returned when nothing is cached under a key.
var ErrCacheMiss = errors.New("catalog cache miss")

// Snapshot is a normalized copy of the public catalog.
type Snapshot struct {
	Version   string              `json:"version"`
	FetchedAt time.Time           `json:"fetchedAt"`
	Plans     []domain.PlanRecord `json:"plans"`
}

// SnapshotRepository handles Redis operations for cached catalog data
type SnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(client *redis.Client, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{client: client, ttl: ttl}
}

// Get returns the cached snapshot or ErrCacheMiss.
func (r *SnapshotRepository) Get(ctx context.Context) (*Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog snapshot: %w", err)
	}
	return &snap, nil
}

// Put stores the snapshot with the repository TTL.
func (r *SnapshotRepository) Put(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}
	if err := r.client.Set(ctx, snapshotKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store catalog snapshot: %w", err)
	}
	return nil
}

// GetCategories returns the cached category listing or ErrCacheMiss.
func (r *SnapshotRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	data, err := r.client.Get(ctx, categoriesKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	var cats []domain.Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return cats, nil
}

func (r *SnapshotRepository) PutCategories(ctx context.Context, cats []domain.Category) error {
	data, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	if err := r.client.Set(ctx, categoriesKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store categories: %w", err)
	}
	return nil
}

// Invalidate drops every cached catalog key.
func (r *SnapshotRepository) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, snapshotKey, categoriesKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
