package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/catalog/repository"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/google/uuid"
)

// PlanSource is the part of the backend client the catalog reads from.
type PlanSource interface {
	ListPlans(ctx context.Context, token string, q backend.PlanQuery) ([]backend.Plan, error)
	ListCategories(ctx context.Context) ([]backend.Category, error)
}

// SnapshotCache stores normalized catalog data between requests.
type SnapshotCache interface {
	Get(ctx context.Context) (*repository.Snapshot, error)
	Put(ctx context.Context, snap *repository.Snapshot) error
	GetCategories(ctx context.Context) ([]domain.Category, error)
	PutCategories(ctx context.Context, cats []domain.Category) error
	Invalidate(ctx context.Context) error
}

type memo struct {
	version string
	key     string
	plans   []domain.PlanRecord
}

// CatalogService fetches, normalizes, caches and filters the plan catalog
type CatalogService struct {
	source PlanSource
	cache  SnapshotCache

	mu   sync.Mutex
	last memo
}

// NewCatalogService creates a new CatalogService. cache may be nil, in which
// case every read goes to the backend.
func NewCatalogService(source PlanSource, cache SnapshotCache) *CatalogService {
	return &CatalogService{source: source, cache: cache}
}

// Snapshot returns the normalized public catalog, from cache when possible.
func (s *CatalogService) Snapshot(ctx context.Context) (*repository.Snapshot, error) {
	logger := logging.FromContext(ctx)

	if s.cache != nil {
		snap, err := s.cache.Get(ctx)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			logger.LogWarnf("catalog_snapshot", "cache read failed, fetching from backend: %v", err)
		}
	}

	return s.fetch(ctx)
}

func (s *CatalogService) fetch(ctx context.Context) (*repository.Snapshot, error) {
	plans, err := s.source.ListPlans(ctx, "", backend.PlanQuery{})
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	snap := &repository.Snapshot{
		Version:   uuid.New().String(),
		FetchedAt: time.Now().UTC(),
		Plans:     backend.PlanRecords(plans),
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, snap); err != nil {
			logging.FromContext(ctx).LogWarnf("catalog_snapshot", "cache write failed: %v", err)
		}
	}
	return snap, nil
}

// Browse applies cfg to the catalog. Results are memoized per snapshot
// version and filter key, so repeated identical reads skip the engine.
func (s *CatalogService) Browse(ctx context.Context, cfg domain.FilterConfig) ([]domain.PlanRecord, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	key := cfg.Key()
	s.mu.Lock()
	if s.last.version == snap.Version && s.last.key == key {
		plans := s.last.plans
		s.mu.Unlock()
		return plans, nil
	}
	s.mu.Unlock()

	plans := Apply(snap.Plans, cfg)

	s.mu.Lock()
	s.last = memo{version: snap.Version, key: key, plans: plans}
	s.mu.Unlock()

	return plans, nil
}

// Get returns a single plan from the catalog.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.PlanRecord, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snap.Plans {
		if snap.Plans[i].ID == id {
			p := snap.Plans[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPlanNotFound
}

// Lookup resolves ids against a single catalog snapshot. IDs that are not in
// the catalog are missing from the result.
func (s *CatalogService) Lookup(ctx context.Context, ids []string) (map[string]domain.PlanRecord, error) {
	out := make(map[string]domain.PlanRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for _, p := range snap.Plans {
		if _, ok := want[p.ID]; ok {
			out[p.ID] = p
		}
	}
	return out, nil
}

// Featured returns the promotional featured subset straight from the backend.
func (s *CatalogService) Featured(ctx context.Context) ([]domain.PlanRecord, error) {
	plans, err := s.source.ListPlans(ctx, "", backend.PlanQuery{Featured: true})
	if err != nil {
		return nil, fmt.Errorf("fetch featured plans: %w", err)
	}
	return backend.PlanRecords(plans), nil
}

// Trending returns the backend's trending subset.
func (s *CatalogService) Trending(ctx context.Context) ([]domain.PlanRecord, error) {
	plans, err := s.source.ListPlans(ctx, "", backend.PlanQuery{Trending: true})
	if err != nil {
		return nil, fmt.Errorf("fetch trending plans: %w", err)
	}
	return backend.PlanRecords(plans), nil
}

// Categories returns the public category listing.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		if cats, err := s.cache.GetCategories(ctx); err == nil {
			return cats, nil
		}
	}

	raw, err := s.source.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	cats := make([]domain.Category, 0, len(raw))
	for _, c := range raw {
		cats = append(cats, c.Record())
	}

	if s.cache != nil {
		if err := s.cache.PutCategories(ctx, cats); err != nil {
			logging.FromContext(ctx).LogWarnf("catalog_categories", "cache write failed: %v", err)
		}
	}
	return cats, nil
}

// Refresh drops the cache and refetches the catalog. It returns the number of
// plans in the new snapshot.
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logging.FromContext(ctx).LogWarnf("catalog_refresh", "cache invalidation failed: %v", err)
		}
	}
	snap, err := s.fetch(ctx)
	if err != nil {
		return 0, err
	}
	return len(snap.Plans), nil
}
