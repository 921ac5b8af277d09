package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/archplans/plan-portal/internal/cart/repository"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	plans   map[string]domain.PlanRecord
	err     error
	lookups int
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*domain.PlanRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) Lookup(_ context.Context, ids []string) (map[string]domain.PlanRecord, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]domain.PlanRecord{}
	for _, id := range ids {
		if p, ok := f.plans[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func setupService(t *testing.T) (*CartService, *fakeCatalog) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	catalog := &fakeCatalog{plans: map[string]domain.PlanRecord{
		"a": {ID: "a", Title: "Villa", Price: 120},
		"b": {ID: "b", Title: "Cabin", Price: 30.5},
	}}
	svc := NewCartService(repository.NewCartRepository(client), catalog)

	tick := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return svc, catalog
}

func TestCartService_AddIsIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "a")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "b")
	require.NoError(t, err)
	view, err := svc.Add(ctx, "s1", "a")
	require.NoError(t, err)

	require.Equal(t, 2, view.Count)
	assert.Equal(t, "a", view.Items[0].Plan.ID)
	assert.Equal(t, "b", view.Items[1].Plan.ID)
	assert.InDelta(t, 150.5, view.Total, 1e-9)
}

func TestCartService_AddUnknownPlan(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Add(context.Background(), "s1", "zzz")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	view, err := svc.List(context.Background(), "s1")
	require.NoError(t, err)
	assert.Zero(t, view.Count)
}

func TestCartService_ListPrunesDelistedPlans(t *testing.T) {
	svc, catalog := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "a")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "b")
	require.NoError(t, err)

	delete(catalog.plans, "a")
	view, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 1, view.Count)
	assert.Equal(t, "b", view.Items[0].Plan.ID)
	assert.InDelta(t, 30.5, view.Total, 1e-9)

	entries, err := svc.store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCartService_ListResolvesCatalogOnce(t *testing.T) {
	svc, catalog := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "a")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "b")
	require.NoError(t, err)

	catalog.lookups = 0
	view, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, 1, catalog.lookups)
}

func TestCartService_CatalogDown(t *testing.T) {
	svc, catalog := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "a")
	require.NoError(t, err)

	catalog.err = errors.New("backend unavailable")
	_, err = svc.List(ctx, "s1")
	require.Error(t, err)

	// Nothing is pruned when the catalog cannot answer.
	entries, err := svc.store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "a")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "b")
	require.NoError(t, err)

	view, err := svc.Remove(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)

	require.NoError(t, svc.Clear(ctx, "s1"))
	view, err = svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, view.Count)
	assert.Zero(t, view.Total)
}
