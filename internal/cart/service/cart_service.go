package service

import (
	"context"
	"fmt"
	"time"

	"github.com/archplans/plan-portal/internal/cart/repository"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/logging"
)

// PlanLookup resolves plan IDs against the catalog.
type PlanLookup interface {
	Get(ctx context.Context, id string) (*domain.PlanRecord, error)
	Lookup(ctx context.Context, ids []string) (map[string]domain.PlanRecord, error)
}

// Store persists cart entries per session.
type Store interface {
	Add(ctx context.Context, sessionID, planID string, at time.Time) error
	Remove(ctx context.Context, sessionID string, planIDs ...string) error
	List(ctx context.Context, sessionID string) ([]repository.Entry, error)
	Clear(ctx context.Context, sessionID string) error
}

type CartItem struct {
	Plan    domain.PlanRecord `json:"plan"`
	AddedAt time.Time         `json:"addedAt"`
}

// CartView is a cart resolved against the current catalog.
type CartView struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

type CartService struct {
	store   Store
	catalog PlanLookup
	now     func() time.Time
}

func NewCartService(store Store, catalog PlanLookup) *CartService {
	return &CartService{store: store, catalog: catalog, now: time.Now}
}

// Add puts a catalog plan in the cart. Plans are digital goods, so adding one
// twice leaves a single line.
func (s *CartService) Add(ctx context.Context, sessionID, planID string) (*CartView, error) {
	if _, err := s.catalog.Get(ctx, planID); err != nil {
		return nil, err
	}
	if err := s.store.Add(ctx, sessionID, planID, s.now()); err != nil {
		return nil, err
	}
	return s.List(ctx, sessionID)
}

func (s *CartService) Remove(ctx context.Context, sessionID, planID string) (*CartView, error) {
	if err := s.store.Remove(ctx, sessionID, planID); err != nil {
		return nil, err
	}
	return s.List(ctx, sessionID)
}

// List resolves the cart against the catalog. Plans that were delisted since
// they were added are pruned.
func (s *CartService) List(ctx context.Context, sessionID string) (*CartView, error) {
	entries, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartItem, 0, len(entries))}
	if len(entries) == 0 {
		return view, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.PlanID
	}
	plans, err := s.catalog.Lookup(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}

	var gone []string
	for _, e := range entries {
		plan, ok := plans[e.PlanID]
		if !ok {
			gone = append(gone, e.PlanID)
			continue
		}
		view.Items = append(view.Items, CartItem{Plan: plan, AddedAt: e.AddedAt})
		view.Total += plan.Price
	}
	view.Count = len(view.Items)

	if len(gone) > 0 {
		if err := s.store.Remove(ctx, sessionID, gone...); err != nil {
			logging.FromContext(ctx).LogWarnf("list_cart", "failed to prune %d delisted plans: %v", len(gone), err)
		}
	}
	return view, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}
