package favorites

import (
	"context"
	"fmt"

	"github.com/archplans/plan-portal/internal/catalog/domain"
)

// PlanLookup resolves plan IDs against the catalog.
type PlanLookup interface {
	Get(ctx context.Context, id string) (*domain.PlanRecord, error)
	Lookup(ctx context.Context, ids []string) (map[string]domain.PlanRecord, error)
}

type Service struct {
	store   Store
	catalog PlanLookup
}

func NewService(store Store, catalog PlanLookup) *Service {
	return &Service{store: store, catalog: catalog}
}

// Toggle flips planID in owner's favorites and reports whether it is now a
// favorite. Unknown plans can be removed but not added.
func (s *Service) Toggle(ctx context.Context, owner, planID string) (bool, error) {
	if owner == "" {
		return false, ErrInvalidOwner
	}

	on, err := s.store.Contains(ctx, owner, planID)
	if err != nil {
		return false, err
	}
	if on {
		return false, s.store.Remove(ctx, owner, planID)
	}

	if _, err := s.catalog.Get(ctx, planID); err != nil {
		return false, err
	}
	if err := s.store.Add(ctx, owner, planID); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the owner's favorite plans. Plans no longer in the catalog
// are skipped.
func (s *Service) List(ctx context.Context, owner string) ([]domain.PlanRecord, error) {
	if owner == "" {
		return nil, ErrInvalidOwner
	}

	ids, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PlanRecord, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	plans, err := s.catalog.Lookup(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve favorites: %w", err)
	}
	for _, id := range ids {
		if p, ok := plans[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
