package service

import (
	"sort"
	"strings"

	"github.com/archplans/plan-portal/internal/catalog/domain"
)

// Apply returns the records matching every active predicate of cfg, ordered by
// cfg.Sort. The input slice is not modified.
func Apply(records []domain.PlanRecord, cfg domain.FilterConfig) []domain.PlanRecord {
	out := make([]domain.PlanRecord, 0, len(records))
	for _, r := range records {
		if Matches(r, cfg) {
			out = append(out, r)
		}
	}
	Sort(out, cfg.Sort)
	return out
}

// Matches reports whether r satisfies every predicate of cfg.
func Matches(r domain.PlanRecord, cfg domain.FilterConfig) bool {
	return matchesQuery(r, cfg.Query) &&
		matchesCategory(r, cfg.Category) &&
		r.Rooms >= cfg.MinRooms &&
		r.Floors >= cfg.MinFloors &&
		(!cfg.Featured || r.Featured) &&
		(!cfg.NewListing || r.NewListing) &&
		(!cfg.Customizable || r.Customizable) &&
		(!cfg.Premium || r.Premium) &&
		matchesPrice(r, cfg)
}

func matchesQuery(r domain.PlanRecord, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.Architect), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// matchesCategory compares against the enumerated group exactly, so a
// category named "Commercial Extra" never matches a "Commercial" filter.
func matchesCategory(r domain.PlanRecord, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, domain.CategoryAll) {
		return true
	}
	return strings.EqualFold(string(r.CategoryGroup), category)
}

func matchesPrice(r domain.PlanRecord, cfg domain.FilterConfig) bool {
	lo, hi := cfg.PriceBounds()
	return r.Price >= lo && r.Price <= hi
}

// Sort orders records in place with a stable comparator selected by key.
// An empty or unknown key keeps the current order.
func Sort(records []domain.PlanRecord, key domain.SortKey) {
	less := comparator(key)
	if less == nil {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func comparator(key domain.SortKey) func(a, b domain.PlanRecord) bool {
	switch key {
	case domain.SortFeatured:
		return func(a, b domain.PlanRecord) bool { return a.Featured && !b.Featured }
	case domain.SortPriceLow:
		return func(a, b domain.PlanRecord) bool { return a.Price < b.Price }
	case domain.SortPriceHigh:
		return func(a, b domain.PlanRecord) bool { return a.Price > b.Price }
	case domain.SortNewest:
		return func(a, b domain.PlanRecord) bool { return a.NewListing && !b.NewListing }
	case domain.SortPopular:
		return func(a, b domain.PlanRecord) bool { return a.Views > b.Views }
	case domain.SortRating:
		return func(a, b domain.PlanRecord) bool { return a.Rating > b.Rating }
	case domain.SortDownloads:
		return func(a, b domain.PlanRecord) bool { return a.Downloads > b.Downloads }
	}
	return nil
}
