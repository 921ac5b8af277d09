package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortRating    SortKey = "rating"
	SortDownloads SortKey = "downloads"
)

// ParseSortKey accepts the empty string, which keeps input order.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case "", SortFeatured, SortPriceLow, SortPriceHigh, SortNewest, SortPopular, SortRating, SortDownloads:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// FilterConfig is the set of predicates and the ordering applied to a catalog.
type FilterConfig struct {
	Category     string  `json:"category,omitempty"`
	MinRooms     int     `json:"minRooms,omitempty"`
	MinFloors    int     `json:"minFloors,omitempty"`
	Featured     bool    `json:"featured,omitempty"`
	NewListing   bool    `json:"newListing,omitempty"`
	Customizable bool    `json:"customizable,omitempty"`
	Premium      bool    `json:"premium,omitempty"`
	MinPrice     float64 `json:"minPrice,omitempty"`
	// MaxPrice is nil when the range is unbounded above.
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Query    string   `json:"query,omitempty"`
	Sort     SortKey  `json:"sort,omitempty"`
}

// PriceBounds returns the inclusive price range.
func (c FilterConfig) PriceBounds() (float64, float64) {
	if c.MaxPrice == nil {
		return c.MinPrice, math.Inf(1)
	}
	return c.MinPrice, *c.MaxPrice
}

// Key is a stable string form used to memoize filter results.
func (c FilterConfig) Key() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(c.Category)),
		strconv.Itoa(c.MinRooms),
		strconv.Itoa(c.MinFloors),
		strconv.FormatBool(c.Featured),
		strconv.FormatBool(c.NewListing),
		strconv.FormatBool(c.Customizable),
		strconv.FormatBool(c.Premium),
		strconv.FormatFloat(c.MinPrice, 'g', -1, 64),
		maxPriceKey(c.MaxPrice),
		strings.ToLower(strings.TrimSpace(c.Query)),
		string(c.Sort),
	}, "|")
}

func maxPriceKey(p *float64) string {
	if p == nil {
		return "inf"
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}
