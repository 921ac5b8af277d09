// Package favorites keeps the plans a visitor has marked as favorite.
package favorites

import (
	"context"
	"errors"
)

var ErrInvalidOwner = errors.New("favorites owner is required")

// Store persists favorite plan IDs per owner. List returns the oldest
// favorite first.
type Store interface {
	Add(ctx context.Context, owner, planID string) error
	Remove(ctx context.Context, owner, planID string) error
	List(ctx context.Context, owner string) ([]string, error)
	Contains(ctx context.Context, owner, planID string) (bool, error)
}
