package domain

import "errors"

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSortKey  = errors.New("invalid sort key")
	ErrInvalidPrice    = errors.New("price must be a non-negative number")
)
