package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized      = errors.New("backend: unauthorized")
	ErrForbidden         = errors.New("backend: forbidden")
	ErrNotFound          = errors.New("backend: not found")
	ErrMalformedResponse = errors.New("backend: malformed response")
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// Is lets callers match on the status class with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
