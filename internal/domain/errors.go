// Package domain defines errors and value types shared by every feature.
package domain

import "errors"

// Domain errors surfaced to API callers.
// Repositories and clients wrap these with fmt.Errorf("%w: ...") so callers can match them with errors.Is.
var (
	// ErrNotFound indicates that the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates that the input references data that does not exist or is malformed.
	// It is returned before anything is persisted.
	ErrValidation = errors.New("validation error")

	// ErrUpstreamUnavailable indicates that the external market data provider failed,
	// timed out or answered with a payload that could not be used.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrConstraintViolation indicates a unique or foreign key conflict reported by the store.
	ErrConstraintViolation = errors.New("constraint violation")
)
