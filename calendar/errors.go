/*
errors.go - Centralized error types for the calendar core

PURPOSE:

	All error types in one place for consistency and discoverability.
	Consumers (providers, API layer) should wrap these errors with
	additional context.

ERROR CATEGORIES:
 1. Boundary errors    - Constructing a period from a non-boundary instant
 2. Granularity errors - Asking the factory for an unknown period variant

LOOKUPS NEVER FAIL:

	Collection lookups (Find*, Has) represent absence as an empty result,
	never as an error. Iteration exhaustion is a normal terminal state.

USAGE:

	Callers can match with errors.Is():

	  if errors.Is(err, calendar.ErrInvalidBoundary) {
	      // instant did not sit on the variant's boundary
	  }

SEE ALSO:
  - period.go: Boundary predicates and direct constructors
  - factory.go: Normalizing constructors that never hit boundary errors
*/
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidBoundary is returned when a period is constructed directly
	// with an instant that fails the variant's boundary predicate. The
	// factory normalizes before constructing and never returns this.
	ErrInvalidBoundary = errors.New("instant is not a valid period boundary")

	// ErrInvalidGranularity is returned when the factory is asked for a
	// period variant it does not recognize.
	ErrInvalidGranularity = errors.New("unknown period granularity")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// BoundaryError reports which instant failed which variant's boundary rule.
type BoundaryError struct {
	Granularity Granularity
	Instant     time.Time
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("invalid %s boundary: %s", e.Granularity, e.Instant.Format(time.RFC3339))
}

func (e *BoundaryError) Unwrap() error {
	return ErrInvalidBoundary
}

// GranularityError reports an unrecognized granularity name.
type GranularityError struct {
	Name string
}

func (e *GranularityError) Error() string {
	return fmt.Sprintf("invalid granularity %q", e.Name)
}

func (e *GranularityError) Unwrap() error {
	return ErrInvalidGranularity
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidBoundary) ||
		errors.Is(err, ErrInvalidGranularity)
}
