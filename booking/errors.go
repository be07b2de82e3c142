/*
errors.go - Centralized error types for the booking engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The engine has no I/O of its own, so every failure here is an
  invalid-input failure; store implementations wrap these with
  persistence context where appropriate.

POLICY:
  Malformed reservation data (inverted ranges, unparseable dates) is
  treated defensively: such records simply contribute no occupancy.
  But a calculation asked a direct question about bad input (an inverted
  candidate range, a non-positive capacity) answers with an error rather
  than a plausible-looking number. Negative day counts and negative
  remaining-capacity values are never returned.

USAGE:
  if errors.Is(err, booking.ErrInvalidRange) { ... }

SEE ALSO:
  - availability.go: Returns ErrInvalidRange / ErrInvalidCapacity
  - store.go: Store implementations return ErrNotFound
*/
package booking

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date string cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when a queried range has checkOut before checkIn.
	ErrInvalidRange = errors.New("invalid range: check-out before check-in")

	// ErrInvalidCapacity is returned when maxCapacity is not a positive integer.
	ErrInvalidCapacity = errors.New("invalid capacity: must be positive")

	// ErrNotFound is returned by stores when a reservation id does not exist.
	ErrNotFound = errors.New("reservation not found")

	// ErrInvalidTransition is returned by advisory transition checks.
	// The status value itself never blocks a write; see CanTransition.
	ErrInvalidTransition = errors.New("transition not meaningful")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CapacityError reports the first day on which a candidate range ran out
// of capacity. Advisory callers surface this to the operator, who may
// still choose to overbook.
type CapacityError struct {
	Day      Date
	Occupied int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("no capacity on %s: %d of %d slots taken", e.Day, e.Occupied, e.Capacity)
}

// TransitionError reports a status change that is not part of the
// meaningful lifecycle. Wraps ErrInvalidTransition.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s is not meaningful", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidTransition)
}

// IsNotFound returns true if the error indicates a missing reservation.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
