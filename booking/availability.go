/*
availability.go - Range availability checking

PURPOSE:
  Answers whether a candidate stay fits within facility capacity on every
  day of its range, and how much slack remains on the tightest day.

PURITY:
  CheckAvailability is pure: identical inputs produce identical results,
  with no side effects. The booking UI calls it repeatedly while the user
  edits form fields, and the write path calls it once more immediately
  before committing; both rely on it being cheap and deterministic.

SELF-EXCLUSION:
  Extending or editing an existing reservation must pass that
  reservation's own id as excludeID, otherwise the stay always appears
  to conflict with itself.

SEE ALSO:
  - occupancy.go: The underlying per-day table
  - waitlist.go: The same walk applied to queued stays
*/
package booking

// Availability is the result of a range capacity check.
type Availability struct {
	// Available is true when every day in the range has at least one
	// free slot.
	Available bool `json:"available"`

	// MinRemaining is the smallest number of free slots on any day of
	// the range. Equals the full capacity when the range touches no
	// occupied day. Never negative: overbooked days clamp to zero.
	MinRemaining int `json:"min_remaining"`
}

// CheckAvailability reports whether a stay over [checkIn, checkOut] fits
// within maxCapacity given the reservation snapshot. Only confirmed and
// completed reservations count against capacity. excludeID (may be
// empty) drops one reservation from the count for self-exclusion.
//
// An inverted range or non-positive capacity is a caller error, not a
// "no availability" answer.
func CheckAvailability(checkIn, checkOut Date, reservations []Reservation, maxCapacity int, excludeID string) (Availability, error) {
	if maxCapacity <= 0 {
		return Availability{}, ErrInvalidCapacity
	}
	candidate := DateRange{Start: checkIn, End: checkOut}
	if !candidate.IsValid() {
		return Availability{}, ErrInvalidRange
	}

	occ := BuildOccupancy(reservations, OccupyingStatuses, excludeID)
	return checkRange(candidate, occ, maxCapacity), nil
}

// checkRange walks a valid range against a prebuilt occupancy table.
// Shared with the waitlist matcher so both use the same arithmetic.
func checkRange(r DateRange, occ OccupancyMap, maxCapacity int) Availability {
	minRemaining := maxCapacity
	r.ForEachDay(func(day Date) bool {
		remaining := maxCapacity - occ.At(day)
		if remaining < 0 {
			// Deliberate overbooking can push occupancy past
			// capacity; report zero slack, never a negative.
			remaining = 0
		}
		if remaining < minRemaining {
			minRemaining = remaining
		}
		return minRemaining > 0
	})

	return Availability{
		Available:    minRemaining > 0,
		MinRemaining: minRemaining,
	}
}
