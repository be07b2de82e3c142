/*
occupancy.go - Per-day occupancy table

PURPOSE:
  Turns a snapshot of reservations into a table mapping each calendar day
  to the number of reservations occupying it. This is the single source
  of truth for occupancy: the availability checker and the waitlist
  matcher both consume it, and no other code recomputes the count.

INVARIANT:
  occupancy[day] == number of reservations r such that
    r.CheckIn ≤ day ≤ r.CheckOut (inclusive both ends)
    and filter(r.Status)
    and r.ID != excludeID

DEFENSIVE BEHAVIOR:
  A reservation with a malformed range (check-out before check-in, or
  zero dates) contributes no occupancy at all. It never produces a
  negative count or a partial range.

LIFETIME:
  The table is ephemeral. It is rebuilt from the snapshot on every
  calculation; the snapshot may already be stale by the time a write is
  issued, which is why callers re-fetch and re-check before committing.

SEE ALSO:
  - availability.go: min-remaining over a candidate range
  - waitlist.go: promotion matching against confirmed occupancy
*/
package booking

// OccupancyMap maps each occupied calendar day to the count of
// reservations covering it. Days with no qualifying reservation are
// absent; At treats them as zero.
type OccupancyMap map[Date]int

// BuildOccupancy builds the per-day occupancy table from a reservation
// snapshot. filter selects which statuses count (nil means the default
// confirmed/completed filter). excludeID drops one reservation from the
// count, used when re-checking a reservation that is being edited or
// extended so it does not conflict with itself.
func BuildOccupancy(reservations []Reservation, filter StatusFilter, excludeID string) OccupancyMap {
	if filter == nil {
		filter = OccupyingStatuses
	}

	occ := make(OccupancyMap)
	for _, r := range reservations {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if !filter(r.Status) {
			continue
		}
		// ForEachDay skips malformed ranges entirely.
		r.Range().ForEachDay(func(day Date) bool {
			occ[day]++
			return true
		})
	}
	return occ
}

// At returns the occupancy count for a day, zero when untouched.
func (m OccupancyMap) At(day Date) int { return m[day] }

// Peak returns the highest count across the table, zero when empty.
func (m OccupancyMap) Peak() int {
	peak := 0
	for _, n := range m {
		if n > peak {
			peak = n
		}
	}
	return peak
}
