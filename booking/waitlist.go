/*
waitlist.go - Waitlist gap matching

PURPOSE:
  Identifies which waitlisted reservations could be promoted right now
  without exceeding capacity on any day of their requested range.

ADVISORY SEMANTICS:
  Matching is per-entry against the current confirmed state. The pass
  does NOT simulate promotions: two waitlist entries that individually
  fit but would collide if both were promoted are both reported as
  fitting. Resolving that is a human decision, made one promotion at a
  time, with each promotion re-running the matcher. This is deliberate -
  the matcher recommends, the operator decides.

ORDERING:
  First-come-first-served by creation timestamp, ties broken by id so
  the report order is deterministic.

SEE ALSO:
  - occupancy.go: Confirmed/completed occupancy the entries are checked against
  - availability.go: The single-range form of the same walk
*/
package booking

import "sort"

// maxReportedConflicts caps how many conflicting days a match lists;
// the rest are summarized as an overflow count for display.
const maxReportedConflicts = 3

// WaitlistMatch is the matcher's verdict on one waitlisted reservation.
type WaitlistMatch struct {
	Reservation Reservation `json:"reservation"`

	// Fits is true when every day of the requested range has a free slot.
	Fits bool `json:"fits"`

	// MinRemaining is the smallest slack across the requested range.
	MinRemaining int `json:"min_remaining"`

	// ConflictDays lists the first days (up to maxReportedConflicts)
	// where occupancy already meets capacity. Empty when Fits.
	ConflictDays []Date `json:"conflict_days,omitempty"`

	// ConflictOverflow counts conflicting days beyond ConflictDays.
	ConflictOverflow int `json:"conflict_overflow,omitempty"`
}

// MatchWaitlist scans waitlisted reservations in arrival order and
// reports, for each, whether it could be promoted without exceeding
// maxCapacity anywhere in its range. Only confirmed and completed
// reservations count against capacity: waitlist entries never count
// against each other or themselves.
func MatchWaitlist(reservations []Reservation, maxCapacity int) ([]WaitlistMatch, error) {
	if maxCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	occ := BuildOccupancy(reservations, OccupyingStatuses, "")

	var queued []Reservation
	for _, r := range reservations {
		if r.Status == StatusWaitlist {
			queued = append(queued, r)
		}
	}
	sort.SliceStable(queued, func(i, j int) bool {
		if !queued[i].CreatedAt.Equal(queued[j].CreatedAt) {
			return queued[i].CreatedAt.Before(queued[j].CreatedAt)
		}
		return queued[i].ID < queued[j].ID
	})

	matches := make([]WaitlistMatch, 0, len(queued))
	for _, r := range queued {
		matches = append(matches, matchOne(r, occ, maxCapacity))
	}
	return matches, nil
}

func matchOne(r Reservation, occ OccupancyMap, maxCapacity int) WaitlistMatch {
	match := WaitlistMatch{Reservation: r, MinRemaining: maxCapacity}

	rng := r.Range()
	if !rng.IsValid() {
		// A malformed waitlist entry cannot be promoted; it blocks no
		// one and fits nowhere.
		match.Fits = false
		match.MinRemaining = 0
		return match
	}

	rng.ForEachDay(func(day Date) bool {
		remaining := maxCapacity - occ.At(day)
		if remaining < 0 {
			remaining = 0
		}
		if remaining < match.MinRemaining {
			match.MinRemaining = remaining
		}
		if remaining == 0 {
			if len(match.ConflictDays) < maxReportedConflicts {
				match.ConflictDays = append(match.ConflictDays, day)
			} else {
				match.ConflictOverflow++
			}
		}
		return true
	})

	match.Fits = len(match.ConflictDays) == 0
	return match
}
