package booking

// =============================================================================
// STATUS - Reservation lifecycle vocabulary
// =============================================================================

// Status is the lifecycle state of a reservation. It is a vocabulary,
// not a guard: no status value refuses a caller-forced write. Whether a
// promotion or confirmation is capacity-safe is a separate, advisory
// question answered by CheckAvailability / MatchWaitlist, and the
// operator can always override it (deliberate overbooking is allowed).
type Status string

const (
	// StatusWaitlist is a stay queued because capacity looked exhausted
	// at creation time. Does not consume capacity.
	StatusWaitlist Status = "waitlist"

	// StatusRequest is a direct booking awaiting confirmation.
	// Does not consume capacity; enforcement happens at confirmation.
	StatusRequest Status = "request"

	// StatusConfirmed is a booked stay. Consumes capacity.
	StatusConfirmed Status = "confirmed"

	// StatusCompleted is a finished stay. Still consumes capacity for
	// the days it covered. Terminal.
	StatusCompleted Status = "completed"

	// StatusCancelled removes the stay from capacity accounting. Terminal.
	StatusCancelled Status = "cancelled"
)

// IsValid returns true if the status is one of the closed set.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaitlist, StatusRequest, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Occupies reports whether a reservation in this status consumes kennel
// capacity. Waitlist and request entries are soft holds.
func (s Status) Occupies() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// IsTerminal reports whether the lifecycle ends here.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// meaningfulTransitions enumerates the lifecycle transitions the booking
// workflow actually performs. Anything else is still writable with an
// operator override.
var meaningfulTransitions = map[Status][]Status{
	StatusWaitlist:  {StatusRequest, StatusConfirmed, StatusCancelled},
	StatusRequest:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is part of the meaningful
// lifecycle. This is advisory only; it says nothing about capacity.
func CanTransition(from, to Status) bool {
	for _, next := range meaningfulTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusFilter selects which statuses count for a calculation.
type StatusFilter func(Status) bool

// OccupyingStatuses is the default filter for occupancy: confirmed and
// completed stays consume capacity, soft holds do not.
func OccupyingStatuses(s Status) bool { return s.Occupies() }
