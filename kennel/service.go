/*
Package kennel implements the boarding workflow on top of the booking engine.

PURPOSE:
  The booking package is pure: it computes over snapshots and never
  touches storage. This package owns the workflow around it - creating
  reservations (falling back to the waitlist when capacity looks
  exhausted), extending stays, advisory-gated status changes, waitlist
  promotion, and invoicing.

WRITE DISCIPLINE:
  Every mutating operation re-fetches the reservation snapshot and
  re-validates availability immediately before writing. There is no
  cross-request lock: the availability check is cheap by design, so the
  re-check right before the write is the concurrency story.

OVERRIDE:
  Capacity checks are advisory. Each gated operation takes an override
  flag so the operator can overbook deliberately; the engine then clamps
  reported slack at zero rather than going negative.

SEE ALSO:
  - booking: The pure scheduling and billing engine
  - store/sqlite: The production store behind this service
*/
package kennel

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/kennel-engine/booking"
)

// Store is the persistence the service needs: reservations plus the
// facility settings row.
type Store interface {
	booking.Store
	booking.SettingsStore
}

// Service orchestrates the boarding workflow.
type Service struct {
	store Store

	// now is swappable for tests.
	now func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// =============================================================================
// CREATE
// =============================================================================

// CreateInput carries the booking form fields for a new reservation.
type CreateInput struct {
	PetName  string
	Breed    string
	Size     booking.SizeClass
	CheckIn  booking.Date
	CheckOut booking.Date

	// PricePerDay overrides the rate card when positive.
	PricePerDay decimal.Decimal
	Expenses    []booking.Expense
	VetFee      decimal.Decimal
	GroomingFee decimal.Decimal

	// Status is the requested initial state: request, waitlist, or
	// confirmed. Empty defaults to request.
	Status booking.Status

	// Override confirms even when the capacity check says no.
	Override bool

	Tags      []string
	Checklist []booking.ChecklistItem
}

// CreateReservation validates the input, prices it from the rate card,
// and stores it. A direct confirmation that fails the capacity check is
// placed on the waitlist instead, unless Override is set.
func (s *Service) CreateReservation(ctx context.Context, in CreateInput) (*booking.Reservation, error) {
	rng := booking.DateRange{Start: in.CheckIn, End: in.CheckOut}
	if !rng.IsValid() {
		return nil, booking.ErrInvalidRange
	}
	if !in.Size.IsValid() {
		return nil, fmt.Errorf("unknown size class %q", in.Size)
	}

	status := in.Status
	if status == "" {
		status = booking.StatusRequest
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q", in.Status)
	}

	facility, err := s.store.Facility(ctx)
	if err != nil {
		return nil, fmt.Errorf("load facility settings: %w", err)
	}

	price := in.PricePerDay
	if !price.IsPositive() {
		price = facility.Rates.RateFor(in.Size)
	}

	now := s.now()
	r := booking.Reservation{
		ID:          newID(now),
		PetName:     in.PetName,
		Breed:       in.Breed,
		Size:        in.Size,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		PricePerDay: price,
		Expenses:    in.Expenses,
		VetFee:      in.VetFee,
		GroomingFee: in.GroomingFee,
		Status:      status,
		CreatedAt:   now,
		Tags:        in.Tags,
		Checklist:   in.Checklist,
	}

	// Only a direct confirmation consumes capacity, so only that path
	// is gated. Requests and waitlist entries are soft holds.
	if status == booking.StatusConfirmed && !in.Override {
		snapshot, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load reservations: %w", err)
		}
		avail, err := booking.CheckAvailability(in.CheckIn, in.CheckOut, snapshot, facility.MaxCapacity, "")
		if err != nil {
			return nil, err
		}
		if !avail.Available {
			r.Status = booking.StatusWaitlist
		}
	}

	if err := s.store.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("save reservation: %w", err)
	}
	return &r, nil
}

// =============================================================================
// EXTEND
// =============================================================================

// ExtendReservation moves a stay's check-out date. The capacity re-check
// excludes the reservation itself so it does not conflict with its own
// current booking. Override skips the gate.
func (s *Service) ExtendReservation(ctx context.Context, id string, newCheckOut booking.Date, override bool) (*booking.Reservation, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rng := booking.DateRange{Start: r.CheckIn, End: newCheckOut}
	if !rng.IsValid() {
		return nil, booking.ErrInvalidRange
	}

	if r.Status.Occupies() && !override {
		facility, err := s.store.Facility(ctx)
		if err != nil {
			return nil, fmt.Errorf("load facility settings: %w", err)
		}
		snapshot, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load reservations: %w", err)
		}
		avail, err := booking.CheckAvailability(r.CheckIn, newCheckOut, snapshot, facility.MaxCapacity, r.ID)
		if err != nil {
			return nil, err
		}
		if !avail.Available {
			return nil, firstConflict(r.CheckIn, newCheckOut, snapshot, facility.MaxCapacity, r.ID)
		}
	}

	r.CheckOut = newCheckOut
	if err := s.store.Upsert(ctx, *r); err != nil {
		return nil, fmt.Errorf("save reservation: %w", err)
	}
	return r, nil
}

// =============================================================================
// STATUS CHANGES
// =============================================================================

// ChangeStatus moves a reservation through its lifecycle. Transitions
// outside the meaningful set are rejected unless override is set. A
// transition into confirmed is additionally capacity-gated (again
// bypassed by override - the operator may overbook deliberately).
func (s *Service) ChangeStatus(ctx context.Context, id string, to booking.Status, override bool) (*booking.Reservation, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("unknown status %q", to)
	}

	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !override && !booking.CanTransition(r.Status, to) {
		return nil, &booking.TransitionError{From: r.Status, To: to}
	}

	if to == booking.StatusConfirmed && !override {
		facility, err := s.store.Facility(ctx)
		if err != nil {
			return nil, fmt.Errorf("load facility settings: %w", err)
		}
		snapshot, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load reservations: %w", err)
		}
		avail, err := booking.CheckAvailability(r.CheckIn, r.CheckOut, snapshot, facility.MaxCapacity, r.ID)
		if err != nil {
			return nil, err
		}
		if !avail.Available {
			return nil, firstConflict(r.CheckIn, r.CheckOut, snapshot, facility.MaxCapacity, r.ID)
		}
	}

	r.Status = to
	if err := s.store.Upsert(ctx, *r); err != nil {
		return nil, fmt.Errorf("save reservation: %w", err)
	}
	return r, nil
}

// Promote confirms a waitlisted reservation. It is ChangeStatus with the
// intent spelled out: the matcher recommends, this commits one entry.
func (s *Service) Promote(ctx context.Context, id string, override bool) (*booking.Reservation, error) {
	return s.ChangeStatus(ctx, id, booking.StatusConfirmed, override)
}

// =============================================================================
// QUERIES
// =============================================================================

// Availability runs the range check against the current snapshot.
func (s *Service) Availability(ctx context.Context, checkIn, checkOut booking.Date, excludeID string) (booking.Availability, error) {
	facility, err := s.store.Facility(ctx)
	if err != nil {
		return booking.Availability{}, fmt.Errorf("load facility settings: %w", err)
	}
	snapshot, err := s.store.List(ctx)
	if err != nil {
		return booking.Availability{}, fmt.Errorf("load reservations: %w", err)
	}
	return booking.CheckAvailability(checkIn, checkOut, snapshot, facility.MaxCapacity, excludeID)
}

// WaitlistMatches runs the gap matcher against the current snapshot.
func (s *Service) WaitlistMatches(ctx context.Context) ([]booking.WaitlistMatch, error) {
	facility, err := s.store.Facility(ctx)
	if err != nil {
		return nil, fmt.Errorf("load facility settings: %w", err)
	}
	snapshot, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	return booking.MatchWaitlist(snapshot, facility.MaxCapacity)
}

// Invoice returns the itemized bill for one reservation.
func (s *Service) Invoice(ctx context.Context, id string) (*booking.Invoice, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	inv := booking.Itemize(*r)
	return &inv, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// firstConflict rebuilds the occupancy for the failed range and returns
// a CapacityError naming the first full day, for the operator's benefit.
func firstConflict(checkIn, checkOut booking.Date, reservations []booking.Reservation, maxCapacity int, excludeID string) error {
	occ := booking.BuildOccupancy(reservations, booking.OccupyingStatuses, excludeID)
	var conflict error
	booking.DateRange{Start: checkIn, End: checkOut}.ForEachDay(func(day booking.Date) bool {
		if occ.At(day) >= maxCapacity {
			conflict = &booking.CapacityError{Day: day, Occupied: occ.At(day), Capacity: maxCapacity}
			return false
		}
		return true
	})
	if conflict == nil {
		conflict = &booking.CapacityError{Day: checkIn, Occupied: maxCapacity, Capacity: maxCapacity}
	}
	return conflict
}

func newID(now time.Time) string {
	return fmt.Sprintf("res-%d", now.UnixNano())
}
