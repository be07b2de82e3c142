/*
Package booking provides the core kennel scheduling and billing engine.

PURPOSE:
  This package contains the capacity-constrained scheduling logic for a
  boarding facility with a fixed number of kennel slots. It answers, for
  any snapshot of reservations, whether a proposed date range can be
  served without exceeding capacity, which waitlisted stays could be
  promoted right now, and what a stay costs.

KEY CONCEPTS IN THIS FILE (types.go):
  - Reservation: A single stay booking for one animal over a date range
  - SizeClass: Small/medium/large, determines the default day rate
  - Expense: An itemized extra charge on a reservation
  - Facility: The capacity and rate configuration, injected per call

DESIGN PRINCIPLES:
  1. Purity: Every calculation is a function of (snapshot, capacity);
     no globals, no hidden state, no side effects
  2. Precision: Uses decimal.Decimal for money to avoid float drift
  3. Snapshot semantics: The reservation set is fetched, computed over,
     and may be stale by the time a write lands; callers re-validate
     immediately before every write

USAGE:
  avail, err := booking.CheckAvailability(in, out, reservations, cap, "")
  matches, err := booking.MatchWaitlist(reservations, cap)
  total := booking.TotalCost(r)

SEE ALSO:
  - occupancy.go: Per-day occupancy table, the single source of truth
  - availability.go: Range availability checks
  - waitlist.go: Waitlist gap matching
  - billing.go: Total cost calculation
  - status.go: Reservation lifecycle vocabulary
*/
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SIZE CLASS - Determines the default day rate
// =============================================================================

type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// IsValid returns true if the size class is one of the closed set.
func (s SizeClass) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// =============================================================================
// EXPENSE - Itemized extra charge
// =============================================================================

// Expense is one itemized charge on a reservation (medication, special
// food, an extra walk). Order is preserved for invoice display.
type Expense struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ChecklistItem is a pre-stay checklist entry. No scheduling semantics.
type ChecklistItem struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// =============================================================================
// RESERVATION - The central entity
// =============================================================================

// Reservation is a single stay booking for one animal over an inclusive
// date range [CheckIn, CheckOut]. A same-day stay spans one day.
// Reservations are never physically deleted by the engine; cancellation
// removes them from capacity accounting instead.
type Reservation struct {
	ID string `json:"id"`

	// Subject
	PetName string    `json:"pet_name"`
	Breed   string    `json:"breed"`
	Size    SizeClass `json:"size"`

	// Temporal. Invariant: CheckIn ≤ CheckOut.
	CheckIn  Date `json:"check_in"`
	CheckOut Date `json:"check_out"`

	// Pricing. PricePerDay defaults from the size class but is
	// independently overridable. VetFee and GroomingFee are legacy
	// flat fees kept for backward compatibility; billing treats them
	// as two more itemized charges.
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Expenses    []Expense       `json:"expenses,omitempty"`
	VetFee      decimal.Decimal `json:"vet_fee"`
	GroomingFee decimal.Decimal `json:"grooming_fee"`

	Status Status `json:"status"`

	// Bookkeeping. CreatedAt is the FIFO tiebreaker for the waitlist.
	CreatedAt time.Time       `json:"created_at"`
	Tags      []string        `json:"tags,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`
}

// Range returns the stay as a DateRange.
func (r Reservation) Range() DateRange {
	return DateRange{Start: r.CheckIn, End: r.CheckOut}
}

// StayDays returns the inclusive duration of the stay in days.
// Zero for a malformed reservation.
func (r Reservation) StayDays() int {
	return r.Range().DaysInclusive()
}

// =============================================================================
// FACILITY - Injected configuration, never ambient state
// =============================================================================

// RateCard maps a size class to its default day rate.
type RateCard map[SizeClass]decimal.Decimal

// DefaultRateCard returns the stock day rates.
func DefaultRateCard() RateCard {
	return RateCard{
		SizeSmall:  decimal.NewFromInt(2500),
		SizeMedium: decimal.NewFromInt(3500),
		SizeLarge:  decimal.NewFromInt(4500),
	}
}

// RateFor returns the day rate for a size class, or zero if unknown.
func (rc RateCard) RateFor(size SizeClass) decimal.Decimal {
	if rate, ok := rc[size]; ok {
		return rate
	}
	return decimal.Zero
}

// Facility describes the boarding facility: how many reservations may
// occupy any single calendar day, and the default day rates. The engine
// treats it as a read-only parameter to every calculation.
type Facility struct {
	MaxCapacity int      `json:"max_capacity"`
	Rates       RateCard `json:"rates"`
}

// DefaultFacility returns a facility with the stock rate card.
func DefaultFacility(maxCapacity int) Facility {
	return Facility{MaxCapacity: maxCapacity, Rates: DefaultRateCard()}
}
