/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Monetary fields cross the wire as decimal strings ("3500"). No rounding
  happens server-side; clients format for display.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/kennel-engine/booking"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ExpenseDTO is one itemized charge.
type ExpenseDTO struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// ChecklistItemDTO is one pre-stay checklist entry.
type ChecklistItemDTO struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// ReservationDTO represents a reservation in API responses.
type ReservationDTO struct {
	ID          string             `json:"id"`
	PetName     string             `json:"pet_name"`
	Breed       string             `json:"breed,omitempty"`
	Size        string             `json:"size"`
	CheckIn     string             `json:"check_in"`
	CheckOut    string             `json:"check_out"`
	StayDays    int                `json:"stay_days"`
	PricePerDay string             `json:"price_per_day"`
	Expenses    []ExpenseDTO       `json:"expenses,omitempty"`
	VetFee      string             `json:"vet_fee,omitempty"`
	GroomingFee string             `json:"grooming_fee,omitempty"`
	Status      string             `json:"status"`
	CreatedAt   string             `json:"created_at"`
	Tags        []string           `json:"tags,omitempty"`
	Checklist   []ChecklistItemDTO `json:"checklist,omitempty"`
}

// CreateReservationRequest is the booking form payload.
type CreateReservationRequest struct {
	PetName     string             `json:"pet_name"`
	Breed       string             `json:"breed"`
	Size        string             `json:"size"`
	CheckIn     string             `json:"check_in"`
	CheckOut    string             `json:"check_out"`
	PricePerDay string             `json:"price_per_day,omitempty"`
	Expenses    []ExpenseDTO       `json:"expenses,omitempty"`
	VetFee      string             `json:"vet_fee,omitempty"`
	GroomingFee string             `json:"grooming_fee,omitempty"`
	Status      string             `json:"status,omitempty"`
	Override    bool               `json:"override,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Checklist   []ChecklistItemDTO `json:"checklist,omitempty"`
}

// UpdateReservationRequest is a full-record edit of an existing reservation.
type UpdateReservationRequest struct {
	PetName     string             `json:"pet_name"`
	Breed       string             `json:"breed"`
	Size        string             `json:"size"`
	CheckIn     string             `json:"check_in"`
	CheckOut    string             `json:"check_out"`
	PricePerDay string             `json:"price_per_day"`
	Expenses    []ExpenseDTO       `json:"expenses,omitempty"`
	VetFee      string             `json:"vet_fee,omitempty"`
	GroomingFee string             `json:"grooming_fee,omitempty"`
	Override    bool               `json:"override,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Checklist   []ChecklistItemDTO `json:"checklist,omitempty"`
}

// ChangeStatusRequest moves a reservation through its lifecycle.
type ChangeStatusRequest struct {
	Status   string `json:"status"`
	Override bool   `json:"override,omitempty"`
}

// AvailabilityDTO is the range-check result.
type AvailabilityDTO struct {
	Available    bool   `json:"available"`
	MinRemaining int    `json:"min_remaining"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
}

// WaitlistMatchDTO is the gap matcher's verdict on one queued stay.
type WaitlistMatchDTO struct {
	Reservation      ReservationDTO `json:"reservation"`
	Fits             bool           `json:"fits"`
	MinRemaining     int            `json:"min_remaining"`
	ConflictDays     []string       `json:"conflict_days,omitempty"`
	ConflictOverflow int            `json:"conflict_overflow,omitempty"`
}

// InvoiceLineDTO is one row of an itemized invoice.
type InvoiceLineDTO struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// InvoiceDTO is the itemized bill for a reservation.
type InvoiceDTO struct {
	ReservationID string           `json:"reservation_id"`
	Lines         []InvoiceLineDTO `json:"lines"`
	Total         string           `json:"total"`
}

// FacilityDTO is the facility configuration.
type FacilityDTO struct {
	MaxCapacity int               `json:"max_capacity"`
	Rates       map[string]string `json:"rates"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toReservationDTO(r booking.Reservation) ReservationDTO {
	dto := ReservationDTO{
		ID:          r.ID,
		PetName:     r.PetName,
		Breed:       r.Breed,
		Size:        string(r.Size),
		CheckIn:     r.CheckIn.String(),
		CheckOut:    r.CheckOut.String(),
		StayDays:    r.StayDays(),
		PricePerDay: r.PricePerDay.String(),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339Nano),
		Tags:        r.Tags,
	}
	for _, e := range r.Expenses {
		dto.Expenses = append(dto.Expenses, ExpenseDTO{Description: e.Description, Amount: e.Amount.String()})
	}
	if !r.VetFee.IsZero() {
		dto.VetFee = r.VetFee.String()
	}
	if !r.GroomingFee.IsZero() {
		dto.GroomingFee = r.GroomingFee.String()
	}
	for _, c := range r.Checklist {
		dto.Checklist = append(dto.Checklist, ChecklistItemDTO{Label: c.Label, Done: c.Done})
	}
	return dto
}

func toWaitlistMatchDTO(m booking.WaitlistMatch) WaitlistMatchDTO {
	dto := WaitlistMatchDTO{
		Reservation:      toReservationDTO(m.Reservation),
		Fits:             m.Fits,
		MinRemaining:     m.MinRemaining,
		ConflictOverflow: m.ConflictOverflow,
	}
	for _, d := range m.ConflictDays {
		dto.ConflictDays = append(dto.ConflictDays, d.String())
	}
	return dto
}

func toInvoiceDTO(inv booking.Invoice) InvoiceDTO {
	dto := InvoiceDTO{
		ReservationID: inv.ReservationID,
		Total:         inv.Total.String(),
	}
	for _, l := range inv.Lines {
		dto.Lines = append(dto.Lines, InvoiceLineDTO{Description: l.Description, Amount: l.Amount.String()})
	}
	return dto
}

func toFacilityDTO(f booking.Facility) FacilityDTO {
	dto := FacilityDTO{
		MaxCapacity: f.MaxCapacity,
		Rates:       make(map[string]string, len(f.Rates)),
	}
	for size, rate := range f.Rates {
		dto.Rates[string(size)] = rate.String()
	}
	return dto
}
