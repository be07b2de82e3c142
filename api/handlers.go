/*
handlers.go - HTTP API handlers for the kennel boarding system

PURPOSE:
  Exposes the boarding engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Reservations:
    GET    /api/reservations               List reservations (?status= filter)
    POST   /api/reservations               Create reservation
    GET    /api/reservations/{id}          Get reservation
    PUT    /api/reservations/{id}          Update reservation
    DELETE /api/reservations/{id}          Delete reservation record
    POST   /api/reservations/{id}/status   Change lifecycle status
    GET    /api/reservations/{id}/invoice  Itemized bill

  Scheduling:
    GET    /api/availability               Range capacity check
    GET    /api/waitlist/matches           Promotion recommendations

  Settings:
    GET    /api/settings                   Facility capacity and rates
    PUT    /api/settings                   Update facility settings

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Reservation not found
  - 409: Capacity conflict on a gated write
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - kennel/service.go: The workflow behind these handlers
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/kennel-engine/booking"
	"github.com/warp/kennel-engine/kennel"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   kennel.Store
	Service *kennel.Service
}

// NewHandler creates a new handler with the given store.
func NewHandler(store kennel.Store) *Handler {
	return &Handler{
		Store:   store,
		Service: kennel.NewService(store),
	}
}

// =============================================================================
// RESERVATION HANDLERS
// =============================================================================

// ListReservations returns all reservations, optionally filtered by status.
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reservations", err)
		return
	}

	statusFilter := r.URL.Query().Get("status")
	dtos := make([]ReservationDTO, 0, len(reservations))
	for _, res := range reservations {
		if statusFilter != "" && string(res.Status) != statusFilter {
			continue
		}
		dtos = append(dtos, toReservationDTO(res))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetReservation returns a single reservation.
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if booking.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Reservation not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get reservation", err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationDTO(*res))
}

// CreateReservation creates a new reservation via the booking workflow.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in date", err)
		return
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_out date", err)
		return
	}

	price, err := parseMoney(req.PricePerDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid price_per_day", err)
		return
	}
	vetFee, err := parseMoney(req.VetFee)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vet_fee", err)
		return
	}
	groomingFee, err := parseMoney(req.GroomingFee)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid grooming_fee", err)
		return
	}
	expenses, err := parseExpenses(req.Expenses)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense amount", err)
		return
	}

	res, err := h.Service.CreateReservation(r.Context(), kennel.CreateInput{
		PetName:     req.PetName,
		Breed:       req.Breed,
		Size:        booking.SizeClass(req.Size),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		PricePerDay: price,
		Expenses:    expenses,
		VetFee:      vetFee,
		GroomingFee: groomingFee,
		Status:      booking.Status(req.Status),
		Override:    req.Override,
		Tags:        req.Tags,
		Checklist:   toChecklist(req.Checklist),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReservationDTO(*res))
}

// UpdateReservation replaces the editable fields of a reservation. Date
// changes on an occupying reservation are re-checked against capacity
// with the reservation itself excluded, so it never conflicts with its
// own current booking.
func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if booking.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Reservation not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get reservation", err)
		return
	}

	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in date", err)
		return
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_out date", err)
		return
	}
	if !(booking.DateRange{Start: checkIn, End: checkOut}).IsValid() {
		writeError(w, http.StatusBadRequest, "check_out before check_in", booking.ErrInvalidRange)
		return
	}
	if !booking.SizeClass(req.Size).IsValid() {
		writeError(w, http.StatusBadRequest, "Unknown size class", nil)
		return
	}

	datesChanged := !checkIn.Equal(res.CheckIn) || !checkOut.Equal(res.CheckOut)
	if datesChanged && res.Status.Occupies() && !req.Override {
		avail, err := h.Service.Availability(r.Context(), checkIn, checkOut, res.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if !avail.Available {
			writeError(w, http.StatusConflict, "No capacity for the new dates", nil)
			return
		}
	}

	price, err := parseMoney(req.PricePerDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid price_per_day", err)
		return
	}
	vetFee, err := parseMoney(req.VetFee)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vet_fee", err)
		return
	}
	groomingFee, err := parseMoney(req.GroomingFee)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid grooming_fee", err)
		return
	}
	expenses, err := parseExpenses(req.Expenses)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense amount", err)
		return
	}

	res.PetName = req.PetName
	res.Breed = req.Breed
	res.Size = booking.SizeClass(req.Size)
	res.CheckIn = checkIn
	res.CheckOut = checkOut
	res.PricePerDay = price
	res.Expenses = expenses
	res.VetFee = vetFee
	res.GroomingFee = groomingFee
	res.Tags = req.Tags
	res.Checklist = toChecklist(req.Checklist)

	if err := h.Store.Upsert(r.Context(), *res); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save reservation", err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationDTO(*res))
}

// DeleteReservation removes the stored record. The engine itself only
// ever cancels; deletion is a store operation for the admin surface.
func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.Delete(r.Context(), id); err != nil {
		if booking.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Reservation not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete reservation", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangeStatus moves a reservation through its lifecycle, advisory-gated.
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Service.ChangeStatus(r.Context(), id, booking.Status(req.Status), req.Override)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReservationDTO(*res))
}

// GetInvoice returns the itemized bill for a reservation.
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inv, err := h.Service.Invoice(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceDTO(*inv))
}

// =============================================================================
// SCHEDULING HANDLERS
// =============================================================================

// CheckAvailability runs the range check against the current snapshot.
// GET /api/availability?check_in=2024-01-01&check_out=2024-01-05&exclude=res-1
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	checkIn, err := booking.ParseDate(r.URL.Query().Get("check_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in date", err)
		return
	}
	checkOut, err := booking.ParseDate(r.URL.Query().Get("check_out"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_out date", err)
		return
	}
	excludeID := r.URL.Query().Get("exclude")

	avail, err := h.Service.Availability(r.Context(), checkIn, checkOut, excludeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityDTO{
		Available:    avail.Available,
		MinRemaining: avail.MinRemaining,
		CheckIn:      checkIn.String(),
		CheckOut:     checkOut.String(),
	})
}

// WaitlistMatches returns the gap matcher's promotion recommendations.
func (h *Handler) WaitlistMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.Service.WaitlistMatches(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]WaitlistMatchDTO, 0, len(matches))
	for _, m := range matches {
		dtos = append(dtos, toWaitlistMatchDTO(m))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the facility configuration.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	f, err := h.Store.Facility(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toFacilityDTO(f))
}

// UpdateSettings replaces the facility configuration.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req FacilityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.MaxCapacity <= 0 {
		writeError(w, http.StatusBadRequest, "max_capacity must be positive", booking.ErrInvalidCapacity)
		return
	}

	rates := make(booking.RateCard, len(req.Rates))
	for size, rate := range req.Rates {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid rate for "+size, err)
			return
		}
		rates[booking.SizeClass(size)] = d
	}

	f := booking.Facility{MaxCapacity: req.MaxCapacity, Rates: rates}
	if err := h.Store.SaveFacility(r.Context(), f); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toFacilityDTO(f))
}

// =============================================================================
// HELPERS
// =============================================================================

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseExpenses(in []ExpenseDTO) ([]booking.Expense, error) {
	var out []booking.Expense
	for _, e := range in {
		amount, err := parseMoney(e.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, booking.Expense{Description: e.Description, Amount: amount})
	}
	return out, nil
}

func toChecklist(in []ChecklistItemDTO) []booking.ChecklistItem {
	var out []booking.ChecklistItem
	for _, c := range in {
		out = append(out, booking.ChecklistItem{Label: c.Label, Done: c.Done})
	}
	return out
}

// writeDomainError maps engine errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var capErr *booking.CapacityError
	switch {
	case booking.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Reservation not found", nil)
	case errors.As(err, &capErr):
		writeError(w, http.StatusConflict, "No capacity", err)
	case booking.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
