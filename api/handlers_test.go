/*
handlers_test.go - HTTP tests for the reservation API

Runs the full router against an in-memory SQLite store:
- Reservation create/read and validation errors
- Availability queries, including self-exclusion
- Capacity-gated status changes with operator override
- Waitlist match reporting
- Invoices
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/kennel-engine/booking"
	"github.com/warp/kennel-engine/store/sqlite"
)

func newTestServer(t *testing.T, maxCapacity int) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := booking.DefaultFacility(maxCapacity)
	require.NoError(t, store.SaveFacility(context.Background(), f))

	srv := httptest.NewServer(NewRouter(NewHandler(store)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func createStay(t *testing.T, srv *httptest.Server, req CreateReservationRequest) ReservationDTO {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/reservations", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

	var dto ReservationDTO
	require.NoError(t, json.Unmarshal(body, &dto))
	return dto
}

func TestCreateReservation_API(t *testing.T) {
	srv := newTestServer(t, 5)

	dto := createStay(t, srv, CreateReservationRequest{
		PetName:  "Rex",
		Breed:    "Beagle",
		Size:     "medium",
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-03",
	})

	assert.Equal(t, "request", dto.Status)
	assert.Equal(t, 3, dto.StayDays)
	assert.Equal(t, "3500", dto.PricePerDay, "medium rate from the default card")
	assert.NotEmpty(t, dto.ID)
}

func TestCreateReservation_API_BadInput(t *testing.T) {
	srv := newTestServer(t, 5)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/reservations", CreateReservationRequest{
		PetName:  "Rex",
		Size:     "medium",
		CheckIn:  "01/03/2024",
		CheckOut: "2024-01-05",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/reservations", CreateReservationRequest{
		PetName:  "Rex",
		Size:     "medium",
		CheckIn:  "2024-01-05",
		CheckOut: "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAvailability_API(t *testing.T) {
	srv := newTestServer(t, 2)

	dto := createStay(t, srv, CreateReservationRequest{
		PetName:  "Rex",
		Size:     "small",
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-05",
		Status:   "confirmed",
	})
	require.Equal(t, "confirmed", dto.Status)

	resp, body := doJSON(t, http.MethodGet,
		srv.URL+"/api/availability?check_in=2024-01-02&check_out=2024-01-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var avail AvailabilityDTO
	require.NoError(t, json.Unmarshal(body, &avail))
	assert.True(t, avail.Available)
	assert.Equal(t, 1, avail.MinRemaining)

	// Excluding the confirmed stay frees its slot.
	resp, body = doJSON(t, http.MethodGet,
		srv.URL+"/api/availability?check_in=2024-01-02&check_out=2024-01-03&exclude="+dto.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &avail))
	assert.Equal(t, 2, avail.MinRemaining)
}

func TestStatusChange_API_CapacityGateAndOverride(t *testing.T) {
	srv := newTestServer(t, 1)

	blocker := createStay(t, srv, CreateReservationRequest{
		PetName:  "Bella",
		Size:     "small",
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-05",
		Status:   "confirmed",
	})
	require.Equal(t, "confirmed", blocker.Status)

	queued := createStay(t, srv, CreateReservationRequest{
		PetName:  "Milo",
		Size:     "small",
		CheckIn:  "2024-01-03",
		CheckOut: "2024-01-04",
		Status:   "waitlist",
	})

	// Promotion without override hits the capacity gate.
	url := fmt.Sprintf("%s/api/reservations/%s/status", srv.URL, queued.ID)
	resp, _ := doJSON(t, http.MethodPost, url, ChangeStatusRequest{Status: "confirmed"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The operator can overbook deliberately.
	resp, body := doJSON(t, http.MethodPost, url, ChangeStatusRequest{Status: "confirmed", Override: true})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var dto ReservationDTO
	require.NoError(t, json.Unmarshal(body, &dto))
	assert.Equal(t, "confirmed", dto.Status)
}

func TestWaitlistMatches_API(t *testing.T) {
	srv := newTestServer(t, 1)

	blocker := createStay(t, srv, CreateReservationRequest{
		PetName:  "Bella",
		Size:     "small",
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-05",
		Status:   "confirmed",
	})

	queued := createStay(t, srv, CreateReservationRequest{
		PetName:  "Milo",
		Size:     "small",
		CheckIn:  "2024-01-03",
		CheckOut: "2024-01-04",
		Status:   "waitlist",
	})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/waitlist/matches", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var matches []WaitlistMatchDTO
	require.NoError(t, json.Unmarshal(body, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, queued.ID, matches[0].Reservation.ID)
	assert.False(t, matches[0].Fits)
	assert.Equal(t, []string{"2024-01-03", "2024-01-04"}, matches[0].ConflictDays)

	// Cancel the blocker; the matcher now reports a fit.
	cancelURL := fmt.Sprintf("%s/api/reservations/%s/status", srv.URL, blocker.ID)
	resp, _ = doJSON(t, http.MethodPost, cancelURL, ChangeStatusRequest{Status: "cancelled"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/waitlist/matches", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &matches))
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Fits)
	assert.Equal(t, 1, matches[0].MinRemaining)
}

func TestInvoice_API(t *testing.T) {
	srv := newTestServer(t, 5)

	dto := createStay(t, srv, CreateReservationRequest{
		PetName:     "Rex",
		Size:        "medium",
		CheckIn:     "2024-01-01",
		CheckOut:    "2024-01-03",
		PricePerDay: "1000",
		Expenses:    []ExpenseDTO{{Description: "medication", Amount: "200"}},
	})

	resp, body := doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/reservations/%s/invoice", srv.URL, dto.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var inv InvoiceDTO
	require.NoError(t, json.Unmarshal(body, &inv))
	assert.Equal(t, "3400", inv.Total)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "boarding", inv.Lines[0].Description)
	assert.Equal(t, "3000", inv.Lines[0].Amount)
}

func TestUpdateReservation_API_DateEditSelfExcludes(t *testing.T) {
	srv := newTestServer(t, 1)

	dto := createStay(t, srv, CreateReservationRequest{
		PetName:  "Rex",
		Size:     "small",
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-03",
		Status:   "confirmed",
	})
	require.Equal(t, "confirmed", dto.Status)

	// Moving its own dates must not conflict with itself at capacity 1.
	url := srv.URL + "/api/reservations/" + dto.ID
	resp, body := doJSON(t, http.MethodPut, url, UpdateReservationRequest{
		PetName:     "Rex",
		Size:        "small",
		CheckIn:     "2024-01-02",
		CheckOut:    "2024-01-06",
		PricePerDay: dto.PricePerDay,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var updated ReservationDTO
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "2024-01-06", updated.CheckOut)
	assert.Equal(t, 5, updated.StayDays)
}

func TestSettings_API(t *testing.T) {
	srv := newTestServer(t, 7)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var f FacilityDTO
	require.NoError(t, json.Unmarshal(body, &f))
	assert.Equal(t, 7, f.MaxCapacity)

	f.MaxCapacity = 3
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/settings", f)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &f))
	assert.Equal(t, 3, f.MaxCapacity)

	// Non-positive capacity is rejected.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/settings", FacilityDTO{MaxCapacity: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
