package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/kennel-engine/booking"
	"github.com/warp/kennel-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_ReservationRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := booking.Reservation{
		ID:          "res-1",
		PetName:     "Rex",
		Breed:       "Beagle",
		Size:        booking.SizeMedium,
		CheckIn:     booking.NewDate(2024, time.January, 1),
		CheckOut:    booking.NewDate(2024, time.January, 5),
		PricePerDay: decimal.RequireFromString("3500"),
		Expenses: []booking.Expense{
			{Description: "medication", Amount: decimal.RequireFromString("200.50")},
		},
		VetFee:      decimal.RequireFromString("300"),
		GroomingFee: decimal.Zero,
		Status:      booking.StatusConfirmed,
		CreatedAt:   time.Date(2023, time.December, 1, 10, 30, 0, 0, time.UTC),
		Tags:        []string{"repeat-customer"},
		Checklist:   []booking.ChecklistItem{{Label: "vaccination card", Done: true}},
	}
	require.NoError(t, store.Upsert(ctx, r))

	got, err := store.Get(ctx, "res-1")
	require.NoError(t, err)

	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, r.PetName, got.PetName)
	assert.Equal(t, r.Size, got.Size)
	assert.True(t, r.CheckIn.Equal(got.CheckIn))
	assert.True(t, r.CheckOut.Equal(got.CheckOut))
	assert.True(t, r.PricePerDay.Equal(got.PricePerDay))
	assert.True(t, r.VetFee.Equal(got.VetFee))
	require.Len(t, got.Expenses, 1)
	assert.True(t, got.Expenses[0].Amount.Equal(decimal.RequireFromString("200.50")))
	assert.Equal(t, r.Status, got.Status)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, r.Tags, got.Tags)
	assert.Equal(t, r.Checklist, got.Checklist)
}

func TestStore_UpsertReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := booking.Reservation{
		ID:          "res-1",
		PetName:     "Rex",
		Size:        booking.SizeSmall,
		CheckIn:     booking.NewDate(2024, time.January, 1),
		CheckOut:    booking.NewDate(2024, time.January, 2),
		PricePerDay: decimal.NewFromInt(2500),
		Status:      booking.StatusRequest,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.Upsert(ctx, r))

	r.Status = booking.StatusConfirmed
	r.CheckOut = booking.NewDate(2024, time.January, 4)
	require.NoError(t, store.Upsert(ctx, r))

	got, err := store.Get(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, got.Status)
	assert.Equal(t, 4, got.StayDays())

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate")
}

func TestStore_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, booking.ErrNotFound)

	err = store.Delete(ctx, "missing")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, booking.Reservation{
		ID:          "res-1",
		PetName:     "Rex",
		Size:        booking.SizeSmall,
		CheckIn:     booking.NewDate(2024, time.January, 1),
		CheckOut:    booking.NewDate(2024, time.January, 2),
		PricePerDay: decimal.NewFromInt(2500),
		Status:      booking.StatusRequest,
		CreatedAt:   time.Now().UTC(),
	}))

	require.NoError(t, store.Delete(ctx, "res-1"))
	_, err := store.Get(ctx, "res-1")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestStore_FacilitySettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Seeded on migration.
	f, err := store.Facility(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, f.MaxCapacity)
	assert.True(t, f.Rates.RateFor(booking.SizeSmall).Equal(decimal.NewFromInt(2500)))

	f.MaxCapacity = 4
	f.Rates[booking.SizeLarge] = decimal.RequireFromString("5000")
	require.NoError(t, store.SaveFacility(ctx, f))

	got, err := store.Facility(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got.MaxCapacity)
	assert.True(t, got.Rates.RateFor(booking.SizeLarge).Equal(decimal.RequireFromString("5000")))
}
