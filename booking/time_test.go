package booking_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/kennel-engine/booking"
)

func TestDaysBetweenInclusive(t *testing.T) {
	d := booking.NewDate(2024, time.March, 10)

	tests := []struct {
		name string
		a, b booking.Date
		want int
	}{
		{"same day counts as one", d, d, 1},
		{"adjacent days count as two", d, d.AddDays(1), 2},
		{"five day stay", booking.NewDate(2024, time.January, 1), booking.NewDate(2024, time.January, 5), 5},
		{"order does not matter", d.AddDays(9), d, 10},
		{"across month boundary", booking.NewDate(2024, time.January, 31), booking.NewDate(2024, time.February, 1), 2},
		{"across leap day", booking.NewDate(2024, time.February, 28), booking.NewDate(2024, time.March, 1), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.DaysBetweenInclusive(tt.a, tt.b))
		})
	}
}

func TestDaysBetweenInclusive_IgnoresTimeOfDay(t *testing.T) {
	// Dates are calendar-day identifiers, not instants.
	morning := booking.DateOf(time.Date(2024, time.June, 1, 8, 30, 0, 0, time.UTC))
	evening := booking.DateOf(time.Date(2024, time.June, 1, 23, 59, 59, 0, time.UTC))

	assert.True(t, morning.Equal(evening))
	assert.Equal(t, 1, booking.DaysBetweenInclusive(morning, evening))
}

func TestParseDate(t *testing.T) {
	d, err := booking.ParseDate("2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, booking.NewDate(2024, time.January, 3), d)
	assert.Equal(t, "2024-01-03", d.String())

	_, err = booking.ParseDate("03/01/2024")
	assert.ErrorIs(t, err, booking.ErrInvalidDate)

	_, err = booking.ParseDate("")
	assert.ErrorIs(t, err, booking.ErrInvalidDate)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := booking.NewDate(2024, time.July, 4)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-04"`, string(raw))

	var back booking.Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &back))
}

func TestDateRange_ForEachDay(t *testing.T) {
	rng := booking.NewDateRange(
		booking.NewDate(2024, time.January, 1),
		booking.NewDate(2024, time.January, 4),
	)

	// Ascending, inclusive on both ends.
	var visited []string
	rng.ForEachDay(func(d booking.Date) bool {
		visited = append(visited, d.String())
		return true
	})
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}, visited)

	// Early exit stops the walk.
	count := 0
	rng.ForEachDay(func(d booking.Date) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)

	// Restartable: a second walk starts over.
	count = 0
	rng.ForEachDay(func(d booking.Date) bool {
		count++
		return true
	})
	assert.Equal(t, 4, count)
}

func TestDateRange_InvertedIsInvalid(t *testing.T) {
	rng := booking.NewDateRange(
		booking.NewDate(2024, time.January, 5),
		booking.NewDate(2024, time.January, 1),
	)

	assert.False(t, rng.IsValid())
	assert.Equal(t, 0, rng.DaysInclusive())
	assert.Empty(t, rng.Days())

	visited := false
	rng.ForEachDay(func(booking.Date) bool { visited = true; return true })
	assert.False(t, visited, "malformed range must not iterate")
}

func TestDateRange_Overlaps(t *testing.T) {
	jan := func(d int) booking.Date { return booking.NewDate(2024, time.January, d) }

	a := booking.NewDateRange(jan(1), jan(5))

	assert.True(t, a.Overlaps(booking.NewDateRange(jan(5), jan(9))), "shared endpoint overlaps")
	assert.True(t, a.Overlaps(booking.NewDateRange(jan(2), jan(3))), "contained range overlaps")
	assert.False(t, a.Overlaps(booking.NewDateRange(jan(6), jan(9))))
}
