package booking

import (
	"time"
)

// =============================================================================
// DATE - Calendar-day identifier (no time-of-day, no timezone semantics)
// =============================================================================

// Date is a day-granular point on the calendar. All scheduling in this
// system happens at day granularity: a reservation occupies whole days,
// never partial ones. Dates are normalized to UTC midnight on construction
// so they are safe to compare with == and to use as map keys.
type Date struct {
	t time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO date string ("2006-01-02").
// Malformed input returns ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// MarshalJSON renders the date as an ISO date string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts an ISO date string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetweenInclusive counts calendar days from a to b, counting both
// endpoints: DaysBetweenInclusive(d, d) == 1. The order of the arguments
// does not matter; only date-level precision is considered.
func DaysBetweenInclusive(a, b Date) int {
	if a.After(b) {
		a, b = b, a
	}
	return int(b.t.Sub(a.t).Hours()/24) + 1
}

// =============================================================================
// DATE RANGE - Inclusive [Start, End] span of calendar days
// =============================================================================

// DateRange is an inclusive span of calendar days. A range where
// End.Before(Start) is malformed; IsValid reports that and the capacity
// calculations treat malformed ranges as occupying nothing.
type DateRange struct {
	Start Date
	End   Date
}

func NewDateRange(start, end Date) DateRange {
	return DateRange{Start: start, End: end}
}

// IsValid reports whether the range is well-formed (Start ≤ End, both set).
func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.BeforeOrEqual(r.End)
}

// Contains reports whether day falls within [Start, End].
func (r DateRange) Contains(day Date) bool {
	return day.AfterOrEqual(r.Start) && day.BeforeOrEqual(r.End)
}

// Overlaps reports whether two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(r.End)
}

// DaysInclusive returns the number of days in the range, both ends counted.
// Zero for a malformed range.
func (r DateRange) DaysInclusive() int {
	if !r.IsValid() {
		return 0
	}
	return DaysBetweenInclusive(r.Start, r.End)
}

// ForEachDay visits every day in the range in ascending order. Returning
// false from fn stops the walk early. The walk is restartable: calling it
// again re-visits from Start. Every capacity calculation iterates ranges
// through this single helper.
func (r DateRange) ForEachDay(fn func(Date) bool) {
	if !r.IsValid() {
		return
	}
	for day := r.Start; day.BeforeOrEqual(r.End); day = day.AddDays(1) {
		if !fn(day) {
			return
		}
	}
}

// Days materializes the range as a slice, ascending.
func (r DateRange) Days() []Date {
	var days []Date
	r.ForEachDay(func(d Date) bool {
		days = append(days, d)
		return true
	})
	return days
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
