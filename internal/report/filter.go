package report

import (
	"fmt"
	"time"
)

// DateRange limits a report to alerts raised within [From, To].
// A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Enabled reports whether either bound is set.
func (r DateRange) Enabled() bool {
	return !r.From.IsZero() || !r.To.IsZero()
}

// Contains reports whether ts falls inside the range, bounds inclusive.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.From.IsZero() && ts.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && ts.After(r.To) {
		return false
	}
	return true
}

// ParseRange parses from/to query values. A date-only to covers the whole day.
func ParseRange(from, to string) (DateRange, error) {
	f, err := ParseDate(from)
	if err != nil {
		return DateRange{}, err
	}
	t, err := ParseDateEndOfDay(to)
	if err != nil {
		return DateRange{}, err
	}
	if !f.IsZero() && !t.IsZero() && t.Before(f) {
		return DateRange{}, fmt.Errorf("invalid date range: %s is before %s", to, from)
	}
	return DateRange{From: f, To: t}, nil
}

// ParseDate parses a date string in YYYY-MM-DD or RFC3339 format.
// For YYYY-MM-DD, it returns start of day in UTC.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.UTC); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date format: %q (expected YYYY-MM-DD or RFC3339)", s)
}

// ParseDateEndOfDay is ParseDate, except that YYYY-MM-DD yields 23:59:59.999999999.
func ParseDateEndOfDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.UTC); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}

	return time.Time{}, fmt.Errorf("invalid date format: %q (expected YYYY-MM-DD or RFC3339)", s)
}
