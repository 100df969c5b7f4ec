package dates

import "time"

// DayOnly normalizes a timestamp to midnight UTC, keeping only the
// calendar date. All bucket and comparison logic works on day-only values.
func DayOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	return DayOnly(a).Equal(DayOnly(b))
}

// Before reports whether a falls on an earlier calendar day than b.
func Before(a, b time.Time) bool {
	return DayOnly(a).Before(DayOnly(b))
}

// After reports whether a falls on a later calendar day than b.
func After(a, b time.Time) bool {
	return DayOnly(a).After(DayOnly(b))
}

// WithinRange reports whether t falls inside [start, end] inclusive,
// comparing calendar days only.
func WithinRange(t, start, end time.Time) bool {
	d := DayOnly(t)
	return !d.Before(DayOnly(start)) && !d.After(DayOnly(end))
}

// DaysInRange returns the number of calendar days in [start, end]
// inclusive, or 0 when end precedes start.
func DaysInRange(start, end time.Time) int {
	s, e := DayOnly(start), DayOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// MonthKey renders the YYYY-MM bucket key for a date.
func MonthKey(t time.Time) string {
	return DayOnly(t).Format("2006-01")
}

// DaysOverdue returns how many whole days t is past the reference date, or
// 0 when t is on or after ref.
func DaysOverdue(due, ref time.Time) int {
	d, r := DayOnly(due), DayOnly(ref)
	if !d.Before(r) {
		return 0
	}
	return int(r.Sub(d).Hours() / 24)
}
