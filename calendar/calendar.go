// Package calendar provides the Mon-Fri trading calendar used when walking
// a contract's life day by day. FX spot quotes are assumed observable on
// weekdays only; no holiday calendars are applied.
package calendar

import "time"

// IsBusinessDay reports whether t falls on a weekday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the first weekday strictly after t.
func NextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// PrevBusinessDay returns the last weekday strictly before t.
func PrevBusinessDay(t time.Time) time.Time {
	prev := t.AddDate(0, 0, -1)
	for !IsBusinessDay(prev) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// CountBusinessDays counts weekdays in [start, end] inclusive.
// Returns 0 when end precedes start.
func CountBusinessDays(start, end time.Time) int {
	start = Midnight(start)
	end = Midnight(end)

	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			n++
		}
	}
	return n
}

// AddBusinessDays advances n weekdays from t (n may be negative).
func AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// Midnight truncates t to 00:00 UTC. Curve generation keys everything by
// calendar date, so times-of-day must never leak into comparisons.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
