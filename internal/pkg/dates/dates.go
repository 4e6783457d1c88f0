// Package dates holds year-independent calendar math for birthday queries.
package dates

import "time"

const layout = "2006-01-02"

// Parse parses a YYYY-MM-DD date string.
func Parse(s string) (time.Time, error) {
	return time.Parse(layout, s)
}

// Format renders a time as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(layout)
}

// NextOccurrence returns the next calendar occurrence of bday's month/day on
// or after today, ignoring bday's year. The candidate is first normalized
// onto today's year; if that date already passed it is advanced one year.
// today must be truncated to midnight. Feb 29 birthdays normalize to Mar 1
// in non-leap years via time.Date's overflow rules.
func NextOccurrence(bday, today time.Time) time.Time {
	next := time.Date(today.Year(), bday.Month(), bday.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, bday.Month(), bday.Day(), 0, 0, 0, 0, today.Location())
	}
	return next
}

// InWindow reports whether bday's month/day falls within
// [today, today+windowDays], both ends inclusive. The window wraps across
// year boundaries: Dec 29 with a 7-day window includes Jan 1-5.
func InWindow(bday, today time.Time, windowDays int) bool {
	end := today.AddDate(0, 0, windowDays)
	return !NextOccurrence(bday, today).After(end)
}
