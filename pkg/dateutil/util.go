package dateutil

import "time"

// BeginningOfDay truncates t to midnight in its own location.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// NextMidnight returns the first midnight strictly after t.
func NextMidnight(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}
