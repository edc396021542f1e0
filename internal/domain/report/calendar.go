// internal/domain/report/calendar.go
package report

import "time"

// Calendar helpers used by the plan builder. All functions are pure
// functions of the reference date passed in; the caller captures "now"
// once per run so every computation sees the same day.

// DateOf normalizes a timestamp to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstOfPreviousMonth returns the first day of the month before the
// month containing 'today', rolling the year back for January.
func FirstOfPreviousMonth(today time.Time) time.Time {
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, -1, 0)
}

// QuarterOf returns the calendar quarter (1-4) containing the given date.
// Quarters are fixed: Q1=Jan-Mar, Q2=Apr-Jun, Q3=Jul-Sep, Q4=Oct-Dec.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// quarterStart returns the first day of the quarter containing t.
func quarterStart(t time.Time) time.Time {
	startMonth := time.Month((QuarterOf(t)-1)*3 + 1)
	return time.Date(t.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// PreviousQuarterRange returns the first and last calendar day of the
// quarter immediately before the quarter containing 'today', rolling the
// year back when today is in Q1.
func PreviousQuarterRange(today time.Time) (time.Time, time.Time) {
	start := quarterStart(today).AddDate(0, -3, 0)
	end := start.AddDate(0, 3, -1)
	return start, end
}

// LastDayOfMonth returns the last calendar day of the month containing t.
func LastDayOfMonth(t time.Time) time.Time {
	firstOfNextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNextMonth.AddDate(0, 0, -1)
}

// IsQuarterEndDay reports whether 'today' is the last calendar day of
// March, June, September or December.
func IsQuarterEndDay(today time.Time) bool {
	switch today.Month() {
	case time.March, time.June, time.September, time.December:
		return today.Day() == LastDayOfMonth(today).Day()
	default:
		return false
	}
}
