package calendar

import "time"

const day = 24 * time.Hour

// DaysBetweenInclusive counts the calendar days from s to e with both ends
// included, so a single-day range is 1. It returns 0 when either is absent.
// The result is not clamped: e before s yields zero or a negative count.
func DaysBetweenInclusive(s, e Date) int {
	if s.IsZero() || e.IsZero() {
		return 0
	}
	// Count on UTC midnights so DST transitions never shorten a day.
	a := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a)/day) + 1
}

// WeekOfMonthMonday returns the 1-based Monday-anchored week of d within its
// own month. Week numbers restart at 1 on the 1st of every month.
func WeekOfMonthMonday(d Date) int {
	firstDow := int(New(d.Year(), d.Month(), 1).Weekday())
	mondayOffset := (firstDow + 6) % 7
	return (d.Day()+mondayOffset-1)/7 + 1
}

// IsWeekend reports Saturday and Sunday.
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsSameDay compares calendar fields only.
func IsSameDay(a, b Date) bool {
	return a.Equal(b)
}

// DaysIn returns the number of days in the month containing d.
func DaysIn(d Date) int {
	return New(d.Year(), d.Month()+1, 0).Day()
}

// Min returns the earlier of a and b, ignoring absent values.
func Min(a, b Date) Date {
	switch {
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	case b.Before(a):
		return b
	default:
		return a
	}
}

// Max returns the later of a and b, ignoring absent values.
func Max(a, b Date) Date {
	switch {
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	case b.After(a):
		return b
	default:
		return a
	}
}
