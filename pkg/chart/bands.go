package chart

import (
	"fmt"
	"time"

	"tableflip.dev/planboard/pkg/calendar"
)

// Band is a header segment covering a contiguous run of window dates.
type Band struct {
	Label string `json:"label"`
	// Start is the index of the first covered date in the window.
	Start int `json:"start"`
	Span  int `json:"span"`
}

// Day is a single column of the grid.
type Day struct {
	Date       calendar.Date `json:"date"`
	Weekend    bool          `json:"weekend,omitempty"`
	WeekStart  bool          `json:"weekStart,omitempty"`
	MonthStart bool          `json:"monthStart,omitempty"`
	Today      bool          `json:"today,omitempty"`
}

// Label is the day of month.
func (d Day) Label() string {
	return fmt.Sprintf("%d", d.Date.Day())
}

type monthKey struct {
	year  int
	month int
}

type weekKey struct {
	monthKey
	week int
}

// MonthBands groups the window into maximal runs sharing year and month.
func MonthBands(window []calendar.Date) []Band {
	return partition(window, func(d calendar.Date) (interface{}, string) {
		k := monthKey{d.Year(), int(d.Month())}
		return k, fmt.Sprintf("%d/%d", k.year, k.month)
	})
}

// WeekBands groups the window into maximal runs sharing month and Monday
// week-of-month. A run never crosses a month boundary.
func WeekBands(window []calendar.Date) []Band {
	return partition(window, func(d calendar.Date) (interface{}, string) {
		k := weekKey{monthKey{d.Year(), int(d.Month())}, calendar.WeekOfMonthMonday(d)}
		return k, fmt.Sprintf("週%d", k.week)
	})
}

func partition(window []calendar.Date, key func(calendar.Date) (interface{}, string)) []Band {
	var bands []Band
	var current interface{}
	for i, d := range window {
		k, label := key(d)
		if len(bands) > 0 && k == current {
			bands[len(bands)-1].Span++
			continue
		}
		current = k
		bands = append(bands, Band{Label: label, Start: i, Span: 1})
	}
	return bands
}

// DayCells tags every window date for rendering.
func DayCells(window []calendar.Date, today calendar.Date) []Day {
	days := make([]Day, 0, len(window))
	for _, d := range window {
		days = append(days, Day{
			Date:       d,
			Weekend:    calendar.IsWeekend(d),
			WeekStart:  d.Weekday() == time.Monday,
			MonthStart: d.Day() == 1,
			Today:      calendar.IsSameDay(d, today),
		})
	}
	return days
}
