// Package chart turns tasks and increments into the calendar grid and
// timeline drawn by the printers and the board.
package chart

import (
	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/task"
)

// Padding is the number of extra days drawn on each side of the tasks.
const Padding = 2

// Window returns the ascending, gap-free run of dates covering every task.
// The span runs from the earliest start to the latest end, stretched to at
// least one month past the earliest start, then padded on both sides. Tasks
// with absent dates do not contribute bounds; the window is empty when no
// task has a start.
func Window(tasks []task.Task) []calendar.Date {
	var minDate, maxDate calendar.Date
	for _, t := range tasks {
		minDate = calendar.Min(minDate, t.Start)
		maxDate = calendar.Max(maxDate, t.End)
	}
	if minDate.IsZero() {
		return nil
	}
	if floor := minDate.AddMonths(1); maxDate.IsZero() || maxDate.Before(floor) {
		maxDate = floor
	}
	first := minDate.AddDays(-Padding)
	last := maxDate.AddDays(Padding)

	dates := make([]calendar.Date, 0, calendar.DaysBetweenInclusive(first, last))
	for d := first; !d.After(last); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
