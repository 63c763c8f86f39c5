package chart

import (
	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/task"
)

// Row is one task drawn across the window. Fill has one flag per window date.
type Row struct {
	Task task.Task `json:"task"`
	Fill []bool    `json:"fill"`
	Days string    `json:"days"`
}

// Filled returns the number of filled cells.
func (r Row) Filled() int {
	n := 0
	for _, f := range r.Fill {
		if f {
			n++
		}
	}
	return n
}

// Grid is everything needed to draw the gantt chart.
type Grid struct {
	Today  calendar.Date   `json:"today"`
	Dates  []calendar.Date `json:"dates"`
	Months []Band          `json:"months"`
	Weeks  []Band          `json:"weeks"`
	Days   []Day           `json:"days"`
	Rows   []Row           `json:"rows"`
}

// Empty reports whether there is nothing to draw.
func (g Grid) Empty() bool {
	return len(g.Dates) == 0
}

// IndexOf returns the column of d, or -1 when d is outside the window.
func (g Grid) IndexOf(d calendar.Date) int {
	if g.Empty() || d.IsZero() {
		return -1
	}
	i := calendar.DaysBetweenInclusive(g.Dates[0], d) - 1
	if i < 0 || i >= len(g.Dates) {
		return -1
	}
	return i
}

// Build lays the tasks out over their window. Rows keep the task order.
func Build(tasks []task.Task, today calendar.Date) Grid {
	window := Window(tasks)
	g := Grid{
		Today:  today,
		Dates:  window,
		Months: MonthBands(window),
		Weeks:  WeekBands(window),
		Days:   DayCells(window, today),
		Rows:   make([]Row, 0, len(tasks)),
	}
	for _, t := range tasks {
		row := Row{
			Task: t,
			Fill: make([]bool, len(window)),
			Days: task.FormatDays(t.Start, t.End),
		}
		for i, d := range window {
			row.Fill[i] = t.Covers(d)
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}
