package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planboard/pkg/chart"
)

const (
	nameWidth = 14
	cellWidth = 2
)

// Cell glyphs, shared with the legend.
const (
	CellFilled  = "██"
	CellWeekend = "░░"
	CellEmpty   = "  "
	MarkToday   = "▼ "
)

func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return padding.String(truncate.String(s, uint(w)), uint(w))
}

// Chart prints the gantt grid: month, week, day and weekday headers followed
// by one row per task. Filled cells use fill, a #rrggbb color.
func (pp *PrettyPrint) Chart(g chart.Grid, fill string) {
	w := pp.out()
	if g.Empty() {
		_, _ = color.New(color.Faint, color.Italic).Fprint(w, " no tasks\n\n")
		return
	}

	o := pp.termOutput()
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	pad := strings.Repeat(" ", nameWidth)

	var b strings.Builder
	b.WriteString(pad)
	for _, m := range g.Months {
		b.WriteString(bold.Sprint(fit(m.Label, m.Span*cellWidth)))
	}
	_, _ = fmt.Fprintln(w, b.String())

	b.Reset()
	b.WriteString(pad)
	for _, wk := range g.Weeks {
		b.WriteString(faint.Sprint(fit(wk.Label, wk.Span*cellWidth)))
	}
	_, _ = fmt.Fprintln(w, b.String())

	// The marker line stops at today so no empty cells trail it.
	b.Reset()
	if last := todayIndex(g.Days); last >= 0 {
		b.WriteString(pad)
		for _, d := range g.Days[:last+1] {
			if d.Today {
				b.WriteString(MarkToday)
				continue
			}
			b.WriteString(CellEmpty)
		}
	}
	_, _ = fmt.Fprintln(w, b.String())

	b.Reset()
	b.WriteString(pad)
	for _, d := range g.Days {
		label := fmt.Sprintf("%2s", d.Label())
		switch {
		case d.Today:
			b.WriteString(color.New(color.Bold, color.Underline).Sprint(label))
		case d.Weekend:
			b.WriteString(faint.Sprint(label))
		default:
			b.WriteString(label)
		}
	}
	_, _ = fmt.Fprintln(w, b.String())

	b.Reset()
	b.WriteString(pad)
	for _, d := range g.Days {
		if d.Weekend {
			b.WriteString(faint.Sprint(d.Date.WeekdayShort()))
			continue
		}
		b.WriteString(d.Date.WeekdayShort())
	}
	_, _ = fmt.Fprintln(w, b.String())

	fillStyle := o.String(CellFilled).Foreground(o.Color(fill))
	for _, row := range g.Rows {
		b.Reset()
		b.WriteString(Swatch(o, row.Task.Color) + " ")
		b.WriteString(fit(row.Task.Name, nameWidth-4) + " ")
		for i, filled := range row.Fill {
			switch {
			case filled:
				b.WriteString(fillStyle.String())
			case g.Days[i].Weekend:
				b.WriteString(faint.Sprint(CellWeekend))
			default:
				b.WriteString(CellEmpty)
			}
		}
		b.WriteString(" ")
		b.WriteString(faint.Sprint(row.Days))
		_, _ = fmt.Fprintln(w, b.String())
	}
	pp.NewLine()
}

func todayIndex(days []chart.Day) int {
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Today {
			return i
		}
	}
	return -1
}
