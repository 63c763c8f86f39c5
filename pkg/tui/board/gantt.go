package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planboard/pkg/chart"
	"tableflip.dev/planboard/pkg/task"
	"tableflip.dev/planboard/pkg/tui/theme"
)

const (
	cellWidth  = 2
	labelWidth = 14
	// weekendShade darkens filled weekend cells.
	weekendShade = 0.25
)

type column struct {
	title string
	width int
	field task.Field
}

var columns = []column{
	{title: "名前", width: 16, field: task.FieldName},
	{title: "開始", width: 11, field: task.FieldStart},
	{title: "終了", width: 11, field: task.FieldEnd},
	{title: "日数", width: 6},
	{title: "メモ", width: 20, field: task.FieldMemo},
	{title: "色", width: 10, field: task.FieldColor},
}

// fit pads or cuts s to exactly w cells, ANSI sequences included.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) > w {
		s = truncate.StringWithTail(s, uint(w), "…")
	}
	return padding.String(s, uint(w))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func (m *Model) renderTaskTable() string {
	th := m.theme.Table
	var b strings.Builder

	b.WriteString("  ")
	for _, c := range columns {
		b.WriteString(th.Header.Render(fit(c.title, c.width)))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(th.Muted.Render("  no tasks, press a to add one"))
		return b.String()
	}

	editing := task.Fields()[m.col]
	for i, t := range m.tasks {
		marker := "  "
		if i == m.row {
			marker = th.Cursor.Render("▸ ")
		}
		b.WriteString(marker)
		for _, c := range columns {
			var cell string
			switch c.field {
			case "":
				cell = fit(task.FormatDays(t.Start, t.End), c.width)
			case task.FieldColor:
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("██")
				cell = fit(swatch+" "+t.Color, c.width)
			case task.FieldMemo:
				cell = fit(firstLine(t.Memo), c.width)
			default:
				cell = fit(t.Value(c.field), c.width)
			}
			if i == m.row && c.field == editing && c.field != "" {
				if m.mode == modeEdit {
					cell = fit(m.input.View(), c.width)
				} else {
					cell = th.Cell.Render(cell)
				}
			}
			b.WriteString(cell)
			b.WriteString(" ")
		}
		if i < len(m.tasks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// visibleDays is how many day columns fit next to the task labels.
func (m *Model) visibleDays() int {
	if m.width <= 0 {
		return len(m.grid.Dates)
	}
	n := (m.width - labelWidth - 2) / cellWidth
	if n < 7 {
		n = 7
	}
	return n
}

func (m *Model) maxScroll() int {
	n := len(m.grid.Dates) - m.visibleDays()
	if n < 0 {
		return 0
	}
	return n
}

// setScroll moves the chart to day offset n and records it with the service.
func (m *Model) setScroll(n int) {
	n = clamp(n, 0, m.maxScroll())
	m.scroll = n
	m.svc.SetScrollPosition(n)
}

// overlap is the part of band that falls inside [lo, hi).
func overlap(b chart.Band, lo, hi int) int {
	start, end := b.Start, b.Start+b.Span
	if start < lo {
		start = lo
	}
	if end > hi {
		end = hi
	}
	if end < start {
		return 0
	}
	return end - start
}

func (m *Model) renderChart() string {
	g := m.grid
	ct := m.theme.Chart
	if g.Empty() {
		return m.theme.Table.Muted.Render("  nothing to chart")
	}

	lo := clamp(m.scroll, 0, m.maxScroll())
	hi := lo + m.visibleDays()
	if hi > len(g.Dates) {
		hi = len(g.Dates)
	}
	pad := strings.Repeat(" ", labelWidth)

	var lines []string

	band := func(bands []chart.Band, style lipgloss.Style) string {
		var b strings.Builder
		b.WriteString(pad)
		for _, bd := range bands {
			if n := overlap(bd, lo, hi); n > 0 {
				b.WriteString(style.Render(fit(bd.Label, n*cellWidth)))
			}
		}
		return b.String()
	}
	lines = append(lines, band(g.Months, ct.Month), band(g.Weeks, ct.Week))

	var days, weekdays strings.Builder
	days.WriteString(pad)
	weekdays.WriteString(pad)
	for _, d := range g.Days[lo:hi] {
		style := ct.Day
		switch {
		case d.Today:
			style = ct.Today
		case d.Weekend:
			style = ct.Weekend
		}
		days.WriteString(style.Render(fit(d.Label(), cellWidth)))
		weekdays.WriteString(style.Render(fit(d.Date.WeekdayShort(), cellWidth)))
	}
	lines = append(lines, days.String(), weekdays.String())

	filled := lipgloss.NewStyle().Background(lipgloss.Color(m.fill))
	filledWeekend := lipgloss.NewStyle().Background(lipgloss.Color(theme.Shade(m.fill, weekendShade)))
	for i, r := range g.Rows {
		var b strings.Builder
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Task.Color)).Render("█")
		label := fit(swatch+" "+r.Task.Name, labelWidth-1) + " "
		if i == m.row && m.view == viewGantt {
			label = m.theme.Table.Cursor.Render(fit("▸ "+r.Task.Name, labelWidth-1)) + " "
		}
		b.WriteString(label)
		for j := lo; j < hi; j++ {
			cell := strings.Repeat(" ", cellWidth)
			switch {
			case r.Fill[j] && g.Days[j].Weekend:
				cell = filledWeekend.Render(cell)
			case r.Fill[j]:
				cell = filled.Render(cell)
			case g.Days[j].Weekend:
				cell = ct.Weekend.Render(strings.Repeat("·", cellWidth))
			}
			b.WriteString(cell)
		}
		b.WriteString(" ")
		b.WriteString(r.Days)
		lines = append(lines, b.String())
	}

	if len(g.Dates) > hi-lo {
		lines = append(lines, m.theme.Footer.Status.Render(fmt.Sprintf("%s%s .. %s of %s .. %s",
			pad, g.Dates[lo].Display(), g.Dates[hi-1].Display(),
			g.Dates[0].Display(), g.Dates[len(g.Dates)-1].Display())))
	}
	return strings.Join(lines, "\n")
}
