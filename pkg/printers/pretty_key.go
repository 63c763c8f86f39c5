package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Legend explains the chart glyphs.
func (pp *PrettyPrint) Legend(fill string) {
	o := pp.termOutput()
	b := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Symbol"), b.Sprint("Meaning"))
	tbl.AddRow(o.String(CellFilled).Foreground(o.Color(fill)).String(), "task is scheduled on this day")
	tbl.AddRow(color.New(color.Faint).Sprint(CellWeekend), "weekend (土/日)")
	tbl.AddRow(MarkToday, "today")
	tbl.AddRow("2025/6", "month band")
	tbl.AddRow("週2", "week of the month, Monday based, restarting at 1 each month")
	tbl.AddRow("5日", "inclusive length of the task")

	_, _ = fmt.Fprintln(pp.out(), b.Add(color.Underline).Sprint("\nChart"))
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
