package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planboard/pkg/increment"
)

// Increments prints increments in display order. The ID column only appears
// with ShowID.
func (pp *PrettyPrint) Increments(items []increment.Increment) {
	pp.TitleWithCount("Increments", len(items), "increment")
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	b := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{b.Sprint("#"), b.Sprint("Name"), b.Sprint("Start"), b.Sprint("End"), b.Sprint("Days"), b.Sprint("Goals")}
	if pp.ShowID {
		header = append([]interface{}{b.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for i, inc := range items {
		goals := inc.Goals
		if goals == "" {
			goals = color.New(color.Faint).Sprint(increment.NoGoals)
		}
		row := []interface{}{
			i + 1,
			inc.Name,
			inc.Start.String(),
			inc.End.String(),
			fmt.Sprintf("%d日", inc.Days()),
			truncate.StringWithTail(firstLine(goals), 40, "…"),
		}
		if pp.ShowID {
			row = append([]interface{}{inc.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
