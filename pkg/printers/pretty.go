// Package printers renders the board for the command line.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"tableflip.dev/planboard/pkg/task"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("#999  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Writer is the destination of everything pp prints.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

// termOutput picks a color profile for true-color swatches. Anything that is
// not a terminal gets plain text.
func (pp *PrettyPrint) termOutput() *termenv.Output {
	profile := termenv.Ascii
	if f, ok := pp.out().(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		profile = termenv.EnvColorProfile()
	}
	return termenv.NewOutput(pp.out(), termenv.WithProfile(profile))
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

// Notice prints a faint one-line message, used for no-op results.
func (pp *PrettyPrint) Notice(format string, args ...interface{}) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), format+"\n", args...)
}

// Tasks prints the task list as a table with a color swatch per task.
func (pp *PrettyPrint) Tasks(tasks []task.Task) {
	pp.TitleWithCount("Tasks", len(tasks), "task")
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	o := pp.termOutput()
	b := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(b.Sprint("ID"), b.Sprint("Name"), b.Sprint("Start"), b.Sprint("End"), b.Sprint("Days"), b.Sprint("Color"), b.Sprint("Memo"))
	for _, t := range tasks {
		tbl.AddRow(
			t.ID,
			t.Name,
			t.Start.String(),
			t.End.String(),
			task.FormatDays(t.Start, t.End),
			Swatch(o, t.Color)+" "+t.Color,
			truncate.StringWithTail(firstLine(t.Memo), 30, "…"),
		)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Swatch is a two-cell block in the given #rrggbb color.
func Swatch(o *termenv.Output, hex string) string {
	return o.String("██").Foreground(o.Color(hex)).String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
