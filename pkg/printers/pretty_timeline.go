package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/planboard/pkg/chart"
)

// TimelineOptions control how increment goals are printed.
type TimelineOptions struct {
	// Markdown renders goals through glamour.
	Markdown bool
	// Width wraps goals; zero means 80 columns.
	Width int
}

// Timeline prints the phases in order with their period, length and goals.
func (pp *PrettyPrint) Timeline(phases []chart.Phase, opts TimelineOptions) error {
	w := pp.out()
	pp.TitleWithCount("Timeline", len(phases), "phase")
	if len(phases) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(w, " none\n\n")
		return nil
	}

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	var renderer *glamour.TermRenderer
	if opts.Markdown {
		style := "notty"
		if pp.termOutput().Profile != termenv.Ascii {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width-4),
		)
		if err != nil {
			return fmt.Errorf("goals renderer: %w", err)
		}
		renderer = r
	}

	label := color.New(color.Bold, color.FgHiYellow)
	name := color.New(color.Bold)
	faint := color.New(color.Faint)
	for _, p := range phases {
		_, _ = label.Fprintf(w, "%s", p.Label())
		if pp.ShowID {
			_, _ = faint.Fprintf(w, " #%d", p.ID)
		}
		_, _ = fmt.Fprint(w, "  ")
		_, _ = name.Fprintln(w, p.Name)
		_, _ = faint.Fprintf(w, "    %s (%d日)\n", p.Period(), p.Days)

		goals := p.GoalsOrPlaceholder()
		switch {
		case p.Goals == "":
			_, _ = faint.Fprintln(w, indent.String(goals, 4))
		case renderer != nil:
			out, err := renderer.Render(goals)
			if err != nil {
				return fmt.Errorf("render goals of %s: %w", p.Label(), err)
			}
			_, _ = fmt.Fprintln(w, strings.TrimRight(out, "\n"))
		default:
			_, _ = fmt.Fprintln(w, indent.String(wordwrap.String(goals, width-4), 4))
		}
		pp.NewLine()
	}
	return nil
}
