// Package timeline prints the increments as numbered phases.
package timeline

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/printers"
)

type Timeline struct {
	Service  *app.Service
	ShowID   bool
	Markdown bool
	Width    int
	// Format is "table", "json" or "yaml"; table prints the phases.
	Format string
	Out    io.Writer
}

func (t *Timeline) Do(_ context.Context) error {
	if t.Service == nil {
		return errors.New("no board service")
	}
	phases := t.Service.Timeline()
	pp := printers.PrettyPrint{Out: t.Out, ShowID: t.ShowID}
	if t.Format != "" && t.Format != "table" {
		return printers.Encode(pp.Writer(), t.Format, phases)
	}
	pp.NewLine()
	return pp.Timeline(phases, printers.TimelineOptions{Markdown: t.Markdown, Width: t.Width})
}
