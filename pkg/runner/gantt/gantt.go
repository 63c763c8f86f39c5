// Package gantt prints the task chart.
package gantt

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/printers"
	"tableflip.dev/planboard/pkg/store"
)

type Gantt struct {
	Service *app.Service
	// Fill is the #rrggbb color of scheduled cells.
	Fill string
	// Key appends the chart legend.
	Key bool
	Out io.Writer
}

func (g *Gantt) Do(_ context.Context) error {
	if g.Service == nil {
		return errors.New("no board service")
	}
	fill := g.Fill
	if fill == "" {
		fill = store.DefaultFillColor
	}
	pp := printers.PrettyPrint{Out: g.Out}
	pp.NewLine()
	pp.Chart(g.Service.Grid(), fill)
	if g.Key {
		pp.Legend(fill)
	}
	return nil
}
