// Package key prints the chart legend.
package key

import (
	"context"
	"io"

	"tableflip.dev/planboard/pkg/printers"
	"tableflip.dev/planboard/pkg/store"
)

// Key prints the symbols used by the chart.
type Key struct {
	// Fill is the #rrggbb color of scheduled cells.
	Fill string
	Out  io.Writer
}

func (k *Key) Do(_ context.Context) error {
	fill := k.Fill
	if fill == "" {
		fill = store.DefaultFillColor
	}
	pp := printers.PrettyPrint{Out: k.Out}
	pp.Legend(fill)
	pp.NewLine()
	return nil
}
