// Package reset clears the whole board.
package reset

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/printers"
)

type Reset struct {
	Service *app.Service
	// Confirm is asked before anything is cleared. Nil clears without asking.
	Confirm func() bool
	Out     io.Writer
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("no board service")
	}
	pp := printers.PrettyPrint{Out: r.Out}
	if !r.Service.Reset(ctx, r.Confirm) {
		pp.Notice("nothing was cleared")
		return nil
	}
	pp.Notice("board cleared")
	return nil
}
