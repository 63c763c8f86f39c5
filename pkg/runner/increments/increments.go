// Package increments implements the increment subcommands.
package increments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/printers"
)

var errNoService = errors.New("no board service")

// List prints the increments in display order.
type List struct {
	Service *app.Service
	ShowID  bool
	// Format is "table", "json" or "yaml".
	Format string
	Out    io.Writer
}

func (l *List) Do(_ context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	items := l.Service.Increments()
	pp := printers.PrettyPrint{Out: l.Out, ShowID: l.ShowID}
	if l.Format != "" && l.Format != "table" {
		return printers.Encode(pp.Writer(), l.Format, items)
	}
	pp.NewLine()
	pp.Increments(items)
	return nil
}

// Add creates an increment. When Form is set it is offered the input
// whenever a required value is missing.
type Add struct {
	Service *app.Service
	Input   increment.Input
	Form    func(*increment.Input) error
	Out     io.Writer
}

func (a *Add) Do(_ context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	if a.Form != nil && incomplete(a.Input) {
		if err := a.Form(&a.Input); err != nil {
			return err
		}
	}
	inc, err := a.Service.AddIncrement(a.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out}
	pp.Notice("added increment %d %q %s..%s", inc.ID, inc.Name, inc.Start, inc.End)
	return nil
}

func incomplete(in increment.Input) bool {
	return strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Start) == "" || strings.TrimSpace(in.End) == ""
}

// Edit replaces name, dates and goals of an increment.
type Edit struct {
	Service *app.Service
	ID      int
	Input   increment.Input
	Out     io.Writer
}

func (e *Edit) Do(_ context.Context) error {
	if e.Service == nil {
		return errNoService
	}
	ok, err := e.Service.EditIncrement(e.ID, e.Input)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no increment with id %d", e.ID)
	}
	pp := printers.PrettyPrint{Out: e.Out}
	pp.Notice("updated increment %d", e.ID)
	return nil
}

// Remove deletes an increment once Confirm agrees. A nil Confirm agrees.
type Remove struct {
	Service *app.Service
	ID      int
	Confirm func(increment.Increment) bool
	Out     io.Writer
}

func (r *Remove) Do(_ context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	if _, ok := r.Service.Increment(r.ID); !ok {
		return fmt.Errorf("no increment with id %d", r.ID)
	}
	pp := printers.PrettyPrint{Out: r.Out}
	if !r.Service.DeleteIncrement(r.ID, r.Confirm) {
		pp.Notice("kept increment %d", r.ID)
		return nil
	}
	pp.Notice("removed increment %d", r.ID)
	return nil
}

// Move shifts an increment one place in display order.
type Move struct {
	Service *app.Service
	ID      int
	Up      bool
	Out     io.Writer
}

func (m *Move) Do(_ context.Context) error {
	if m.Service == nil {
		return errNoService
	}
	if _, ok := m.Service.Increment(m.ID); !ok {
		return fmt.Errorf("no increment with id %d", m.ID)
	}
	moved := false
	if m.Up {
		moved = m.Service.MoveIncrementUp(m.ID)
	} else {
		moved = m.Service.MoveIncrementDown(m.ID)
	}
	pp := printers.PrettyPrint{Out: m.Out}
	if !moved {
		edge := "last"
		if m.Up {
			edge = "first"
		}
		pp.Notice("increment %d is already %s", m.ID, edge)
		return nil
	}
	pp.Increments(m.Service.Increments())
	return nil
}
