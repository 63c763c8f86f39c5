// Package tasks implements the task subcommands.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/printers"
	"tableflip.dev/planboard/pkg/task"
)

var errNoService = errors.New("no board service")

// List prints every task.
type List struct {
	Service *app.Service
	// Format is "table", "json" or "yaml".
	Format string
	Out    io.Writer
}

func (l *List) Do(_ context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	tasks := l.Service.Tasks()
	pp := printers.PrettyPrint{Out: l.Out}
	if l.Format != "" && l.Format != "table" {
		return printers.Encode(pp.Writer(), l.Format, tasks)
	}
	pp.NewLine()
	pp.Tasks(tasks)
	return nil
}

// Add appends a task with default values, then applies Values in table order.
type Add struct {
	Service *app.Service
	Values  map[task.Field]string
	Out     io.Writer
}

func (a *Add) Do(_ context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	t := a.Service.AddTask()
	for _, f := range task.Fields() {
		if v, ok := a.Values[f]; ok {
			a.Service.UpdateTask(t.ID, f, v)
		}
	}
	t, _ = a.Service.Task(t.ID)
	pp := printers.PrettyPrint{Out: a.Out}
	pp.Notice("added task %d %q %s..%s (%s)", t.ID, t.Name, t.Start, t.End, a.Service.DayCount(t.ID))
	return nil
}

// Set changes one field of a task. Dates are clamped the same way the board
// clamps them.
type Set struct {
	Service *app.Service
	ID      int
	Field   task.Field
	Value   string
	Out     io.Writer
}

func (s *Set) Do(_ context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	if !s.Service.UpdateTask(s.ID, s.Field, s.Value) {
		return fmt.Errorf("no task with id %d", s.ID)
	}
	t, _ := s.Service.Task(s.ID)
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Notice("task %d %s = %q", t.ID, s.Field, t.Value(s.Field))
	return nil
}

// Remove deletes a task.
type Remove struct {
	Service *app.Service
	ID      int
	Out     io.Writer
}

func (r *Remove) Do(_ context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	if !r.Service.DeleteTask(r.ID) {
		return fmt.Errorf("no task with id %d", r.ID)
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.Notice("removed task %d", r.ID)
	return nil
}
