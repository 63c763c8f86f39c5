// Package ui launches the interactive board.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/tui/board"
)

type UI struct {
	Service *app.Service
	// Fill is the #rrggbb color of scheduled chart cells.
	Fill string
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("no board service")
	}
	defer u.Service.FlushPendingEdits()
	return board.Run(ctx, u.Service, board.Options{Fill: u.Fill})
}
