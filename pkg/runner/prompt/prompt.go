// Package prompt asks the user for confirmation and increment details.
package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/increment"
)

// Confirm asks a yes/no question. Aborting with ctrl+c answers no.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Confirmer adapts Confirm to the callback shape the board service expects.
// Prompt failures count as no.
func Confirmer(title, description string) func() bool {
	return func() bool {
		ok, err := Confirm(title, description)
		return err == nil && ok
	}
}

// IncrementForm fills in the blanks of in interactively. Values already set
// are offered as defaults.
func IncrementForm(in *increment.Input) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(required).
				Value(&in.Name),
			huh.NewInput().
				Title("Start").
				Description("YYYY-MM-DD").
				Validate(date).
				Value(&in.Start),
			huh.NewInput().
				Title("End").
				Description("YYYY-MM-DD").
				Validate(date).
				Value(&in.End),
			huh.NewText().
				Title("Goals").
				Description("Goals and deliverables, markdown is fine").
				Value(&in.Goals),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

var (
	// ErrAborted is returned when the user abandons a form.
	ErrAborted = errors.New("aborted")

	errRequired = errors.New("required")
)

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	return nil
}

func date(s string) error {
	if err := required(s); err != nil {
		return err
	}
	if _, err := calendar.Parse(strings.TrimSpace(s)); err != nil {
		return increment.ErrInvalidDate
	}
	return nil
}
