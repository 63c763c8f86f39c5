// Package increment owns the ordered list of project increments (phases).
package increment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/planboard/pkg/calendar"
)

// NoGoals is displayed for increments without goals.
const NoGoals = "目標・成果物が設定されていません"

// Increment is a named project phase.
type Increment struct {
	ID          int           `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Start       calendar.Date `json:"start" yaml:"start"`
	End         calendar.Date `json:"end" yaml:"end"`
	Goals       string        `json:"goals" yaml:"goals"`
	CustomOrder *int          `json:"customOrder,omitempty" yaml:"customOrder,omitempty"`
	CreatedAt   string        `json:"createdAt" yaml:"createdAt"`
}

// Days returns the inclusive length of the increment.
func (i Increment) Days() int {
	return calendar.DaysBetweenInclusive(i.Start, i.End)
}

func (i Increment) order() int {
	if i.CustomOrder == nil {
		return 0
	}
	return *i.CustomOrder
}

// Input carries the raw form values for add and edit.
type Input struct {
	Name  string
	Start string
	End   string
	Goals string
}

var (
	// ErrMissingField is returned when name, start or end is empty.
	ErrMissingField = errors.New("name, start and end are required")
	// ErrInvertedRange is returned when end is before start.
	ErrInvertedRange = errors.New("end must not be before start")
	// ErrInvalidDate is returned when a date does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// ValidationError reports why an add or edit was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("increment: %v", e.Err)
	}
	return fmt.Sprintf("increment: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type validated struct {
	name  string
	start calendar.Date
	end   calendar.Date
	goals string
}

func (in Input) validate() (validated, error) {
	v := validated{
		name:  strings.TrimSpace(in.Name),
		goals: strings.TrimSpace(in.Goals),
	}
	switch {
	case v.name == "":
		return v, &ValidationError{Field: "name", Err: ErrMissingField}
	case strings.TrimSpace(in.Start) == "":
		return v, &ValidationError{Field: "start", Err: ErrMissingField}
	case strings.TrimSpace(in.End) == "":
		return v, &ValidationError{Field: "end", Err: ErrMissingField}
	}
	var err error
	if v.start, err = calendar.Parse(in.Start); err != nil {
		return v, &ValidationError{Field: "start", Err: ErrInvalidDate}
	}
	if v.end, err = calendar.Parse(in.End); err != nil {
		return v, &ValidationError{Field: "end", Err: ErrInvalidDate}
	}
	if v.end.Before(v.start) {
		return v, &ValidationError{Field: "end", Err: ErrInvertedRange}
	}
	return v, nil
}

func nowISO(now time.Time) string {
	return now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
