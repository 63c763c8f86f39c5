// Package task owns the board's task collection and its date invariants.
package task

import (
	"fmt"

	"tableflip.dev/planboard/pkg/calendar"
)

// Field names a user-editable task attribute.
type Field string

const (
	FieldName  Field = "name"
	FieldStart Field = "start"
	FieldEnd   Field = "end"
	FieldColor Field = "color"
	FieldMemo  Field = "memo"
)

// Fields lists the editable fields in table order.
func Fields() []Field {
	return []Field{FieldName, FieldStart, FieldEnd, FieldMemo, FieldColor}
}

// ParseField resolves a field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("task: unknown field %q", s)
}

// IsDate reports whether the field holds a calendar date.
func (f Field) IsDate() bool {
	return f == FieldStart || f == FieldEnd
}

// DefaultName is given to tasks created with Add.
const DefaultName = "新しいタスク"

// Task is a named date range drawn on the chart.
type Task struct {
	ID    int           `json:"id" yaml:"id"`
	Name  string        `json:"name" yaml:"name"`
	Start calendar.Date `json:"start" yaml:"start"`
	End   calendar.Date `json:"end" yaml:"end"`
	Color string        `json:"color" yaml:"color"`
	Memo  string        `json:"memo" yaml:"memo"`
}

// Covers reports whether d falls inside the task's inclusive range.
func (t Task) Covers(d calendar.Date) bool {
	if t.Start.IsZero() || t.End.IsZero() {
		return false
	}
	return !d.Before(t.Start) && !d.After(t.End)
}

// Days returns the inclusive length of the task.
func (t Task) Days() int {
	return calendar.DaysBetweenInclusive(t.Start, t.End)
}

// Value returns the raw string form of a field.
func (t Task) Value(f Field) string {
	switch f {
	case FieldName:
		return t.Name
	case FieldStart:
		return t.Start.String()
	case FieldEnd:
		return t.End.String()
	case FieldColor:
		return t.Color
	case FieldMemo:
		return t.Memo
	}
	return ""
}

// Seed returns the sample tasks shown before anything has been saved.
func Seed() []Task {
	return []Task{
		{ID: 1, Name: "Task 1", Start: calendar.MustParse("2025-06-04"), End: calendar.MustParse("2025-06-08"), Color: "#7DB9DE", Memo: "これは最初のタスクです。"},
		{ID: 2, Name: "Task 2", Start: calendar.MustParse("2025-06-06"), End: calendar.MustParse("2025-06-12"), Color: "#F7A072"},
		{ID: 3, Name: "Task 3", Start: calendar.MustParse("2025-06-09"), End: calendar.MustParse("2025-06-15"), Color: "#A3DE83", Memo: "詳細な説明"},
	}
}
