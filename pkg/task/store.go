package task

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/planboard/pkg/calendar"
)

// NoDays is shown in place of a day count when the range is empty or invalid.
const NoDays = "—"

// Store owns the task collection. No task ever starts before today and no
// task ends before it starts.
type Store struct {
	today calendar.Date
	tasks []*Task
	color func() string
}

// Option configures a Store.
type Option func(*Store)

// WithColorSource overrides the random color generator used by Add.
func WithColorSource(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.color = fn
		}
	}
}

// NewStore builds a store fixed to today holding copies of tasks.
func NewStore(today calendar.Date, tasks []Task, opts ...Option) *Store {
	s := &Store{
		today: today,
		color: RandomColor,
	}
	for _, o := range opts {
		o(s)
	}
	s.load(tasks)
	return s
}

func (s *Store) load(tasks []Task) {
	s.tasks = make([]*Task, 0, len(tasks))
	for i := range tasks {
		t := tasks[i]
		s.tasks = append(s.tasks, &t)
	}
}

// nextID is one past the highest id held, or 1 when empty.
func (s *Store) nextID() int {
	maxID := 0
	for _, t := range s.tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// RandomColor returns a random #rrggbb color.
func RandomColor() string {
	return colorful.FastHappyColor().Hex()
}

// Today is the fixed session day the store clamps against.
func (s *Store) Today() calendar.Date {
	return s.today
}

// Replace swaps in a freshly loaded collection.
func (s *Store) Replace(tasks []Task) {
	s.load(tasks)
}

// Reset drops every task.
func (s *Store) Reset() {
	s.tasks = nil
}

// List returns copies of all tasks in insertion order.
func (s *Store) List() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns a copy of the task with id.
func (s *Store) Get(id int) (Task, bool) {
	if t := s.find(id); t != nil {
		return *t, true
	}
	return Task{}, false
}

func (s *Store) find(id int) *Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Add appends a one-day task starting today.
func (s *Store) Add() Task {
	t := &Task{
		ID:    s.nextID(),
		Name:  DefaultName,
		Start: s.today,
		End:   s.today,
		Color: s.color(),
	}
	s.tasks = append(s.tasks, t)
	return *t
}

// Update sets a single field from its raw string form. Dates before today
// (and values that do not parse) are raised to today, then the other end of
// the range is pulled along so start <= end. Unknown ids and fields are
// ignored. It reports whether a task was found and the field was applied.
func (s *Store) Update(id int, field Field, value string) bool {
	t := s.find(id)
	if t == nil {
		return false
	}
	switch field {
	case FieldName:
		t.Name = value
	case FieldColor:
		t.Color = value
	case FieldMemo:
		t.Memo = value
	case FieldStart:
		t.Start = s.clamp(value)
		if t.End.IsZero() || t.End.Before(t.Start) {
			t.End = t.Start
		}
	case FieldEnd:
		t.End = s.clamp(value)
		if t.Start.IsZero() || t.Start.After(t.End) {
			t.Start = t.End
		}
	default:
		return false
	}
	return true
}

func (s *Store) clamp(value string) calendar.Date {
	d, err := calendar.Parse(value)
	if err != nil || d.IsZero() || d.Before(s.today) {
		return s.today
	}
	return d
}

// Delete removes the task with id if present.
func (s *Store) Delete(id int) bool {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// SanitizeNotBeforeToday raises stored dates before today up to today and
// fixes inverted ranges. It runs once on loaded data before the first render.
func (s *Store) SanitizeNotBeforeToday() {
	for _, t := range s.tasks {
		if !t.Start.IsZero() && t.Start.Before(s.today) {
			t.Start = s.today
		}
		if !t.End.IsZero() && t.End.Before(s.today) {
			t.End = s.today
		}
		if !t.Start.IsZero() && !t.End.IsZero() && t.End.Before(t.Start) {
			t.End = t.Start
		}
	}
}

// DayCount renders the inclusive length of a task as "N日", or NoDays.
func (s *Store) DayCount(id int) string {
	t := s.find(id)
	if t == nil {
		return NoDays
	}
	return FormatDays(t.Start, t.End)
}

// FormatDays renders an inclusive day count as "N日", or NoDays.
func FormatDays(start, end calendar.Date) string {
	n := calendar.DaysBetweenInclusive(start, end)
	if n <= 0 {
		return NoDays
	}
	return fmt.Sprintf("%d日", n)
}

// EndMin is the earliest end date a user may pick for the task: the later of
// today and its start.
func (s *Store) EndMin(id int) calendar.Date {
	t := s.find(id)
	if t == nil {
		return s.today
	}
	return calendar.Max(s.today, t.Start)
}
