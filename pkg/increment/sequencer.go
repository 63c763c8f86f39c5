package increment

import (
	"sort"
	"time"
)

// Sequencer owns the increment collection, its display order and the current
// selection. Once any increment carries a custom order the whole collection is
// ordered by it; until then it is ordered by start date.
type Sequencer struct {
	items    []*Increment
	nextID   int
	selected int
	now      func() time.Time
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSequencer builds a sequencer holding copies of items.
func NewSequencer(items []Increment, opts ...Option) *Sequencer {
	s := &Sequencer{now: time.Now}
	for _, o := range opts {
		o(s)
	}
	s.load(items)
	return s
}

func (s *Sequencer) load(items []Increment) {
	s.items = make([]*Increment, 0, len(items))
	maxID := 0
	for i := range items {
		inc := items[i]
		if inc.CustomOrder != nil {
			v := *inc.CustomOrder
			inc.CustomOrder = &v
		}
		s.items = append(s.items, &inc)
		if inc.ID > maxID {
			maxID = inc.ID
		}
	}
	if maxID+1 > s.nextID {
		s.nextID = maxID + 1
	}
	if s.selected != 0 && s.find(s.selected) == nil {
		s.selected = 0
	}
}

// Replace swaps in a freshly loaded collection, keeping the selection when
// the selected increment still exists.
func (s *Sequencer) Replace(items []Increment) {
	s.load(items)
}

// Reset drops every increment and the selection.
func (s *Sequencer) Reset() {
	s.items = nil
	s.nextID = 1
	s.selected = 0
}

func (s *Sequencer) find(id int) *Increment {
	for _, inc := range s.items {
		if inc.ID == id {
			return inc
		}
	}
	return nil
}

func clone(inc *Increment) Increment {
	out := *inc
	if inc.CustomOrder != nil {
		v := *inc.CustomOrder
		out.CustomOrder = &v
	}
	return out
}

// Get returns a copy of the increment with id.
func (s *Sequencer) Get(id int) (Increment, bool) {
	if inc := s.find(id); inc != nil {
		return clone(inc), true
	}
	return Increment{}, false
}

// Len returns the number of increments.
func (s *Sequencer) Len() int {
	return len(s.items)
}

// List returns copies in storage order.
func (s *Sequencer) List() []Increment {
	out := make([]Increment, 0, len(s.items))
	for _, inc := range s.items {
		out = append(out, clone(inc))
	}
	return out
}

// Add validates the input and appends a new increment. The new increment has
// no custom order.
func (s *Sequencer) Add(in Input) (Increment, error) {
	v, err := in.validate()
	if err != nil {
		return Increment{}, err
	}
	inc := &Increment{
		ID:        s.nextID,
		Name:      v.name,
		Start:     v.start,
		End:       v.end,
		Goals:     v.goals,
		CreatedAt: nowISO(s.now()),
	}
	s.nextID++
	s.items = append(s.items, inc)
	return clone(inc), nil
}

// Edit validates the input and replaces the increment's fields. It reports
// false without error for unknown ids. A successful edit clears the selection.
func (s *Sequencer) Edit(id int, in Input) (bool, error) {
	v, err := in.validate()
	if err != nil {
		return false, err
	}
	inc := s.find(id)
	if inc == nil {
		return false, nil
	}
	inc.Name = v.name
	inc.Start = v.start
	inc.End = v.end
	inc.Goals = v.goals
	s.selected = 0
	return true, nil
}

// Delete removes the increment and clears the selection if it pointed at it.
func (s *Sequencer) Delete(id int) bool {
	for i, inc := range s.items {
		if inc.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if s.selected == id {
				s.selected = 0
			}
			return true
		}
	}
	return false
}

// DisplayOrder returns the increments in the order they are shown. Without
// any custom order the collection is sorted by start and the resulting
// positions are stored as the custom order, so later moves work on a stable
// base. Otherwise it is sorted by custom order, missing values counting as 0.
func (s *Sequencer) DisplayOrder() []Increment {
	s.sortForDisplay()
	return s.List()
}

func (s *Sequencer) sortForDisplay() {
	seeded := false
	for _, inc := range s.items {
		if inc.CustomOrder != nil {
			seeded = true
			break
		}
	}
	if !seeded {
		sort.SliceStable(s.items, func(i, j int) bool {
			return s.items[i].Start.Before(s.items[j].Start)
		})
		s.renumber()
		return
	}
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].order() < s.items[j].order()
	})
}

func (s *Sequencer) renumber() {
	for i, inc := range s.items {
		n := i
		inc.CustomOrder = &n
	}
}

// Position returns the 0-based display index of id.
func (s *Sequencer) Position(id int) (int, bool) {
	s.sortForDisplay()
	for i, inc := range s.items {
		if inc.ID == id {
			return i, true
		}
	}
	return -1, false
}

// MoveUp swaps the increment with its predecessor in display order.
func (s *Sequencer) MoveUp(id int) bool {
	return s.move(id, -1)
}

// MoveDown swaps the increment with its successor in display order.
func (s *Sequencer) MoveDown(id int) bool {
	return s.move(id, 1)
}

func (s *Sequencer) move(id, delta int) bool {
	idx, ok := s.Position(id)
	if !ok {
		return false
	}
	to := idx + delta
	if to < 0 || to >= len(s.items) {
		return false
	}
	s.items[idx], s.items[to] = s.items[to], s.items[idx]
	s.renumber()
	return true
}

// Select marks id as the current selection. Selecting the selected increment
// clears the selection. Unknown ids are ignored.
func (s *Sequencer) Select(id int) {
	if s.find(id) == nil {
		return
	}
	if s.selected == id {
		s.selected = 0
		return
	}
	s.selected = id
}

// ClearSelection drops the current selection.
func (s *Sequencer) ClearSelection() {
	s.selected = 0
}

// Selected returns the selected increment, if any.
func (s *Sequencer) Selected() (Increment, bool) {
	if s.selected == 0 {
		return Increment{}, false
	}
	return s.Get(s.selected)
}

// CanMoveUp reports whether the selection can move towards the front.
func (s *Sequencer) CanMoveUp() bool {
	if s.selected == 0 {
		return false
	}
	idx, ok := s.Position(s.selected)
	return ok && idx > 0
}

// CanMoveDown reports whether the selection can move towards the back.
func (s *Sequencer) CanMoveDown() bool {
	if s.selected == 0 {
		return false
	}
	idx, ok := s.Position(s.selected)
	return ok && idx < len(s.items)-1
}
