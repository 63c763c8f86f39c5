package app

import (
	"tableflip.dev/planboard/pkg/increment"
)

// Increments returns the increments in display order.
func (s *Service) Increments() []increment.Increment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increments.DisplayOrder()
}

// Increment returns the increment with id.
func (s *Service) Increment(id int) (increment.Increment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increments.Get(id)
}

// AddIncrement validates and appends an increment.
func (s *Service) AddIncrement(in increment.Input) (increment.Increment, error) {
	s.mu.Lock()
	inc, err := s.increments.Add(in)
	if err == nil {
		s.saveIncrements()
	}
	s.mu.Unlock()
	if err != nil {
		return increment.Increment{}, err
	}
	s.emit(IncrementsChanged)
	return inc, nil
}

// EditIncrement validates and applies an edit. Unknown ids report false.
func (s *Service) EditIncrement(id int, in increment.Input) (bool, error) {
	s.mu.Lock()
	ok, err := s.increments.Edit(id, in)
	if ok {
		s.saveIncrements()
	}
	s.mu.Unlock()
	if ok {
		s.emit(IncrementsChanged | SelectionChanged)
	}
	return ok, err
}

// DeleteIncrement removes the increment once confirm agrees. A nil confirm
// counts as agreement. Unknown ids report false without asking.
func (s *Service) DeleteIncrement(id int, confirm func(increment.Increment) bool) bool {
	inc, ok := s.Increment(id)
	if !ok {
		return false
	}
	if confirm != nil && !confirm(inc) {
		return false
	}
	s.mu.Lock()
	ok = s.increments.Delete(id)
	if ok {
		s.saveIncrements()
	}
	s.mu.Unlock()
	if ok {
		s.emit(IncrementsChanged | SelectionChanged)
	}
	return ok
}

// MoveIncrementUp moves the increment one place towards the front.
func (s *Service) MoveIncrementUp(id int) bool {
	return s.move(id, (*increment.Sequencer).MoveUp)
}

// MoveIncrementDown moves the increment one place towards the back.
func (s *Service) MoveIncrementDown(id int) bool {
	return s.move(id, (*increment.Sequencer).MoveDown)
}

func (s *Service) move(id int, fn func(*increment.Sequencer, int) bool) bool {
	s.mu.Lock()
	ok := fn(s.increments, id)
	if ok {
		s.saveIncrements()
	}
	s.mu.Unlock()
	if ok {
		s.emit(IncrementsChanged)
	}
	return ok
}

// SelectIncrement toggles the selection on id.
func (s *Service) SelectIncrement(id int) {
	s.mu.Lock()
	s.increments.Select(id)
	s.mu.Unlock()
	s.emit(SelectionChanged)
}

// ClearSelection drops the selection.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	s.increments.ClearSelection()
	s.mu.Unlock()
	s.emit(SelectionChanged)
}

// Selection returns the selected increment, if any.
func (s *Service) Selection() (increment.Increment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increments.Selected()
}

// CanMoveUp reports whether the selection can move towards the front.
func (s *Service) CanMoveUp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increments.CanMoveUp()
}

// CanMoveDown reports whether the selection can move towards the back.
func (s *Service) CanMoveDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increments.CanMoveDown()
}
