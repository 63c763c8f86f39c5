package app

import (
	"tableflip.dev/planboard/pkg/chart"
)

// Grid lays the current tasks out for drawing.
func (s *Service) Grid() chart.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return chart.Build(s.tasks.List(), s.tasks.Today())
}

// Timeline numbers the increments in display order.
func (s *Service) Timeline() []chart.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return chart.Timeline(s.increments.DisplayOrder())
}
