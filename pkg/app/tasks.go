package app

import (
	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/task"
)

// Tasks returns the tasks in insertion order.
func (s *Service) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.List()
}

// Task returns the task with id.
func (s *Service) Task(id int) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Get(id)
}

// DayCount renders the task's inclusive length.
func (s *Service) DayCount(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.DayCount(id)
}

// EndMin is the earliest end date offered for the task.
func (s *Service) EndMin(id int) calendar.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.EndMin(id)
}

// AddTask appends a one-day task starting today.
func (s *Service) AddTask() task.Task {
	s.mu.Lock()
	t := s.tasks.Add()
	s.saveTasks()
	s.mu.Unlock()
	s.emit(TasksChanged)
	return t
}

// UpdateTask commits a field edit immediately. It drops any staged value for
// the same field. Unknown ids and fields report false.
func (s *Service) UpdateTask(id int, field task.Field, value string) bool {
	s.mu.Lock()
	delete(s.pending, editKey{id, field})
	if len(s.pending) == 0 {
		s.stopTimer()
	}
	ok := s.tasks.Update(id, field, value)
	if ok {
		s.saveTasks()
	}
	s.mu.Unlock()
	if ok {
		s.emit(TasksChanged)
	}
	return ok
}

// DeleteTask removes the task and any edits staged for it.
func (s *Service) DeleteTask(id int) bool {
	s.mu.Lock()
	for k := range s.pending {
		if k.id == id {
			delete(s.pending, k)
		}
	}
	ok := s.tasks.Delete(id)
	if ok {
		s.saveTasks()
	}
	s.mu.Unlock()
	if ok {
		s.emit(TasksChanged)
	}
	return ok
}
