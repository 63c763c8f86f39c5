package app

import (
	"sort"
	"time"

	"tableflip.dev/planboard/pkg/task"
)

type editKey struct {
	id    int
	field task.Field
}

// Stage buffers a field value while the user is still typing. Buffered values
// are committed once no new value has been staged for the debounce window,
// or earlier by UpdateTask or FlushPendingEdits.
func (s *Service) Stage(id int, field task.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[editKey{id, field}] = value
	s.stopTimer()
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.debounce, func() {
		s.flushAfterQuiet(gen)
	})
}

func (s *Service) flushAfterQuiet(gen uint64) {
	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if !stale {
		s.FlushPendingEdits()
	}
}

// HasPendingEdits reports whether staged values or an unsaved scroll offset
// are waiting for a flush.
func (s *Service) HasPendingEdits() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0 || s.scrollDirty
}

// FlushPendingEdits commits every staged value and persists the tasks and the
// scroll offset. It is safe to call from any teardown or focus-loss path; a
// call with nothing staged writes nothing. It reports whether anything was
// written.
func (s *Service) FlushPendingEdits() bool {
	s.mu.Lock()
	s.stopTimer()
	var change Change
	if len(s.pending) > 0 {
		pending := s.pending
		s.pending = make(map[editKey]string)
		applied := false
		for _, k := range sortedKeys(pending) {
			if s.tasks.Update(k.id, k.field, pending[k]) {
				applied = true
			}
		}
		if applied {
			s.saveTasks()
			change |= TasksChanged
		}
	}
	wroteScroll := s.scrollDirty
	if wroteScroll {
		s.saveScroll()
	}
	s.mu.Unlock()
	s.emit(change)
	return change != 0 || wroteScroll
}

// sortedKeys orders staged edits by task, then by field in table order, so
// start is applied before end.
func sortedKeys(pending map[editKey]string) []editKey {
	rank := make(map[task.Field]int)
	for i, f := range task.Fields() {
		rank[f] = i
	}
	keys := make([]editKey, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}
		return rank[keys[i].field] < rank[keys[j].field]
	})
	return keys
}

// stopTimer must be called with mu held.
func (s *Service) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
