// Package app holds the board Service shared by the CLI and the terminal UI.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/store"
	"tableflip.dev/planboard/pkg/task"
)

// Change tells subscribers which part of the board needs redrawing.
type Change uint8

const (
	TasksChanged Change = 1 << iota
	IncrementsChanged
	ScrollChanged
	SelectionChanged

	AllChanged = TasksChanged | IncrementsChanged | ScrollChanged | SelectionChanged
)

// Has reports whether c includes o.
func (c Change) Has(o Change) bool {
	return c&o != 0
}

// Options configure a Service.
type Options struct {
	Persistence store.Persistence
	// Today fixes the session day. Defaults to the calendar day of Clock.
	Today calendar.Date
	// Debounce is the quiescence window for staged edits.
	Debounce time.Duration
	Clock    func() time.Time
	// ColorSource overrides the random color given to new tasks.
	ColorSource func() string
	// Notify is called after every change, outside the service lock. It may
	// be called from the debounce timer goroutine.
	Notify func(Change)
}

// Service owns the in-memory board. Memory is authoritative: persistence
// failures are logged and never fail an operation.
type Service struct {
	mu          sync.Mutex
	persistence store.Persistence
	tasks       *task.Store
	increments  *increment.Sequencer
	scroll      int
	scrollDirty bool
	notify      func(Change)

	debounce time.Duration
	pending  map[editKey]string
	timer    *time.Timer
	gen      uint64
}

// New loads the board from persistence. Seed tasks are used when nothing has
// been stored yet; loaded tasks are raised to today before anything reads them.
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Today.IsZero() {
		opts.Today = calendar.Today(opts.Clock())
	}
	if opts.Debounce <= 0 {
		opts.Debounce = store.DefaultDebounce
	}

	var taskOpts []task.Option
	if opts.ColorSource != nil {
		taskOpts = append(taskOpts, task.WithColorSource(opts.ColorSource))
	}
	s := &Service{
		persistence: opts.Persistence,
		tasks:       task.NewStore(opts.Today, nil, taskOpts...),
		increments:  increment.NewSequencer(nil, increment.WithClock(opts.Clock)),
		notify:      opts.Notify,
		debounce:    opts.Debounce,
		pending:     make(map[editKey]string),
	}
	s.load(ctx)
	return s, nil
}

func (s *Service) load(ctx context.Context) {
	tasks, err := s.persistence.LoadTasks(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		tasks = task.Seed()
	case err != nil:
		log.Warn().Err(err).Msg("tasks unreadable, starting from the sample board")
		tasks = task.Seed()
	}
	s.tasks.Replace(tasks)
	s.tasks.SanitizeNotBeforeToday()

	items, err := s.persistence.LoadIncrements(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn().Err(err).Msg("increments unreadable")
	}
	s.increments.Replace(items)

	scroll, err := s.persistence.LoadScroll(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn().Err(err).Msg("scroll position unreadable")
	}
	if !s.scrollDirty {
		s.scroll = scroll
	}
}

// Reload re-reads persisted state, e.g. after another process wrote it.
// Staged edits survive and are applied by the next flush.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	s.load(ctx)
	s.mu.Unlock()
	s.emit(AllChanged)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.persistence.Watch(ctx)
}

// Reset clears every task and increment and all persisted state once confirm
// agrees. A nil confirm counts as agreement.
func (s *Service) Reset(ctx context.Context, confirm func() bool) bool {
	if confirm != nil && !confirm() {
		return false
	}
	s.mu.Lock()
	s.stopTimer()
	s.pending = make(map[editKey]string)
	s.tasks.Reset()
	s.increments.Reset()
	s.scroll = 0
	s.scrollDirty = false
	if err := s.persistence.Reset(ctx); err != nil {
		log.Warn().Err(err).Msg("persisted board not fully cleared")
	}
	s.mu.Unlock()
	s.emit(AllChanged)
	return true
}

// Today is the fixed session day.
func (s *Service) Today() calendar.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Today()
}

// ScrollPosition is the last horizontal grid offset.
func (s *Service) ScrollPosition() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scroll
}

// SetScrollPosition records the grid offset. It is persisted on the next flush.
func (s *Service) SetScrollPosition(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	changed := n != s.scroll
	if changed {
		s.scroll = n
		s.scrollDirty = true
	}
	s.mu.Unlock()
	if changed {
		s.emit(ScrollChanged)
	}
}

// SetNotify replaces the change subscriber.
func (s *Service) SetNotify(fn func(Change)) {
	s.mu.Lock()
	s.notify = fn
	s.mu.Unlock()
}

func (s *Service) emit(c Change) {
	s.mu.Lock()
	fn := s.notify
	s.mu.Unlock()
	if fn != nil && c != 0 {
		fn(c)
	}
}

func (s *Service) saveTasks() {
	if err := s.persistence.SaveTasks(s.tasks.List()); err != nil {
		log.Warn().Err(err).Msg("saving tasks")
	}
}

func (s *Service) saveIncrements() {
	if err := s.persistence.SaveIncrements(s.increments.List()); err != nil {
		log.Warn().Err(err).Msg("saving increments")
	}
}

func (s *Service) saveScroll() {
	if err := s.persistence.SaveScroll(s.scroll); err != nil {
		log.Warn().Err(err).Msg("saving scroll position")
		return
	}
	s.scrollDirty = false
}
