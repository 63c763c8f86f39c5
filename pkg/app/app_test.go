package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/store"
	"tableflip.dev/planboard/pkg/task"
)

type memoryPersistence struct {
	mu          sync.Mutex
	tasks       []task.Task
	increments  []increment.Increment
	scroll      *int
	taskSaves   int
	scrollSaves int
	resets      int
}

func newMemoryPersistence(tasks ...task.Task) *memoryPersistence {
	m := &memoryPersistence{}
	if tasks != nil {
		m.tasks = append([]task.Task{}, tasks...)
	}
	return m
}

func (m *memoryPersistence) LoadTasks(_ context.Context) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tasks == nil {
		return nil, store.ErrNotFound
	}
	return append([]task.Task{}, m.tasks...), nil
}

func (m *memoryPersistence) SaveTasks(tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append([]task.Task{}, tasks...)
	m.taskSaves++
	return nil
}

func (m *memoryPersistence) LoadIncrements(_ context.Context) ([]increment.Increment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.increments == nil {
		return nil, store.ErrNotFound
	}
	return append([]increment.Increment{}, m.increments...), nil
}

func (m *memoryPersistence) SaveIncrements(items []increment.Increment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.increments = append([]increment.Increment{}, items...)
	return nil
}

func (m *memoryPersistence) LoadScroll(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scroll == nil {
		return 0, store.ErrNotFound
	}
	return *m.scroll, nil
}

func (m *memoryPersistence) SaveScroll(offset int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scroll = &offset
	m.scrollSaves++
	return nil
}

func (m *memoryPersistence) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks, m.increments, m.scroll = nil, nil, nil
	m.resets++
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func (m *memoryPersistence) saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taskSaves
}

var errDiskGone = errors.New("disk gone")

type failingPersistence struct{}

func (failingPersistence) LoadTasks(context.Context) ([]task.Task, error) { return nil, errDiskGone }
func (failingPersistence) SaveTasks([]task.Task) error                    { return errDiskGone }
func (failingPersistence) LoadIncrements(context.Context) ([]increment.Increment, error) {
	return nil, errDiskGone
}
func (failingPersistence) SaveIncrements([]increment.Increment) error { return errDiskGone }
func (failingPersistence) LoadScroll(context.Context) (int, error)    { return 0, errDiskGone }
func (failingPersistence) SaveScroll(int) error                       { return errDiskGone }
func (failingPersistence) Reset(context.Context) error                { return errDiskGone }
func (failingPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, errDiskGone
}

var today = calendar.MustParse("2025-06-05")

func newTestService(t *testing.T, p store.Persistence, notify func(Change)) *Service {
	t.Helper()
	s, err := New(context.Background(), Options{
		Persistence: p,
		Today:       today,
		Debounce:    20 * time.Millisecond,
		Clock:       func() time.Time { return time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC) },
		ColorSource: func() string { return "#000000" },
		Notify:      notify,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return s
}

func TestNewRequiresPersistence(t *testing.T) {
	if _, err := New(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error without persistence")
	}
}

func TestNewSeedsAndSanitizes(t *testing.T) {
	s := newTestService(t, newMemoryPersistence(), nil)
	tasks := s.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 seed tasks, got %d", len(tasks))
	}
	if tasks[0].Start.String() != "2025-06-05" || tasks[0].End.String() != "2025-06-08" {
		t.Fatalf("expected first seed raised to today, got %s..%s", tasks[0].Start, tasks[0].End)
	}
	for _, tk := range tasks {
		if tk.Start.Before(today) || tk.End.Before(tk.Start) {
			t.Fatalf("seed task %d breaks invariants: %s..%s", tk.ID, tk.Start, tk.End)
		}
	}
}

func TestNewUsesStoredTasks(t *testing.T) {
	p := newMemoryPersistence(task.Task{ID: 9, Name: "stored", Start: today, End: today})
	s := newTestService(t, p, nil)
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Name != "stored" {
		t.Fatalf("expected stored task, got %+v", tasks)
	}
	if added := s.AddTask(); added.ID != 10 {
		t.Fatalf("expected next id 10, got %d", added.ID)
	}
}

func TestEmptyStoredBoardIsNotReseeded(t *testing.T) {
	p := &memoryPersistence{tasks: []task.Task{}}
	s := newTestService(t, p, nil)
	if n := len(s.Tasks()); n != 0 {
		t.Fatalf("expected an empty saved board to stay empty, got %d tasks", n)
	}
}

func TestAddAndUpdateTaskPersist(t *testing.T) {
	p := newMemoryPersistence()
	var changes []Change
	s := newTestService(t, p, func(c Change) { changes = append(changes, c) })

	added := s.AddTask()
	if !added.Start.Equal(today) || added.Color != "#000000" {
		t.Fatalf("unexpected new task %+v", added)
	}
	if !s.UpdateTask(added.ID, task.FieldStart, "2025-05-01") {
		t.Fatalf("expected update to apply")
	}
	got, _ := s.Task(added.ID)
	if !got.Start.Equal(today) {
		t.Fatalf("expected clamp to today, got %s", got.Start)
	}
	if s.UpdateTask(999, task.FieldName, "x") {
		t.Fatalf("expected unknown id to report false")
	}
	if p.saves() != 2 {
		t.Fatalf("expected 2 saves, got %d", p.saves())
	}
	if len(changes) != 2 || !changes[0].Has(TasksChanged) {
		t.Fatalf("expected two task notifications, got %v", changes)
	}
	if s.DayCount(added.ID) != "1日" {
		t.Fatalf("unexpected day count %s", s.DayCount(added.ID))
	}
}

func TestStageDebounces(t *testing.T) {
	p := newMemoryPersistence(task.Task{ID: 1, Name: "a", Start: today, End: today})
	s := newTestService(t, p, nil)

	for _, v := range []string{"b", "bo", "boa", "boar", "board"} {
		s.Stage(1, task.FieldName, v)
	}
	if p.saves() != 0 {
		t.Fatalf("expected no save while typing")
	}
	if got, _ := s.Task(1); got.Name != "a" {
		t.Fatalf("expected staged value not yet applied, got %q", got.Name)
	}

	deadline := time.Now().Add(2 * time.Second)
	for p.saves() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for the debounced save")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got, _ := s.Task(1); got.Name != "board" {
		t.Fatalf("expected last staged value, got %q", got.Name)
	}
	time.Sleep(60 * time.Millisecond)
	if p.saves() != 1 {
		t.Fatalf("expected exactly one save, got %d", p.saves())
	}
}

func TestFlushPendingEditsIsIdempotent(t *testing.T) {
	p := newMemoryPersistence(task.Task{ID: 1, Name: "a", Start: today, End: today})
	s, err := New(context.Background(), Options{Persistence: p, Today: today, Debounce: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	s.Stage(1, task.FieldEnd, "2025-06-20")
	s.Stage(1, task.FieldStart, "2025-06-10")
	if !s.HasPendingEdits() {
		t.Fatalf("expected pending edits")
	}
	if !s.FlushPendingEdits() {
		t.Fatalf("expected the first flush to write")
	}
	if s.FlushPendingEdits() {
		t.Fatalf("expected the second flush to be a no-op")
	}
	if p.saves() != 1 {
		t.Fatalf("expected one save, got %d", p.saves())
	}
	got, _ := s.Task(1)
	if got.Start.String() != "2025-06-10" || got.End.String() != "2025-06-20" {
		t.Fatalf("expected start applied before end, got %s..%s", got.Start, got.End)
	}
}

func TestUpdateTaskDropsStagedValue(t *testing.T) {
	p := newMemoryPersistence(task.Task{ID: 1, Name: "a", Start: today, End: today})
	s := newTestService(t, p, nil)
	s.Stage(1, task.FieldName, "typing")
	s.UpdateTask(1, task.FieldName, "committed")
	if s.FlushPendingEdits() {
		t.Fatalf("expected nothing left to flush")
	}
	time.Sleep(60 * time.Millisecond)
	if got, _ := s.Task(1); got.Name != "committed" {
		t.Fatalf("expected committed value to win, got %q", got.Name)
	}
}

func TestScrollPersistedOnFlush(t *testing.T) {
	p := newMemoryPersistence()
	s := newTestService(t, p, nil)
	s.SetScrollPosition(12)
	if p.scrollSaves != 0 {
		t.Fatalf("expected scroll to wait for a flush")
	}
	if !s.FlushPendingEdits() {
		t.Fatalf("expected flush to write the scroll offset")
	}
	if p.scroll == nil || *p.scroll != 12 {
		t.Fatalf("expected 12 persisted, got %v", p.scroll)
	}
	if s.FlushPendingEdits() {
		t.Fatalf("expected second flush to be a no-op")
	}

	s2 := newTestService(t, p, nil)
	if s2.ScrollPosition() != 12 {
		t.Fatalf("expected scroll restored, got %d", s2.ScrollPosition())
	}
}

func TestNotifyRunsOutsideLock(t *testing.T) {
	var s *Service
	seen := 0
	s = newTestService(t, newMemoryPersistence(), func(Change) {
		seen = len(s.Tasks())
	})
	s.AddTask()
	if seen != 4 {
		t.Fatalf("expected notify to read 4 tasks, got %d", seen)
	}
}

func TestFailingPersistenceKeepsMemory(t *testing.T) {
	s := newTestService(t, failingPersistence{}, nil)
	if len(s.Tasks()) != 3 {
		t.Fatalf("expected seed tasks when storage is unreadable")
	}
	added := s.AddTask()
	if _, ok := s.Task(added.ID); !ok {
		t.Fatalf("expected task kept in memory")
	}
	if _, err := s.AddIncrement(increment.Input{Name: "p", Start: "2025-06-01", End: "2025-06-02"}); err != nil {
		t.Fatalf("expected increment add to succeed, got %v", err)
	}
	s.SetScrollPosition(3)
	s.FlushPendingEdits()
	if !s.Reset(context.Background(), nil) {
		t.Fatalf("expected reset to apply")
	}
	if len(s.Tasks()) != 0 || len(s.Increments()) != 0 {
		t.Fatalf("expected memory cleared")
	}
}

func TestIncrementOperations(t *testing.T) {
	p := newMemoryPersistence()
	s := newTestService(t, p, nil)

	a, err := s.AddIncrement(increment.Input{Name: "A", Start: "2025-06-10", End: "2025-06-20"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.AddIncrement(increment.Input{Name: "B", Start: "2025-06-01", End: "2025-06-05"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddIncrement(increment.Input{Name: "C", Start: "2025-06-05", End: "2025-06-01"}); !errors.Is(err, increment.ErrInvertedRange) {
		t.Fatalf("expected inverted range, got %v", err)
	}
	if len(p.increments) != 2 {
		t.Fatalf("expected the rejected add not to persist, got %d", len(p.increments))
	}

	phases := s.Timeline()
	if phases[0].ID != b.ID || phases[1].ID != a.ID {
		t.Fatalf("expected chronological order, got %+v", phases)
	}

	s.SelectIncrement(b.ID)
	if !s.CanMoveDown() || s.CanMoveUp() {
		t.Fatalf("expected selection at the front")
	}
	if !s.MoveIncrementDown(b.ID) {
		t.Fatalf("expected move to apply")
	}
	if order := s.Increments(); order[0].ID != a.ID {
		t.Fatalf("expected A first after the move")
	}
	if p.increments[0].CustomOrder == nil {
		t.Fatalf("expected custom order persisted")
	}

	if s.DeleteIncrement(b.ID, func(increment.Increment) bool { return false }) {
		t.Fatalf("expected declined delete to keep the increment")
	}
	if !s.DeleteIncrement(b.ID, func(inc increment.Increment) bool { return inc.Name == "B" }) {
		t.Fatalf("expected confirmed delete")
	}
	if _, ok := s.Selection(); ok {
		t.Fatalf("expected selection cleared with the deleted increment")
	}
	if s.DeleteIncrement(b.ID, nil) {
		t.Fatalf("expected unknown id to report false")
	}

	ok, err := s.EditIncrement(a.ID, increment.Input{Name: "A2", Start: "2025-06-10", End: "2025-06-11"})
	if !ok || err != nil {
		t.Fatalf("expected edit, got %v %v", ok, err)
	}
	if got, _ := s.Increment(a.ID); got.Name != "A2" {
		t.Fatalf("unexpected increment %+v", got)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	p := newMemoryPersistence()
	s := newTestService(t, p, nil)
	if s.Reset(context.Background(), func() bool { return false }) {
		t.Fatalf("expected declined reset")
	}
	if len(s.Tasks()) != 3 || p.resets != 0 {
		t.Fatalf("expected nothing cleared")
	}
	s.Stage(1, task.FieldName, "late")
	if !s.Reset(context.Background(), func() bool { return true }) {
		t.Fatalf("expected reset")
	}
	if len(s.Tasks()) != 0 || p.resets != 1 || s.HasPendingEdits() {
		t.Fatalf("expected a cleared board")
	}
	if added := s.AddTask(); added.ID != 1 {
		t.Fatalf("expected ids to restart, got %d", added.ID)
	}
}

func TestReload(t *testing.T) {
	p := newMemoryPersistence(task.Task{ID: 1, Name: "a", Start: today, End: today})
	var changes []Change
	s := newTestService(t, p, func(c Change) { changes = append(changes, c) })

	p.mu.Lock()
	p.tasks = []task.Task{{ID: 1, Name: "from elsewhere", Start: calendar.MustParse("2025-01-01"), End: today}}
	p.mu.Unlock()

	s.Reload(context.Background())
	got, _ := s.Task(1)
	if got.Name != "from elsewhere" || !got.Start.Equal(today) {
		t.Fatalf("expected reloaded and sanitized task, got %+v", got)
	}
	if len(changes) != 1 || changes[0] != AllChanged {
		t.Fatalf("expected a full redraw, got %v", changes)
	}
}

func TestGrid(t *testing.T) {
	s := newTestService(t, newMemoryPersistence(task.Task{ID: 1, Start: calendar.MustParse("2025-06-06"), End: calendar.MustParse("2025-06-08")}), nil)
	g := s.Grid()
	if g.Empty() || len(g.Rows) != 1 || g.Rows[0].Filled() != 3 {
		t.Fatalf("unexpected grid %+v", g)
	}
	if !g.Today.Equal(today) {
		t.Fatalf("expected grid today %s, got %s", today, g.Today)
	}
}

func TestRelaunchAfterResetSeeds(t *testing.T) {
	p := newMemoryPersistence(task.Task{ID: 9, Name: "stored", Start: today, End: today})
	s := newTestService(t, p, nil)
	if !s.Reset(context.Background(), nil) {
		t.Fatalf("expected reset")
	}
	s.FlushPendingEdits()
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected an empty board for the rest of the session")
	}

	again := newTestService(t, p, nil)
	if got := len(again.Tasks()); got != len(task.Seed()) {
		t.Fatalf("expected the sample tasks after relaunch, got %d", got)
	}
}
