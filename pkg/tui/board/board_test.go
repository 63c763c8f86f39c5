package board

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/store"
)

func newTestModel(t *testing.T) (*Model, *app.Service) {
	t.Helper()
	p, err := store.Load(store.NewConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc, err := app.New(context.Background(), app.Options{
		Persistence: p,
		Today:       calendar.MustParse("2025-06-01"),
		Debounce:    time.Hour,
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	m := New(svc, Options{})
	t.Cleanup(m.Close)
	return m, svc
}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

var (
	enter     = tea.KeyPressMsg{Code: tea.KeyEnter}
	tab       = tea.KeyPressMsg{Code: tea.KeyTab}
	backspace = tea.KeyPressMsg{Code: tea.KeyBackspace}
	ctrlS     = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
)

func TestViewShowsBoard(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, want := range []string{"ガントチャート", "Task 1", "2025/6", "5日"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestTabSwitchesView(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tab)
	if m.view != viewIncrements {
		t.Fatalf("expected the increments view")
	}
	if !strings.Contains(m.View(), "no increments") {
		t.Fatalf("expected an empty increment list:\n%s", m.View())
	}
	press(m, tab)
	if m.view != viewGantt {
		t.Fatalf("expected the gantt view")
	}
}

func TestEditStagesThenCommits(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, enter)
	if m.mode != modeEdit || m.editID != 1 {
		t.Fatalf("expected to edit task 1, mode %d id %d", m.mode, m.editID)
	}
	press(m, key("x"))
	if !svc.HasPendingEdits() {
		t.Fatalf("expected the keystroke to be staged")
	}
	if got, _ := svc.Task(1); got.Name != "Task 1" {
		t.Fatalf("expected the staged value to wait for the debounce, got %q", got.Name)
	}
	press(m, enter)
	if m.mode != modeNormal || svc.HasPendingEdits() {
		t.Fatalf("expected the commit to leave edit mode and drop the staged value")
	}
	if got, _ := svc.Task(1); got.Name != "Task 1x" {
		t.Fatalf("expected the committed name, got %q", got.Name)
	}
}

func TestPartialDatesAreNotStaged(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, key("l"), enter)
	if m.editField != "start" {
		t.Fatalf("expected to edit the start, got %s", m.editField)
	}
	press(m, backspace)
	if svc.HasPendingEdits() {
		t.Fatalf("expected a half typed date to be held back")
	}
	press(m, key("9"))
	if !svc.HasPendingEdits() {
		t.Fatalf("expected a complete date to be staged")
	}
	press(m, enter)
	got, _ := svc.Task(1)
	if got.Start.String() != "2025-06-09" || got.End.String() != "2025-06-09" {
		t.Fatalf("expected the end pulled along, got %s..%s", got.Start, got.End)
	}
}

func TestBlurFlushesStagedEdits(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, enter, key("!"), tea.BlurMsg{})
	if svc.HasPendingEdits() {
		t.Fatalf("expected blur to flush")
	}
	if got, _ := svc.Task(1); got.Name != "Task 1!" {
		t.Fatalf("expected the flushed name, got %q", got.Name)
	}
	if m.mode != modeEdit {
		t.Fatalf("expected blur to keep the field open")
	}
}

func TestCloseCommitsOpenEdit(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, enter, key("?"))
	m.Close()
	if got, _ := svc.Task(1); got.Name != "Task 1?" {
		t.Fatalf("expected close to commit, got %q", got.Name)
	}
}

func TestAddAndDeleteTask(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, key("a"))
	if len(svc.Tasks()) != 4 || m.row != 3 {
		t.Fatalf("expected a fourth task under the cursor, got %d tasks row %d", len(svc.Tasks()), m.row)
	}
	press(m, key("x"))
	if len(svc.Tasks()) != 3 || m.row != 2 {
		t.Fatalf("expected the new task removed, got %d tasks row %d", len(svc.Tasks()), m.row)
	}
}

func TestScrollIsRecordedAndClamped(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, tea.WindowSizeMsg{Width: 40, Height: 30})
	press(m, key("]"))
	if m.scroll != 1 || svc.ScrollPosition() != 1 {
		t.Fatalf("expected offset 1, got %d/%d", m.scroll, svc.ScrollPosition())
	}
	for i := 0; i < 10; i++ {
		press(m, key("}"))
	}
	if m.scroll != m.maxScroll() || svc.ScrollPosition() != m.maxScroll() {
		t.Fatalf("expected the offset clamped to %d, got %d", m.maxScroll(), m.scroll)
	}
	press(m, key("["), key("{"), key("{"), key("{"), key("{"), key("{"))
	if m.scroll != 0 {
		t.Fatalf("expected the offset clamped to 0, got %d", m.scroll)
	}
}

func addIncrement(t *testing.T, m *Model, name, start, end string) {
	t.Helper()
	press(m, key("a"))
	if m.mode != modeForm {
		t.Fatalf("expected the form")
	}
	m.form.inputs[formName].SetValue(name)
	m.form.inputs[formStart].SetValue(start)
	m.form.inputs[formEnd].SetValue(end)
	press(m, ctrlS)
}

func TestIncrementFormValidatesAndAdds(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, tab)
	addIncrement(t, m, "A", "2025-06-10", "2025-06-01")
	if m.mode != modeForm || m.form.err == "" {
		t.Fatalf("expected the form to stay open with an error")
	}
	m.form.inputs[formEnd].SetValue("2025-06-20")
	press(m, ctrlS)
	if m.mode != modeNormal || len(svc.Increments()) != 1 {
		t.Fatalf("expected one increment, got %d", len(svc.Increments()))
	}
	if !strings.Contains(m.View(), "Phase 1") {
		t.Fatalf("expected the timeline:\n%s", m.View())
	}
}

func TestSelectionMovesAndConfirmDelete(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, tab)
	addIncrement(t, m, "A", "2025-06-10", "2025-06-20")
	addIncrement(t, m, "B", "2025-06-01", "2025-06-05")
	if got := svc.Increments(); got[0].Name != "B" {
		t.Fatalf("expected start order, got %+v", got)
	}

	press(m, enter)
	if sel, ok := svc.Selection(); !ok || sel.Name != "B" {
		t.Fatalf("expected B selected")
	}
	press(m, key("J"))
	if got := svc.Increments(); got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("expected B moved down, got %+v", got)
	}
	if m.cursor != 1 {
		t.Fatalf("expected the cursor to follow the selection, got %d", m.cursor)
	}

	press(m, key("x"))
	if m.mode != modeConfirm {
		t.Fatalf("expected a confirmation")
	}
	press(m, key("n"))
	if len(svc.Increments()) != 2 {
		t.Fatalf("expected a declined delete to keep the increment")
	}
	press(m, key("x"), key("y"))
	if got := svc.Increments(); len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("expected B deleted, got %+v", got)
	}
}

func TestResetFromBoard(t *testing.T) {
	m, svc := newTestModel(t)
	press(m, tab, key("R"), key("y"))
	if len(svc.Tasks()) != 0 || len(m.tasks) != 0 {
		t.Fatalf("expected an empty board")
	}
}

func TestServiceChangesReachTheBoard(t *testing.T) {
	m, svc := newTestModel(t)
	svc.AddTask()

	var msg tea.Msg
	select {
	case c := <-m.changes:
		msg = changeMsg{change: c}
	case <-time.After(time.Second):
		t.Fatalf("expected a change notification")
	}
	press(m, msg)
	if len(m.tasks) != 4 {
		t.Fatalf("expected the board to refresh, got %d tasks", len(m.tasks))
	}
}
