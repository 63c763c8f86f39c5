package board

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/task"
	"tableflip.dev/planboard/pkg/tui/components/help"
)

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quit(cmds)
		return
	}
	switch m.mode {
	case modeEdit:
		m.handleEditKey(msg, cmds)
	case modeForm:
		m.handleFormKey(msg, cmds)
	case modeConfirm:
		m.handleConfirmKey(msg)
	case modeHelp:
		m.handleHelpKey(msg, cmds)
	default:
		m.handleNormalKey(msg, cmds)
	}
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	m.Close()
	*cmds = append(*cmds, tea.Quit)
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quit(cmds)
		return
	case "tab", "shift+tab":
		m.svc.FlushPendingEdits()
		if m.view == viewGantt {
			m.view = viewIncrements
		} else {
			m.view = viewGantt
		}
		m.setStatus("")
		return
	case "?":
		w, h := m.helpSize()
		if m.help == nil {
			m.help = help.New(w, h)
		} else {
			m.help.SetSize(w, h)
		}
		section := "Gantt chart"
		if m.view == viewIncrements {
			section = "Increments"
		}
		m.help.Show(section)
		m.mode = modeHelp
		return
	}
	if m.view == viewGantt {
		m.handleGanttKey(msg, cmds)
		return
	}
	m.handleIncrementKey(msg, cmds)
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.mode = modeNormal
		return
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	*cmds = append(*cmds, cmd)
}

func (m *Model) handleGanttKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.row = clamp(m.row-1, 0, len(m.tasks)-1)
	case "down", "j":
		m.row = clamp(m.row+1, 0, len(m.tasks)-1)
	case "left", "h":
		m.col = clamp(m.col-1, 0, len(task.Fields())-1)
	case "right", "l":
		m.col = clamp(m.col+1, 0, len(task.Fields())-1)
	case "enter", "e":
		m.beginEdit(cmds)
	case "a":
		t := m.svc.AddTask()
		m.refresh()
		m.row = len(m.tasks) - 1
		m.setStatus(fmt.Sprintf("added task %d", t.ID))
	case "x", "delete":
		t, ok := m.currentTask()
		if !ok {
			return
		}
		m.svc.DeleteTask(t.ID)
		m.refresh()
		m.setStatus(fmt.Sprintf("removed %q", t.Name))
	case "[":
		m.setScroll(m.scroll - 1)
	case "]":
		m.setScroll(m.scroll + 1)
	case "{":
		m.setScroll(m.scroll - 7)
	case "}":
		m.setScroll(m.scroll + 7)
	case "t":
		idx := m.grid.IndexOf(m.svc.Today())
		if idx < 0 {
			idx = 0
		}
		m.setScroll(idx)
	}
}

func (m *Model) currentTask() (task.Task, bool) {
	if m.row < 0 || m.row >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.row], true
}

func (m *Model) beginEdit(cmds *[]tea.Cmd) {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	field := task.Fields()[m.col]
	m.editID = t.ID
	m.editField = field
	m.input.Placeholder = ""
	if field.IsDate() {
		m.input.Placeholder = calendar.LayoutISO
	}
	m.input.SetValue(t.Value(field))
	m.input.CursorEnd()
	m.mode = modeEdit
	m.setStatus(fmt.Sprintf("editing %s of %q", field, t.Name))
	*cmds = append(*cmds, m.input.Focus())
}

func (m *Model) handleEditKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.commitEdit()
		return
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	*cmds = append(*cmds, cmd)
	if v := m.input.Value(); v != before {
		m.stage(v)
	}
}

// stage hands a keystroke's value to the debounced writer. Half typed dates
// are held back so the task never jumps to today mid-edit.
func (m *Model) stage(v string) {
	if m.editField.IsDate() {
		if d, err := calendar.Parse(v); err != nil || d.IsZero() {
			return
		}
	}
	m.svc.Stage(m.editID, m.editField, v)
}

// commitEdit applies the edited value immediately, the way leaving a field
// does.
func (m *Model) commitEdit() {
	m.input.Blur()
	m.mode = modeNormal
	if !m.svc.UpdateTask(m.editID, m.editField, m.input.Value()) {
		m.setError("the task no longer exists")
	} else {
		t, _ := m.svc.Task(m.editID)
		m.setStatus(fmt.Sprintf("%s of %q set to %q", m.editField, t.Name, t.Value(m.editField)))
	}
	m.refresh()
}

func (m *Model) handleIncrementKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = clamp(m.cursor-1, 0, len(m.increments)-1)
	case "down", "j":
		m.cursor = clamp(m.cursor+1, 0, len(m.increments)-1)
	case "space", " ", "enter":
		if inc, ok := m.currentIncrement(); ok {
			m.svc.SelectIncrement(inc.ID)
		}
	case "esc":
		m.svc.ClearSelection()
	case "K", "shift+up":
		m.moveSelection(true)
	case "J", "shift+down":
		m.moveSelection(false)
	case "a":
		*cmds = append(*cmds, m.openForm(nil))
	case "e":
		inc, ok := m.svc.Selection()
		if !ok {
			inc, ok = m.currentIncrement()
		}
		if ok {
			*cmds = append(*cmds, m.openForm(&inc))
		}
	case "x", "delete":
		if inc, ok := m.currentIncrement(); ok {
			m.confirm = confirmDeleteIncrement
			m.confirmID = inc.ID
			m.mode = modeConfirm
		}
	case "R":
		m.confirm = confirmReset
		m.mode = modeConfirm
	}
}

func (m *Model) moveSelection(up bool) {
	sel, ok := m.svc.Selection()
	if !ok {
		m.setError("select an increment first")
		return
	}
	moved := false
	if up && m.svc.CanMoveUp() {
		moved = m.svc.MoveIncrementUp(sel.ID)
	}
	if !up && m.svc.CanMoveDown() {
		moved = m.svc.MoveIncrementDown(sel.ID)
	}
	m.refresh()
	if !moved {
		return
	}
	for i, inc := range m.increments {
		if inc.ID == sel.ID {
			m.cursor = i
		}
	}
	m.setStatus(fmt.Sprintf("moved %q", sel.Name))
}

func (m *Model) currentIncrement() (increment.Increment, bool) {
	if m.cursor < 0 || m.cursor >= len(m.increments) {
		return increment.Increment{}, false
	}
	return m.increments[m.cursor], true
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirm {
		case confirmDeleteIncrement:
			if m.svc.DeleteIncrement(m.confirmID, nil) {
				m.setStatus("increment deleted")
			}
		case confirmReset:
			m.svc.Reset(m.ctx, nil)
			m.row, m.cursor = 0, 0
			m.scroll = 0
			m.setStatus("board cleared")
		}
	case "n", "N", "esc", "q":
		m.setStatus("cancelled")
	default:
		return
	}
	m.confirm = confirmNone
	m.confirmID = 0
	m.mode = modeNormal
	m.refresh()
}
