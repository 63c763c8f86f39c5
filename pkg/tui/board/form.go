package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/increment"
)

const (
	formName = iota
	formStart
	formEnd
	formGoals
	formFields
)

var formLabels = [formFields]string{"名前", "開始日", "終了日", "目標・成果物"}

// form adds or edits one increment.
type form struct {
	inputs [formFields]textinput.Model
	focus  int
	// editID is zero when adding.
	editID int
	err    string
}

func newForm(inc *increment.Increment) *form {
	f := &form{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 512
		f.inputs[i] = ti
	}
	f.inputs[formStart].Placeholder = calendar.LayoutISO
	f.inputs[formEnd].Placeholder = calendar.LayoutISO
	f.inputs[formGoals].Placeholder = "markdown"
	if inc != nil {
		f.editID = inc.ID
		f.inputs[formName].SetValue(inc.Name)
		f.inputs[formStart].SetValue(inc.Start.String())
		f.inputs[formEnd].SetValue(inc.End.String())
		f.inputs[formGoals].SetValue(inc.Goals)
	}
	return f
}

func (f *form) input() increment.Input {
	return increment.Input{
		Name:  f.inputs[formName].Value(),
		Start: f.inputs[formStart].Value(),
		End:   f.inputs[formEnd].Value(),
		Goals: f.inputs[formGoals].Value(),
	}
}

func (f *form) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + formFields) % formFields
	return f.inputs[f.focus].Focus()
}

func (m *Model) openForm(inc *increment.Increment) tea.Cmd {
	m.form = newForm(inc)
	m.mode = modeForm
	return m.form.inputs[formName].Focus()
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeNormal
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.setStatus("cancelled")
		return
	case "tab", "down":
		*cmds = append(*cmds, f.setFocus(f.focus+1))
		return
	case "shift+tab", "up":
		*cmds = append(*cmds, f.setFocus(f.focus-1))
		return
	case "ctrl+s":
		m.submitForm()
		return
	case "enter":
		if f.focus == formGoals {
			m.submitForm()
			return
		}
		*cmds = append(*cmds, f.setFocus(f.focus+1))
		return
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	*cmds = append(*cmds, cmd)
}

func (m *Model) submitForm() {
	f := m.form
	in := f.input()
	if f.editID == 0 {
		inc, err := m.svc.AddIncrement(in)
		if err != nil {
			f.err = err.Error()
			return
		}
		m.closeForm()
		m.refresh()
		m.setStatus(fmt.Sprintf("added %q", inc.Name))
		return
	}
	ok, err := m.svc.EditIncrement(f.editID, in)
	if err != nil {
		f.err = err.Error()
		return
	}
	m.closeForm()
	m.refresh()
	if !ok {
		m.setError("the increment no longer exists")
		return
	}
	m.setStatus(fmt.Sprintf("updated %q", strings.TrimSpace(in.Name)))
}

func (m *Model) renderForm() string {
	f := m.form
	mt := m.theme.Modal
	title := "インクリメントを追加"
	if f.editID != 0 {
		title = "インクリメントを編集"
	}
	rows := []string{mt.Title.Render(title), ""}
	for i, label := range formLabels {
		marker := "  "
		if i == f.focus {
			marker = m.theme.Table.Cursor.Render("▸ ")
		}
		rows = append(rows, marker+fit(label, 14)+f.inputs[i].View())
	}
	if f.err != "" {
		rows = append(rows, "", mt.Error.Render(f.err))
	}
	return mt.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
