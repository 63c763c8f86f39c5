// Package help shows the board's key bindings in a scrollable panel.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var bindings string

const (
	minWidth  = 32
	minHeight = 8
)

// Model is the help panel. The markdown is rendered once per width; Show
// scrolls to the section for the tab the user came from.
type Model struct {
	viewport viewport.Model
	width    int
	height   int
	section  string

	title   lipgloss.Style
	frame   lipgloss.Style
	lines   []string
	failure string
}

// New builds a help panel for a width x height area.
func New(width, height int) *Model {
	m := &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		title:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
	m.viewport.MouseWheelEnabled = true
	m.SetSize(width, height)
	return m
}

// Show scrolls to the heading named section, or to the top when it is
// missing.
func (m *Model) Show(section string) {
	m.section = section
	m.viewport.SetYOffset(m.offsetOf(section))
}

func (m *Model) offsetOf(section string) int {
	if section == "" {
		return 0
	}
	for i, line := range m.lines {
		line = strings.TrimSpace(line)
		if strings.TrimLeft(line, "# ") == section {
			return i
		}
	}
	return 0
}

// Update scrolls the viewport.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	body := m.viewport.View()
	if m.failure != "" {
		body = m.failure
	}
	head := m.title.Render("help")
	if m.section != "" {
		head = m.title.Render("help · " + m.section)
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, m.frame.Width(m.width).Height(m.height-1).Render(body))
}

// SetSize resizes the panel and re-renders the bindings when the width
// changes.
func (m *Model) SetSize(width, height int) {
	width = max(width, minWidth)
	height = max(height, minHeight)
	if width == m.width && height == m.height {
		return
	}
	rewrap := width != m.width
	m.width, m.height = width, height

	inner := max(width-m.frame.GetHorizontalFrameSize(), 1)
	m.viewport.SetWidth(inner)
	// One line goes to the title.
	m.viewport.SetHeight(max(height-1-m.frame.GetVerticalFrameSize(), 1))
	if rewrap || m.lines == nil {
		m.render(inner)
		m.Show(m.section)
	}
}

func (m *Model) render(wrap int) {
	r, err := glamour.NewTermRenderer(
		// notty keeps the output free of escape codes inside the frame.
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err == nil {
		var out string
		if out, err = r.Render(strings.TrimSpace(bindings)); err == nil {
			m.failure = ""
			m.lines = strings.Split(out, "\n")
			m.viewport.SetContent(out)
			return
		}
	}
	m.failure = "help unavailable: " + err.Error()
	m.lines = []string{}
}
