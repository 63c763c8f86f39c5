package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

func (m *Model) renderIncrements() string {
	th := m.theme.Table
	sel, hasSel := m.svc.Selection()

	var list strings.Builder
	list.WriteString(m.theme.Panel.Title.Render("インクリメント"))
	list.WriteString("\n")
	if len(m.increments) == 0 {
		list.WriteString(th.Muted.Render("no increments, press a to add one"))
	}
	for i, inc := range m.increments {
		marker := "  "
		if i == m.cursor {
			marker = th.Cursor.Render("▸ ")
		}
		row := fmt.Sprintf("%2d. %s  %s - %s  %d日",
			i+1, fit(inc.Name, 16), inc.Start.Display(), inc.End.Display(), inc.Days())
		if hasSel && inc.ID == sel.ID {
			row = th.Selected.Render("● " + row)
		} else {
			row = "  " + row
		}
		list.WriteString(marker + row)
		if i < len(m.increments)-1 {
			list.WriteString("\n")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Panel.Frame.Render(list.String()),
		"",
		m.renderTimeline(),
	)
}

func (m *Model) renderTimeline() string {
	if len(m.phases) == 0 {
		return ""
	}
	width := m.width - 8
	if width < 20 {
		width = 72
	}
	var b strings.Builder
	b.WriteString(m.theme.Panel.Title.Render("タイムライン"))
	for _, p := range m.phases {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Chart.Today.Render(p.Label()))
		b.WriteString("  ")
		b.WriteString(m.theme.Table.Header.Render(p.Name))
		b.WriteString("\n")
		b.WriteString(m.theme.Footer.Status.Render(fmt.Sprintf("  %s (%d日)", p.Period(), p.Days)))
		b.WriteString("\n")
		goals := indent.String(wordwrap.String(p.GoalsOrPlaceholder(), width-4), 4)
		if p.Goals == "" {
			goals = m.theme.Table.Muted.Render(goals)
		}
		b.WriteString(goals)
	}
	return b.String()
}

func (m *Model) renderConfirm() string {
	title := "Clear the whole board?"
	body := "Every task, increment and the saved scroll position will be removed."
	if m.confirm == confirmDeleteIncrement {
		title = "Delete increment?"
		body = "This increment will be removed."
		for _, inc := range m.increments {
			if inc.ID == m.confirmID {
				body = fmt.Sprintf("%q (%s - %s) will be removed.", inc.Name, inc.Start.Display(), inc.End.Display())
			}
		}
	}
	mt := m.theme.Modal
	return mt.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		mt.Title.Render(title),
		"",
		mt.Body.Render(body),
		"",
		mt.Body.Render("y / n"),
	))
}
