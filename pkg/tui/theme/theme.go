package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the board UI.
type Theme struct {
	Tabs   TabsTheme
	Table  TableTheme
	Chart  ChartTheme
	Footer FooterTheme
	Panel  PanelTheme
	Modal  ModalTheme
}

// TabsTheme styles the view switcher at the top.
type TabsTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Gap      lipgloss.Style
}

// TableTheme styles the task and increment tables.
type TableTheme struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

// ChartTheme styles the gantt headers.
type ChartTheme struct {
	Month   lipgloss.Style
	Week    lipgloss.Style
	Day     lipgloss.Style
	Weekend lipgloss.Style
	Today   lipgloss.Style
	Label   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// ModalTheme styles centered overlays such as the increment form.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Error lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	faint := lipgloss.Color("244")

	return Theme{
		Tabs: TabsTheme{
			Active: lipgloss.NewStyle().
				Foreground(accent).
				Bold(true).
				Underline(true).
				Padding(0, 1),
			Inactive: lipgloss.NewStyle().Foreground(faint).Padding(0, 1),
			Gap:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Table: TableTheme{
			Header:   lipgloss.NewStyle().Bold(true),
			Row:      lipgloss.NewStyle(),
			Cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
			Cell:     lipgloss.NewStyle().Reverse(true),
			Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
			Muted:    lipgloss.NewStyle().Foreground(faint).Italic(true),
		},
		Chart: ChartTheme{
			Month:   lipgloss.NewStyle().Bold(true),
			Week:    lipgloss.NewStyle().Foreground(faint),
			Day:     lipgloss.NewStyle(),
			Weekend: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Today:   lipgloss.NewStyle().Foreground(accent).Bold(true),
			Label:   lipgloss.NewStyle(),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(faint),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228")),
			Body:  lipgloss.NewStyle(),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}
