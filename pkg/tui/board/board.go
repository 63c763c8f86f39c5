// Package board hosts the Bubble Tea program for the planboard TUI.
package board

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/chart"
	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/store"
	"tableflip.dev/planboard/pkg/task"
	"tableflip.dev/planboard/pkg/tui/components/help"
	"tableflip.dev/planboard/pkg/tui/theme"
)

type view int

const (
	viewGantt view = iota
	viewIncrements
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeForm
	modeConfirm
	modeHelp
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteIncrement
	confirmReset
)

// Options configure the board.
type Options struct {
	// Fill is the #rrggbb color of scheduled chart cells.
	Fill string
}

// Model is the board UI. It owns no board state of its own: everything it
// draws is re-read from the Service after each change.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc
	theme  theme.Theme
	fill   string

	view   view
	mode   mode
	width  int
	height int

	tasks     []task.Task
	grid      chart.Grid
	row       int
	col       int
	scroll    int
	input     textinput.Model
	editID    int
	editField task.Field

	increments []increment.Increment
	phases     []chart.Phase
	cursor     int
	form       *form
	confirm    confirmAction
	confirmID  int

	help      *help.Model
	status    string
	statusErr bool

	changes     chan app.Change
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
	closed      bool
}

// New creates a board backed by svc and subscribes to its changes.
func New(svc *app.Service, opts Options) *Model {
	fill := opts.Fill
	if fill == "" {
		fill = store.DefaultFillColor
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		svc:     svc,
		ctx:     ctx,
		cancel:  cancel,
		theme:   theme.Default(),
		fill:    fill,
		input:   ti,
		scroll:  svc.ScrollPosition(),
		changes: make(chan app.Change, 16),
	}
	svc.SetNotify(func(c app.Change) {
		select {
		case m.changes <- c:
		default:
			// A queued change already triggers a full refresh.
		}
	})
	m.refresh()
	return m
}

// Init starts watching the store and the service.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(startWatchCmd(m.ctx, m.svc), m.waitForChange())
}

// refresh re-reads everything the board draws.
func (m *Model) refresh() {
	m.tasks = m.svc.Tasks()
	m.grid = m.svc.Grid()
	m.increments = m.svc.Increments()
	m.phases = m.svc.Timeline()

	m.row = clamp(m.row, 0, len(m.tasks)-1)
	m.cursor = clamp(m.cursor, 0, len(m.increments)-1)
	if m.mode == modeEdit {
		if _, ok := m.svc.Task(m.editID); !ok {
			m.input.Blur()
			m.mode = modeNormal
			m.setError("the task being edited was removed")
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help != nil {
			m.help.SetSize(m.helpSize())
		}
		m.setScroll(m.scroll)
	case tea.BlurMsg:
		m.svc.FlushPendingEdits()
	case changeMsg:
		m.refresh()
		cmds = append(cmds, m.waitForChange())
	case watchStartedMsg:
		if msg.err != nil {
			m.setError("watch: " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.svc.Reload(m.ctx)
		m.refresh()
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		if !m.closed {
			cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
		}
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	default:
		if m.mode == modeHelp && m.help != nil {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	var sections []string
	sections = append(sections, m.renderTabs(), "")

	switch m.mode {
	case modeHelp:
		if m.help != nil {
			sections = append(sections, m.help.View())
		}
	case modeForm:
		sections = append(sections, m.renderForm())
	case modeConfirm:
		sections = append(sections, m.renderConfirm())
	default:
		switch m.view {
		case viewGantt:
			sections = append(sections, m.renderTaskTable(), "", m.renderChart())
		case viewIncrements:
			sections = append(sections, m.renderIncrements())
		}
	}

	sections = append(sections, "", m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTabs() string {
	names := []string{"ガントチャート", "インクリメンタル"}
	var tabs []string
	for i, name := range names {
		if view(i) == m.view {
			tabs = append(tabs, m.theme.Tabs.Active.Render(name))
		} else {
			tabs = append(tabs, m.theme.Tabs.Inactive.Render(name))
		}
	}
	return strings.Join(tabs, m.theme.Tabs.Gap.Render("│"))
}

func (m *Model) renderFooter() string {
	var lines []string
	if m.status != "" {
		if m.statusErr {
			lines = append(lines, m.theme.Footer.Error.Render(m.status))
		} else {
			lines = append(lines, m.theme.Footer.Status.Render(m.status))
		}
	}
	lines = append(lines, m.theme.Footer.Help.Render(m.hint()))
	return strings.Join(lines, "\n")
}

func (m *Model) hint() string {
	switch m.mode {
	case modeEdit:
		if m.editField == task.FieldEnd {
			return "enter/esc: commit  (earliest end " + m.svc.EndMin(m.editID).String() + ")"
		}
		return "enter/esc: commit"
	case modeForm:
		return "tab: next field  ctrl+s: save  esc: cancel"
	case modeConfirm:
		return "y: yes  n/esc: no"
	case modeHelp:
		return "?/esc: close help"
	}
	if m.view == viewIncrements {
		up, down := "K: up", "J: down"
		if !m.svc.CanMoveUp() {
			up = "-"
		}
		if !m.svc.CanMoveDown() {
			down = "-"
		}
		return "space: select  " + up + "  " + down + "  a: add  e: edit  x: delete  tab: gantt  ?: help  q: quit"
	}
	return "enter: edit  a: add  x: delete  [ ]: scroll  tab: increments  ?: help  q: quit"
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) helpSize() (int, int) {
	w, h := m.width-2, m.height-6
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 20
	}
	return w, h
}

// Close commits any open edit, flushes staged edits and stops watching. It is
// safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.mode == modeEdit {
		m.commitEdit()
	}
	m.svc.FlushPendingEdits()
	m.svc.SetNotify(nil)
	m.stopWatch()
	m.cancel()
}

// Run launches the board and blocks until it exits or ctx is done.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m := New(svc, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted from outside; Close still flushes.
		return nil
	}
	return err
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
