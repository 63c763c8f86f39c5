package board

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/store"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// changeMsg is delivered when the service changed the board, including
// changes made from the debounce timer.
type changeMsg struct {
	change app.Change
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) waitForChange() tea.Cmd {
	ch, done := m.changes, m.ctx.Done()
	return func() tea.Msg {
		select {
		case c := <-ch:
			return changeMsg{change: c}
		case <-done:
			return nil
		}
	}
}
