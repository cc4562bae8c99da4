package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-terminal-panel/internal/backend"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	"github.com/atomicstack/tmux-terminal-panel/internal/tmux"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		if evt.Kind == backend.KindSettings {
			events.Config.ReloadError(evt.Err)
			m.setError(fmt.Errorf("settings: %w", evt.Err))
			return
		}
		// tmux may be unreachable when running outside a popup; keep the
		// values from the last successful poll.
		logging.Trace("backend.error", map[string]interface{}{"kind": evt.Kind.String(), "error": evt.Err.Error()})
		return
	}

	switch data := evt.Data.(type) {
	case settings.Settings:
		m.fileSettings = data
		m.reloadSettings()
	case tmux.PanelOptions:
		m.tmuxOptions = settings.Overrides{
			Theme:       data.Theme,
			CursorBlink: data.CursorBlink,
			FontFamily:  data.Font,
			FontSize:    data.FontSize,
		}
		m.reloadSettings()
	case tmux.CellSize:
		if c := m.panel.Container(); c != nil {
			c.SetCellSize(data.Width, data.Height)
			m.panel.RefreshFont()
		}
	}
}

// effectiveSettings layers the file, the tmux user options and the command
// line, later layers winning.
func (m *Model) effectiveSettings() settings.Settings {
	return m.fileSettings.With(m.tmuxOptions).With(m.cliOverrides)
}

func (m *Model) reloadSettings() {
	if m.store == nil {
		return
	}
	next := m.effectiveSettings()
	if err := next.Validate(); err != nil {
		events.Config.ReloadError(err)
		m.setError(err)
		return
	}
	changes := m.store.Apply(next)
	if len(changes) == 0 {
		return
	}
	events.Config.Update(changes)
	m.restyle()
	if m.errMsg != "" && m.backendState[backend.KindSettings] == nil {
		m.errMsg = ""
	}
}

func waitForSignal(ch <-chan terminal.Signal) tea.Cmd {
	return func() tea.Msg {
		sig, ok := <-ch
		if !ok {
			return signalsClosedMsg{}
		}
		return signalMsg{signal: sig}
	}
}

type signalMsg struct {
	signal terminal.Signal
}

type signalsClosedMsg struct{}

func (m *Model) handleSignalMsg(msg tea.Msg) tea.Cmd {
	sigMsg, ok := msg.(signalMsg)
	if !ok {
		return nil
	}
	if sigMsg.signal.Kind == terminal.SignalExit && sigMsg.signal.Instance != nil {
		m.panel.HandleInstanceExit(sigMsg.signal.Instance)
	}
	if m.signals != nil && !m.quitting {
		return waitForSignal(m.signals)
	}
	return nil
}

func (m *Model) handleSignalsClosedMsg(tea.Msg) tea.Cmd {
	m.signals = nil
	return nil
}
