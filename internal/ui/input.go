package ui

import (
	"github.com/atomicstack/tmux-terminal-panel/internal/logging"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/panel"
	"github.com/atomicstack/tmux-terminal-panel/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode == ModePicker {
		return m.handlePickerKey(keyMsg)
	}
	m.infoMsg = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return nil
	case key.Matches(keyMsg, m.keys.Toggle):
		if err := m.service.Toggle(); err != nil {
			m.setError(err)
		}
		m.layout()
		return nil
	case key.Matches(keyMsg, m.keys.New):
		return m.runAction(panel.ActionNew, "")
	case key.Matches(keyMsg, m.keys.Kill):
		return m.runAction(panel.ActionKill, "")
	case key.Matches(keyMsg, m.keys.Next):
		m.service.FocusNext()
		return nil
	case key.Matches(keyMsg, m.keys.Prev):
		m.service.FocusPrevious()
		return nil
	case key.Matches(keyMsg, m.keys.Actions):
		m.openActionPicker()
		return nil
	}

	if !m.panel.Visible() {
		return nil
	}
	if err := m.panel.DispatchEvent(keyMsg); err != nil {
		m.setError(err)
	}
	return nil
}

// runAction executes one of the panel's actions through the command bus.
func (m *Model) runAction(id, arg string) tea.Cmd {
	action := m.findAction(id)
	if action == nil {
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:    action.ID,
		Label: action.Label,
		Handler: func() error {
			return action.Run(arg)
		},
	})
}

func (m *Model) findAction(id string) *panel.Action {
	for _, a := range m.panel.Actions() {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if res.Err != nil {
		events.Action.Error(res.Err)
		m.setError(res.Err)
		return nil
	}
	m.errMsg = ""
	events.Action.Success(res.Label)
	if m.verbose {
		m.infoMsg = res.Label
	}
	m.layout()
	return nil
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	m.errMsg = err.Error()
}
