package ui

import (
	"github.com/atomicstack/tmux-terminal-panel/internal/format/table"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/panel"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
	uistate "github.com/atomicstack/tmux-terminal-panel/internal/ui/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const pickerActions = "actions"

func newFilterInput(styles *theme.Styles) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "filter"
	ti.CharLimit = 64
	applyFilterStyles(&ti, styles)
	return ti
}

func applyFilterStyles(ti *textinput.Model, styles *theme.Styles) {
	if styles.PickerTitle != nil {
		ti.PromptStyle = *styles.PickerTitle
	}
	if styles.PickerItem != nil {
		ti.TextStyle = *styles.PickerItem
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
}

// openActionPicker lists the panel actions with their key bindings.
func (m *Model) openActionPicker() {
	actions := m.panel.Actions()
	rows := make([][]string, len(actions))
	for i, a := range actions {
		rows[i] = []string{a.Label, a.Key}
	}
	labels := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
	items := make([]uistate.Item, len(actions))
	for i, a := range actions {
		items[i] = uistate.Item{ID: a.ID, Label: labels[i]}
	}
	m.openPicker(uistate.NewPicker(pickerActions, "Actions", items, 0))
}

// openSwitchPicker lists the terminals through the switch action's item.
func (m *Model) openSwitchPicker(action *panel.Action) {
	item := m.panel.ActionItem(action)
	if item == nil {
		return
	}
	entries := item.Entries()
	items := make([]uistate.Item, len(entries))
	for i, entry := range entries {
		items[i] = uistate.Item{ID: entry, Label: entry}
	}
	selected := item.Selected()
	if selected < 0 {
		selected = 0
	}
	m.openPicker(uistate.NewPicker(action.ID, action.Label, items, selected))
}

func (m *Model) openPicker(p *uistate.Picker) {
	m.picker = p
	m.mode = ModePicker
	m.filter.Reset()
	m.filter.Focus()
	events.Picker.Open(p.ID, len(p.Full))
}

func (m *Model) closePicker(chosen int) {
	if m.picker == nil {
		return
	}
	events.Picker.Close(m.picker.ID, chosen)
	m.picker = nil
	m.mode = ModeTerminal
	m.filter.Blur()
}

func (m *Model) handlePickerKey(key tea.KeyMsg) tea.Cmd {
	if m.picker == nil {
		m.mode = ModeTerminal
		return nil
	}
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closePicker(-1)
		return nil
	case tea.KeyUp, tea.KeyCtrlP:
		m.picker.MoveCursor(-1)
		return nil
	case tea.KeyDown, tea.KeyCtrlN:
		m.picker.MoveCursor(1)
		return nil
	case tea.KeyHome:
		m.picker.MoveCursorHome()
		return nil
	case tea.KeyEnd:
		m.picker.MoveCursorEnd()
		return nil
	case tea.KeyPgUp:
		m.picker.MoveCursorPageUp(m.pickerRows())
		return nil
	case tea.KeyPgDown:
		m.picker.MoveCursorPageDown(m.pickerRows())
		return nil
	case tea.KeyEnter:
		return m.choosePickerItem()
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(key)
	if value := m.filter.Value(); value != m.picker.Filter {
		m.picker.SetFilter(value)
		events.Picker.Filter(m.picker.ID, value, len(m.picker.Items))
	}
	return cmd
}

func (m *Model) choosePickerItem() tea.Cmd {
	p := m.picker
	item, ok := p.Selected()
	if !ok {
		return nil
	}
	cursor := p.Cursor
	m.closePicker(cursor)

	if p.ID == pickerActions {
		if item.ID == panel.ActionSwitch {
			m.openSwitchPicker(m.findAction(panel.ActionSwitch))
			return nil
		}
		return m.runAction(item.ID, "")
	}
	return m.runAction(p.ID, item.ID)
}

// pickerRows is the number of items the picker shows at once: the body
// minus the title and filter rows.
func (m *Model) pickerRows() int {
	rows := m.bodyHeight() - 2
	if rows < 1 {
		return 1
	}
	return rows
}
