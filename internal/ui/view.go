package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	emptyPanelText  = "no terminals (^t starts one)"
	hiddenPanelText = "panel hidden (^\\ shows it)"
)

type instanceView interface {
	View(width, height int) string
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	rows := make([]string, 0, 3)
	rows = append(rows, m.fit(m.tabBar(), width))
	rows = append(rows, m.body(width, m.bodyHeight()))
	rows = append(rows, m.fit(m.statusLine(), width))
	return strings.Join(rows, "\n")
}

func (m *Model) tabBar() string {
	titles := m.panel.Titles()
	if len(titles) == 0 {
		return m.styles.TabBar.Render("terminal panel")
	}
	active := m.service.ActiveTerminalIndex()
	tabs := make([]string, len(titles))
	for i, title := range titles {
		label := fmt.Sprintf("%d:%s", i+1, title)
		if i == active {
			tabs[i] = m.styles.ActiveTab.Render(label)
			continue
		}
		tabs[i] = m.styles.Tab.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) body(width, height int) string {
	if height <= 0 {
		return ""
	}
	var content string
	switch {
	case m.mode == ModePicker && m.picker != nil:
		content = m.pickerView(width, height)
	case !m.panel.Visible():
		content = m.styles.Placeholder.Render(hiddenPanelText)
	default:
		inst, ok := m.panel.ActiveInstance()
		if !ok {
			content = m.styles.Placeholder.Render(emptyPanelText)
			break
		}
		if v, ok := inst.(instanceView); ok {
			content = v.View(width, height)
		}
	}
	return padLines(content, width, height)
}

func (m *Model) pickerView(width, height int) string {
	p := m.picker
	lines := []string{
		m.styles.PickerTitle.Render(p.Title),
		m.filter.View(),
	}
	rows := height - len(lines)
	if rows < 1 {
		rows = 1
	}
	p.EnsureCursorVisible(rows)
	if len(p.Items) == 0 {
		msg := "(no entries)"
		if p.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", p.Filter)
		}
		lines = append(lines, m.styles.Info.Render(msg))
		return strings.Join(lines, "\n")
	}
	end := p.ViewportOffset + rows
	if end > len(p.Items) {
		end = len(p.Items)
	}
	for i := p.ViewportOffset; i < end; i++ {
		label := ansi.Truncate(p.Items[i].Label, width-2, "…")
		if i == p.Cursor {
			lines = append(lines, m.styles.PickerIndicator.Render("▌")+m.styles.PickerSelected.Render(" "+label))
			continue
		}
		lines = append(lines, m.styles.PickerItem.Render("  "+label))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	if m.errMsg != "" {
		return m.styles.Error.Render(m.errMsg)
	}
	if m.infoMsg != "" {
		return m.styles.Info.Render(m.infoMsg)
	}
	if !m.showFooter {
		return ""
	}
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Footer.Render(strings.Join(parts, "  "))
}

func (m *Model) fit(line string, width int) string {
	return ansi.Truncate(line, width, "")
}

// padLines clips content to width x height and pads it with blank rows.
func padLines(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
