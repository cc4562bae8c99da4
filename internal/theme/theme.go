package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the panel chrome.
type Styles struct {
	TabBar          *lipgloss.Style
	Tab             *lipgloss.Style
	ActiveTab       *lipgloss.Style
	Placeholder     *lipgloss.Style
	Error           *lipgloss.Style
	Info            *lipgloss.Style
	Footer          *lipgloss.Style
	PickerTitle     *lipgloss.Style
	PickerItem      *lipgloss.Style
	PickerSelected  *lipgloss.Style
	PickerIndicator *lipgloss.Style
	Cursor          *lipgloss.Style
}

var defaultStyles = Styles{
	TabBar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	PickerTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PickerItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PickerSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	PickerIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used when no palette is loaded.
func Default() *Styles {
	return &defaultStyles
}

// FromPalette derives the chrome styles from an ANSI palette. Slots that are
// missing keep the default colors.
func FromPalette(p Palette) *Styles {
	s := defaultStyles
	if fg, bg := p.Slot(15), p.Slot(4); fg != "" && bg != "" {
		s.ActiveTab = ptr(s.ActiveTab.Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg)))
		s.Cursor = ptr(s.Cursor.Foreground(lipgloss.Color(p.Slot(0))).Background(lipgloss.Color(bg)))
		s.PickerIndicator = ptr(s.PickerIndicator.Foreground(lipgloss.Color(bg)))
	}
	if fg := p.Slot(7); fg != "" {
		s.Tab = ptr(s.Tab.Foreground(lipgloss.Color(fg)))
		s.PickerItem = ptr(s.PickerItem.Foreground(lipgloss.Color(fg)))
	}
	if fg := p.Slot(8); fg != "" {
		s.Footer = ptr(s.Footer.Foreground(lipgloss.Color(fg)))
		s.Placeholder = ptr(s.Placeholder.Foreground(lipgloss.Color(fg)))
	}
	if fg := p.Slot(9); fg != "" {
		s.Error = ptr(s.Error.Foreground(lipgloss.Color(fg)))
	}
	return &s
}

// SlotStyles returns a foreground style per palette slot.
func SlotStyles(p Palette) []lipgloss.Style {
	out := make([]lipgloss.Style, len(p))
	for i, color := range p {
		out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return out
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
