package panel

import (
	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// Instance is a live terminal session as seen by the panel.
type Instance interface {
	ID() string
	Title() string
	Layout(terminal.Dimension)
	SetFont(terminal.Font)
	SetCursorBlink(bool)
	ToggleVisibility(bool)
	Visible() bool
	Focus(bool)
	DispatchEvent(tea.KeyMsg) error
	Dispose()
}

// PaletteSetter is implemented by instances that draw with palette colors.
type PaletteSetter interface {
	SetPalette(theme.Palette)
}

// Oracle owns the authoritative session list and the active index.
type Oracle interface {
	// ActiveTerminalIndex returns the active position or -1 for none.
	ActiveTerminalIndex() int
	CreateNew() error
	SetActiveTerminal(index int)
	// Release drops the session at index after the panel removed it.
	Release(index int)
	Hide()
	Focus()
	InitConfigHelper(container *terminal.Container)
}

// ConfigHelper answers presentation queries and reports changes.
type ConfigHelper interface {
	Theme(themeID string) (theme.Palette, error)
	ThemeID() string
	Font() terminal.Font
	CursorBlink() bool
	OnDidThemeChange(func(themeID string)) *settings.Subscription
	OnDidUpdateConfiguration(func()) *settings.Subscription
}

// InstanceFactory builds an instance around a raw process handle.
type InstanceFactory func(proc terminal.Process, container *terminal.Container) Instance

// Lifecycle is the contract the host drives a panel through.
type Lifecycle interface {
	Create(container *terminal.Container) error
	Layout(d *terminal.Dimension)
	SetVisible(visible bool) error
	Actions() []*Action
	ActionItem(a *Action) ActionItem
	Focus()
	Dispose()
}
