package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the host handles before anything reaches a
// terminal.
type KeyMap struct {
	New     key.Binding
	Kill    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Actions key.Binding
	Toggle  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap uses control chords that shells rarely need.
var DefaultKeyMap = KeyMap{
	New: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("^t", "new"),
	),
	Kill: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("^w", "kill"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("^n", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("^p", "prev"),
	),
	Actions: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("^g", "actions"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("ctrl+\\"),
		key.WithHelp("^\\", "hide/show"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("^q", "quit"),
	),
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Kill, k.Next, k.Prev, k.Actions, k.Toggle, k.Quit}
}
