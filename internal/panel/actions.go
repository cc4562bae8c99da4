package panel

import (
	"fmt"
	"strconv"
	"strings"
)

// Action identifiers, in the order Actions returns them.
const (
	ActionSwitch = "terminal.switch"
	ActionNew    = "terminal.new"
	ActionKill   = "terminal.kill"
)

// Action is a command exposed by the panel to the host's action bar.
type Action struct {
	ID    string
	Label string
	Key   string

	run func(arg string) error
}

// Run executes the action. The switch action expects the chosen entry of
// its ActionItem as arg; the others ignore it.
func (a *Action) Run(arg string) error {
	if a == nil || a.run == nil {
		return nil
	}
	return a.run(arg)
}

// ActionItem is a custom widget for an action, such as a select box.
type ActionItem interface {
	Entries() []string
	Selected() int
}

// SwitchItem lists the instances as "N: title" entries.
type SwitchItem struct {
	entries  []string
	selected int
}

func (s *SwitchItem) Entries() []string {
	return append([]string(nil), s.entries...)
}

func (s *SwitchItem) Selected() int {
	return s.selected
}

func (c *Controller) buildActions() []*Action {
	return []*Action{
		{
			ID:    ActionSwitch,
			Label: "Switch terminal",
			Key:   "ctrl+n/ctrl+p",
			run: func(arg string) error {
				index, err := parseSwitchEntry(arg)
				if err != nil {
					return err
				}
				if index < 0 || index >= c.registry.Len() {
					return nil
				}
				c.oracle.SetActiveTerminal(index)
				return nil
			},
		},
		{
			ID:    ActionNew,
			Label: "New terminal",
			Key:   "ctrl+t",
			run: func(string) error {
				return c.oracle.CreateNew()
			},
		},
		{
			ID:    ActionKill,
			Label: "Kill terminal",
			Key:   "ctrl+w",
			run: func(string) error {
				return c.CloseActiveTerminal()
			},
		},
	}
}

func switchEntry(index int, title string) string {
	return fmt.Sprintf("%d: %s", index+1, title)
}

// parseSwitchEntry returns the zero based index encoded in an entry.
func parseSwitchEntry(entry string) (int, error) {
	head, _, _ := strings.Cut(entry, ":")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return -1, fmt.Errorf("invalid terminal entry %q", entry)
	}
	return n - 1, nil
}
