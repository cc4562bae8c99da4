package command

import (
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler func() error
}

// Result is delivered back to the model once a request ran.
type Result struct {
	ID    string
	Label string
	Err   error
}

// Bus coordinates the execution of panel actions. Handlers touch panel
// state, so they run on the caller's goroutine; only the result is
// delivered through a Bubble Tea command.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs the request while emitting trace logs and returns a command
// yielding its Result.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	err := req.Handler()
	events.Command.Result(req.ID, req.Label, err)
	res := Result{ID: req.ID, Label: req.Label, Err: err}
	return func() tea.Msg {
		return res
	}
}
