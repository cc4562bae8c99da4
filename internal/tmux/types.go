package tmux

import (
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// tmuxClient is the subset of the control-mode client used here.
type tmuxClient interface {
	DisplayMessage(target, format string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// PanelOptions are the @terminal-panel-* user options. Empty fields mean
// the option is unset.
type PanelOptions struct {
	Theme       string
	CursorBlink *bool
	Font        string
	FontSize    float64
}

// CellSize is the pixel size of one character cell of the client.
type CellSize struct {
	Width  int
	Height int
}
