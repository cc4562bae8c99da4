package events

import "github.com/atomicstack/tmux-terminal-panel/internal/logging"

type TerminalTracer struct{}

var Terminal = TerminalTracer{}

func (TerminalTracer) Spawn(shell string, pid int) {
	logging.Trace("terminal.spawn", map[string]interface{}{"shell": shell, "pid": pid})
}

func (TerminalTracer) Create(id string, index int) {
	logging.Trace("terminal.create", map[string]interface{}{"id": id, "index": index})
}

func (TerminalTracer) Close(index int) {
	logging.Trace("terminal.close", map[string]interface{}{"index": index})
}

func (TerminalTracer) Switch(index int) {
	logging.Trace("terminal.switch", map[string]interface{}{"index": index})
}

func (TerminalTracer) Exit(id, title string) {
	logging.Trace("terminal.exit", map[string]interface{}{"id": id, "title": title})
}

func (TerminalTracer) Layout(id string, width, height int) {
	logging.Trace("terminal.layout", map[string]interface{}{"id": id, "width": width, "height": height})
}
