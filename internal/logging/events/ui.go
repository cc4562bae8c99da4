package events

import "github.com/atomicstack/tmux-terminal-panel/internal/logging"

type ActionTracer struct{}

type CommandTracer struct{}

type PickerTracer struct{}

var (
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Picker  = PickerTracer{}
)

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}

func (PickerTracer) Open(kind string, items int) {
	logging.Trace("picker.open", map[string]interface{}{"kind": kind, "items": items})
}

func (PickerTracer) Filter(kind, query string, matches int) {
	logging.Trace("picker.filter", map[string]interface{}{"kind": kind, "query": query, "matches": matches})
}

func (PickerTracer) Close(kind string, chosen int) {
	logging.Trace("picker.close", map[string]interface{}{"kind": kind, "chosen": chosen})
}
