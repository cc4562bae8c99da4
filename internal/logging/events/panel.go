package events

import "github.com/atomicstack/tmux-terminal-panel/internal/logging"

type PanelTracer struct{}

type ThemeTracer struct{}

type ConfigTracer struct{}

var (
	Panel  = PanelTracer{}
	Theme  = ThemeTracer{}
	Config = ConfigTracer{}
)

func (PanelTracer) Create() {
	logging.Trace("panel.create", nil)
}

func (PanelTracer) Visible(visible bool, instances int) {
	logging.Trace("panel.visible", map[string]interface{}{"visible": visible, "instances": instances})
}

func (PanelTracer) Hide() {
	logging.Trace("panel.hide", nil)
}

func (PanelTracer) Focus(index int) {
	logging.Trace("panel.focus", map[string]interface{}{"index": index})
}

func (PanelTracer) Dispose(instances int) {
	logging.Trace("panel.dispose", map[string]interface{}{"instances": instances})
}

func (ThemeTracer) Apply(themeID string, slots int) {
	logging.Trace("theme.apply", map[string]interface{}{"theme": themeID, "slots": slots})
}

func (ConfigTracer) Update(changes []string) {
	logging.Trace("config.update", map[string]interface{}{"changes": changes})
}

func (ConfigTracer) ReloadError(err error) {
	if err == nil {
		return
	}
	logging.Trace("config.reload.error", map[string]interface{}{"error": err.Error()})
}
