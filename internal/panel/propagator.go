package panel

import (
	"fmt"

	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
)

// Propagator pushes theme, font and cursor settings onto instances.
type Propagator struct {
	registry *Registry
	oracle   Oracle
	config   ConfigHelper
	sheet    *theme.Sheet
}

// NewPropagator wires a propagator to its collaborators.
func NewPropagator(registry *Registry, oracle Oracle, config ConfigHelper, sheet *theme.Sheet) *Propagator {
	return &Propagator{registry: registry, oracle: oracle, config: config, sheet: sheet}
}

// OnThemeChanged regenerates the stylesheet for themeID, or for the
// configured theme when themeID is empty.
func (p *Propagator) OnThemeChanged(themeID string) error {
	if themeID == "" {
		themeID = p.config.ThemeID()
	}
	palette, err := p.config.Theme(themeID)
	if err != nil {
		return err
	}
	css, err := theme.GenerateStylesheet(palette)
	if err != nil {
		return fmt.Errorf("theme %s: %w", themeID, err)
	}
	p.sheet.Replace(css, palette)
	p.registry.Each(func(_ int, inst Instance) {
		if setter, ok := inst.(PaletteSetter); ok {
			setter.SetPalette(palette)
		}
	})
	events.Theme.Apply(themeID, len(palette))
	return nil
}

// OnConfigurationChanged re-reads font and cursor blink. The font goes to
// the active instance only; cursor blink goes to all of them.
func (p *Propagator) OnConfigurationChanged() {
	p.ApplyFont()
	blink := p.config.CursorBlink()
	p.registry.Each(func(_ int, inst Instance) {
		inst.SetCursorBlink(blink)
	})
}

// ApplyFont sets the configured font on the active instance, if any.
func (p *Propagator) ApplyFont() {
	inst, ok := p.active()
	if !ok {
		return
	}
	inst.SetFont(p.config.Font())
}

func (p *Propagator) active() (Instance, bool) {
	if p.registry.Len() == 0 {
		return nil, false
	}
	return p.registry.At(p.oracle.ActiveTerminalIndex())
}
