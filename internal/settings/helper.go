package settings

import (
	"math"

	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
)

// Helper answers the panel's presentation queries from a Store. The font
// metrics depend on the container the panel is mounted in, which is known
// only once the panel has been created.
type Helper struct {
	store     *Store
	container *terminal.Container
}

// NewHelper returns a helper reading from store.
func NewHelper(store *Store) *Helper {
	return &Helper{store: store}
}

// Attach binds the helper to the panel container.
func (h *Helper) Attach(container *terminal.Container) {
	h.container = container
}

// Theme returns the palette for themeID.
func (h *Helper) Theme(themeID string) (theme.Palette, error) {
	return h.store.Current().Palette(themeID)
}

// ThemeID returns the configured theme id.
func (h *Helper) ThemeID() string {
	return h.store.Current().Theme
}

// Font returns the configured font, measured against the container when the
// host reported a cell size.
func (h *Helper) Font() terminal.Font {
	f := h.store.Current().Font
	out := terminal.Font{
		Family:     f.Family,
		Size:       f.Size,
		LineHeight: f.LineHeight,
	}
	if h.container != nil {
		if w, ht := h.container.CellSize(); w > 0 && ht > 0 {
			out.CharWidth = w
			out.CharHeight = int(math.Round(float64(ht) * f.LineHeight))
		}
	}
	return out
}

// CursorBlink returns the configured cursor blink flag.
func (h *Helper) CursorBlink() bool {
	return h.store.Current().CursorBlink
}

// OnDidThemeChange forwards to the store.
func (h *Helper) OnDidThemeChange(fn func(themeID string)) *Subscription {
	return h.store.OnDidThemeChange(fn)
}

// OnDidUpdateConfiguration forwards to the store.
func (h *Helper) OnDidUpdateConfiguration(fn func()) *Subscription {
	return h.store.OnDidUpdateConfiguration(fn)
}
