package theme

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of #rrggbb colors. Position i is ANSI slot i.
type Palette []string

// Default theme identifiers shipped with the binary.
const (
	Dark      = "dark"
	Light     = "light"
	Solarized = "solarized"
)

var builtin = map[string]Palette{
	Dark: {
		"#000000", "#cd3131", "#0dbc79", "#e5e510",
		"#2472c8", "#bc3fbc", "#11a8cd", "#e5e5e5",
		"#666666", "#f14c4c", "#23d18b", "#f5f543",
		"#3b8eea", "#d670d6", "#29b8db", "#e5e5e5",
	},
	Light: {
		"#000000", "#cd3131", "#00bc00", "#949800",
		"#0451a5", "#bc05bc", "#0598bc", "#555555",
		"#666666", "#cd3131", "#14ce14", "#b5ba00",
		"#0451a5", "#bc05bc", "#0598bc", "#a5a5a5",
	},
	Solarized: {
		"#073642", "#dc322f", "#859900", "#b58900",
		"#268bd2", "#d33682", "#2aa198", "#eee8d5",
		"#002b36", "#cb4b16", "#586e75", "#657b83",
		"#839496", "#6c71c4", "#93a1a1", "#fdf6e3",
	},
}

// Builtin returns a copy of a shipped palette.
func Builtin(id string) (Palette, bool) {
	p, ok := builtin[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// BuiltinIDs lists the shipped theme identifiers in sorted order.
func BuiltinIDs() []string {
	ids := make([]string, 0, len(builtin))
	for id := range builtin {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy of the palette.
func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	dup := make(Palette, len(p))
	copy(dup, p)
	return dup
}

// Slot returns the color at position i, or "" when out of range.
func (p Palette) Slot(i int) string {
	if i < 0 || i >= len(p) {
		return ""
	}
	return p[i]
}

// Validate reports the first entry that is not a parsable hex color.
func (p Palette) Validate() error {
	for i, entry := range p {
		if _, err := colorful.Hex(entry); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}
	return nil
}

// Equal reports whether both palettes hold the same colors in the same order.
func (p Palette) Equal(other Palette) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
