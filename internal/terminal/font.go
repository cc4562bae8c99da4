package terminal

import (
	"fmt"
	"strconv"
)

// Font describes the typeface used to draw an instance. CharWidth and
// CharHeight are pixel metrics and stay zero when the host cannot measure them.
type Font struct {
	Family     string
	Size       float64
	LineHeight float64
	CharWidth  int
	CharHeight int
}

// String renders a short human readable description.
func (f Font) String() string {
	if f.Family == "" {
		return "default"
	}
	out := fmt.Sprintf("%s %spt", f.Family, strconv.FormatFloat(f.Size, 'f', -1, 64))
	if f.CharWidth > 0 && f.CharHeight > 0 {
		out += fmt.Sprintf(" (%dx%dpx)", f.CharWidth, f.CharHeight)
	}
	return out
}
