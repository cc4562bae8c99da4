package theme

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// SelectionOpacity is the alpha used for the background of selected text.
const SelectionOpacity = 0.996

const selectorPrefix = ".panel.integrated-terminal .xterm"

// HexToRGBA converts a #rrggbb color into a css rgba() expression.
func HexToRGBA(hex string, alpha float64) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", err
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64)), nil
}

// GenerateStylesheet renders the css rules for every ANSI slot of the palette.
// Output depends only on the palette, so repeated calls are byte-identical.
func GenerateStylesheet(p Palette) (string, error) {
	var b strings.Builder
	for i, color := range p {
		rgba, err := HexToRGBA(color, SelectionOpacity)
		if err != nil {
			return "", fmt.Errorf("palette slot %d: %w", i, err)
		}
		fmt.Fprintf(&b, "%s .xterm-color-%d { color: %s; }\n", selectorPrefix, i, color)
		fmt.Fprintf(&b, "%s .xterm-color-%d::selection { background-color: %s; }\n", selectorPrefix, i, rgba)
		fmt.Fprintf(&b, "%s .xterm-bg-color-%d { background-color: %s; }\n", selectorPrefix, i, color)
		fmt.Fprintf(&b, "%s .xterm-bg-color-%d::selection { color: %s; }\n", selectorPrefix, i, color)
	}
	return b.String(), nil
}

// Sheet is the single stylesheet element owned by a panel. Only the UI
// goroutine touches it.
type Sheet struct {
	text     string
	palette  Palette
	revision int
}

// NewSheet returns an empty stylesheet.
func NewSheet() *Sheet {
	return &Sheet{}
}

// Replace overwrites the full stylesheet contents.
func (s *Sheet) Replace(text string, p Palette) {
	s.text = text
	s.palette = p.Clone()
	s.revision++
}

// Text returns the current css.
func (s *Sheet) Text() string {
	return s.text
}

// Palette returns the palette the current css was generated from.
func (s *Sheet) Palette() Palette {
	return s.palette.Clone()
}

// Revision counts Replace calls.
func (s *Sheet) Revision() int {
	return s.revision
}
