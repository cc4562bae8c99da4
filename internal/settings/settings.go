// Package settings holds the presentation settings of the panel: theme,
// font, cursor blink and shell. Settings come from a YAML file and may be
// overridden by command line flags and tmux user options.
package settings

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTheme is returned when a theme id resolves to no palette.
var ErrUnknownTheme = errors.New("unknown theme")

// Settings is the decoded form of the settings file.
type Settings struct {
	Theme       string              `yaml:"theme"`
	Themes      map[string][]string `yaml:"themes,omitempty"`
	Font        Font                `yaml:"font"`
	CursorBlink bool                `yaml:"cursorBlink"`
	Shell       string              `yaml:"shell,omitempty"`
	ShellArgs   []string            `yaml:"shellArgs,omitempty"`
	Scrollback  int                 `yaml:"scrollback,omitempty"`
}

// Font is the font section of the settings file.
type Font struct {
	Family     string  `yaml:"family"`
	Size       float64 `yaml:"size"`
	LineHeight float64 `yaml:"lineHeight"`
}

// Overrides replace individual settings when set.
type Overrides struct {
	Theme       string
	CursorBlink *bool
	FontFamily  string
	FontSize    float64
	Shell       string
}

// Defaults returns the settings used when no file is present.
func Defaults() Settings {
	return Settings{
		Theme: theme.Dark,
		Font: Font{
			Family:     "monospace",
			Size:       12,
			LineHeight: 1.2,
		},
		CursorBlink: true,
		Scrollback:  2000,
	}
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	s.normalise()
	return s, nil
}

// LoadFile reads a settings file. An empty path or a missing file yields the
// defaults.
func LoadFile(path string) (Settings, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Marshal renders the settings as YAML.
func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func (s *Settings) normalise() {
	s.Theme = strings.TrimSpace(s.Theme)
	if s.Theme == "" {
		s.Theme = theme.Dark
	}
	if s.Font.Size <= 0 {
		s.Font.Size = Defaults().Font.Size
	}
	if s.Font.LineHeight <= 0 {
		s.Font.LineHeight = Defaults().Font.LineHeight
	}
	if s.Scrollback <= 0 {
		s.Scrollback = Defaults().Scrollback
	}
}

// With applies overrides and returns the result.
func (s Settings) With(o Overrides) Settings {
	if v := strings.TrimSpace(o.Theme); v != "" {
		s.Theme = v
	}
	if o.CursorBlink != nil {
		s.CursorBlink = *o.CursorBlink
	}
	if v := strings.TrimSpace(o.FontFamily); v != "" {
		s.Font.Family = v
	}
	if o.FontSize > 0 {
		s.Font.Size = o.FontSize
	}
	if v := strings.TrimSpace(o.Shell); v != "" {
		s.Shell = v
	}
	return s
}

// Palette resolves a theme id. Palettes from the settings file shadow the
// built-in ones.
func (s Settings) Palette(id string) (theme.Palette, error) {
	if colors, ok := s.Themes[id]; ok {
		return theme.Palette(colors).Clone(), nil
	}
	if p, ok := theme.Builtin(id); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, id)
}

// ThemeIDs lists every resolvable theme id.
func (s Settings) ThemeIDs() []string {
	seen := make(map[string]struct{})
	for _, id := range theme.BuiltinIDs() {
		seen[id] = struct{}{}
	}
	for id := range s.Themes {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks that the active theme resolves and that every custom
// palette is well formed.
func (s Settings) Validate() error {
	if _, err := s.Palette(s.Theme); err != nil {
		return err
	}
	for id, colors := range s.Themes {
		if err := theme.Palette(colors).Validate(); err != nil {
			return fmt.Errorf("theme %s: %w", id, err)
		}
	}
	return nil
}

// Diff lists the top level fields that differ between s and other.
func (s Settings) Diff(other Settings) []string {
	var changes []string
	if s.Theme != other.Theme {
		changes = append(changes, "theme")
	}
	if !sameThemes(s.Themes, other.Themes) {
		changes = append(changes, "themes")
	}
	if s.Font != other.Font {
		changes = append(changes, "font")
	}
	if s.CursorBlink != other.CursorBlink {
		changes = append(changes, "cursorBlink")
	}
	if s.Shell != other.Shell || !sameStrings(s.ShellArgs, other.ShellArgs) {
		changes = append(changes, "shell")
	}
	if s.Scrollback != other.Scrollback {
		changes = append(changes, "scrollback")
	}
	return changes
}

func sameThemes(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for id, colors := range a {
		other, ok := b[id]
		if !ok || !sameStrings(colors, other) {
			return false
		}
	}
	return true
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
