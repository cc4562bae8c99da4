package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.PollInterval != 1500*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.App.PollInterval)
	}
	if cfg.App.KeepOpen || cfg.App.ShowFooter || cfg.Logging.Trace {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Flags["pollInterval"] != "1500" {
		t.Fatalf("flags map missing poll interval: %v", cfg.Flags)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"TMUX_TERMINAL_PANEL_SHELL=/bin/zsh",
		"TMUX_TERMINAL_PANEL_THEME=light",
		"TMUX_TERMINAL_PANEL_KEEP_OPEN=true",
		"TMUX_TERMINAL_PANEL_WIDTH=100",
		"MALFORMED",
	}
	cfg, err := LoadArgs([]string{"--theme", "solarized", "--settings", " /tmp/panel.yaml ", "--poll-interval", "250"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Shell != "/bin/zsh" {
		t.Fatalf("shell = %q", cfg.App.Shell)
	}
	if cfg.App.Theme != "solarized" {
		t.Fatalf("theme = %q, want flag value", cfg.App.Theme)
	}
	if !cfg.App.KeepOpen || cfg.App.Width != 100 {
		t.Fatalf("env values ignored: %+v", cfg.App)
	}
	if cfg.App.SettingsPath != "/tmp/panel.yaml" {
		t.Fatalf("settings path = %q", cfg.App.SettingsPath)
	}
	if cfg.App.PollInterval != 250*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.App.PollInterval)
	}
}

func TestLoadArgsInvalidEnvFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"TMUX_TERMINAL_PANEL_HEIGHT=tall", "TMUX_TERMINAL_PANEL_FOOTER=maybe"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Height != 0 || cfg.App.ShowFooter {
		t.Fatalf("expected fallbacks, got %+v", cfg.App)
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"--width", "-1"}, want: "width"},
		{args: []string{"--height", "-3"}, want: "height"},
		{args: []string{"--poll-interval", "50"}, want: "poll-interval"},
		{args: []string{"--bogus"}, want: "bogus"},
	}
	for _, tt := range tests {
		_, err := LoadArgs(tt.args, nil)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("LoadArgs(%v) error = %v, want mention of %q", tt.args, err, tt.want)
		}
	}
}

func TestValidateTheme(t *testing.T) {
	cfg, _ := LoadArgs([]string{"--theme", "neon"}, nil)
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "neon") {
		t.Fatalf("expected unknown theme error, got %v", err)
	}
	cfg, _ = LoadArgs([]string{"--theme", "neon", "--settings", "panel.yaml"}, nil)
	if err := Validate(cfg); err != nil {
		t.Fatalf("theme may come from the settings file: %v", err)
	}
	cfg, _ = LoadArgs([]string{"--theme", "light"}, nil)
	if err := Validate(cfg); err != nil {
		t.Fatalf("built-in theme rejected: %v", err)
	}
}
