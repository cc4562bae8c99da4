package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/tmux-terminal-panel/internal/app"
	"github.com/atomicstack/tmux-terminal-panel/internal/config"
)

func noEnv(string) string { return "" }

func TestStartupTracePayloadCarriesPanelContext(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "panel.yaml")
	if err := os.WriteFile(settingsPath, []byte("theme: light\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	cfg := config.Config{
		App: app.Config{
			SocketPath:   "socket-path",
			Width:        80,
			Height:       24,
			SettingsPath: settingsPath,
			Shell:        "/bin/zsh",
			Theme:        "solarized",
			KeepOpen:     true,
			PollInterval: 1500 * time.Millisecond,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"socket":   "socket-path",
			"settings": settingsPath,
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg, noEnv)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["socket"] != "socket-path" || flags["trace"] != true || flags["logFile"] != "trace.log" {
		t.Fatalf("unexpected flags %v", flags)
	}
	settings, ok := payload["settings"].(settingsInfo)
	if !ok || settings.Path != settingsPath || !settings.Exists {
		t.Fatalf("unexpected settings info %#v", payload["settings"])
	}
	if shell := payload["shell"].(shellInfo); shell.Shell != "/bin/zsh" || shell.Source != "flag" {
		t.Fatalf("unexpected shell info %#v", shell)
	}
	if payload["theme"] != "solarized" {
		t.Fatalf("expected theme override, got %v", payload["theme"])
	}
	if payload["keepOpen"] != true {
		t.Fatalf("expected keepOpen true, got %v", payload["keepOpen"])
	}
	if payload["poll"] != "1.5s" {
		t.Fatalf("expected poll interval 1.5s, got %v", payload["poll"])
	}
	if vp := payload["viewport"].(viewportInfo); vp.Width != 80 || vp.Height != 24 || vp.Source != "config" {
		t.Fatalf("unexpected viewport %#v", vp)
	}
}

func TestSettingsSourceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	info := settingsSource(path)
	if info.Exists || info.Error != "" || info.Path != path {
		t.Fatalf("unexpected info %#v", info)
	}
	if got := settingsSource(""); got != (settingsInfo{}) {
		t.Fatalf("expected empty info without a path, got %#v", got)
	}
}

func TestShellChoiceFallbacks(t *testing.T) {
	env := func(key string) string {
		if key == "SHELL" {
			return "/usr/bin/fish"
		}
		return ""
	}
	if got := shellChoice("", env); got.Shell != "/usr/bin/fish" || got.Source != "SHELL" {
		t.Fatalf("unexpected shell %#v", got)
	}
	if got := shellChoice("", noEnv); got.Shell != "/bin/sh" || got.Source != "default" {
		t.Fatalf("unexpected shell %#v", got)
	}
}

func TestThemeChoice(t *testing.T) {
	if themeChoice("") != "settings" || themeChoice("dark") != "dark" {
		t.Fatalf("unexpected theme choice")
	}
}
