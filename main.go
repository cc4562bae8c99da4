package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/tmux-terminal-panel/internal/app"
	"github.com/atomicstack/tmux-terminal-panel/internal/config"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg, os.Getenv))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records what the panel will start with: where
// settings come from, which shell new terminals get and how the popup is
// sized.
func startupTracePayload(cfg config.Config, getenv func(string) string) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	return map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"settings": settingsSource(cfg.App.SettingsPath),
		"shell":    shellChoice(cfg.App.Shell, getenv),
		"theme":    themeChoice(cfg.App.Theme),
		"keepOpen": cfg.App.KeepOpen,
		"poll":     cfg.App.PollInterval.String(),
		"viewport": viewportSize(cfg.App),
	}
}

type settingsInfo struct {
	Path   string `json:"path,omitempty"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// settingsSource resolves the settings path the watcher will poll. A missing
// file is not an error: defaults apply until it appears.
func settingsSource(path string) settingsInfo {
	if path == "" {
		return settingsInfo{}
	}
	info := settingsInfo{Path: path}
	if abs, err := filepath.Abs(path); err == nil {
		info.Path = abs
	}
	switch _, err := os.Stat(info.Path); {
	case err == nil:
		info.Exists = true
	case !os.IsNotExist(err):
		info.Error = err.Error()
	}
	return info
}

type shellInfo struct {
	Shell  string `json:"shell"`
	Source string `json:"source"`
}

// shellChoice mirrors the fallback order used when spawning terminals.
func shellChoice(flagShell string, getenv func(string) string) shellInfo {
	if flagShell != "" {
		return shellInfo{Shell: flagShell, Source: "flag"}
	}
	if env := getenv("SHELL"); env != "" {
		return shellInfo{Shell: env, Source: "SHELL"}
	}
	return shellInfo{Shell: "/bin/sh", Source: "default"}
}

func themeChoice(override string) string {
	if override == "" {
		return "settings"
	}
	return override
}

type viewportInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

// viewportSize reports the size the panel will lay out to: the configured
// one, else the size of stdout when it is a terminal.
func viewportSize(cfg app.Config) viewportInfo {
	if cfg.Width > 0 && cfg.Height > 0 {
		return viewportInfo{Width: cfg.Width, Height: cfg.Height, Source: "config"}
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			return viewportInfo{Width: w, Height: h, Source: "tty"}
		}
	}
	return viewportInfo{Width: cfg.Width, Height: cfg.Height, Source: "window"}
}
