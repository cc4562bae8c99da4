package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-terminal-panel/internal/app"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envSocketPath   = "TMUX_TERMINAL_PANEL_SOCKET"
	envWidth        = "TMUX_TERMINAL_PANEL_WIDTH"
	envHeight       = "TMUX_TERMINAL_PANEL_HEIGHT"
	envShowFooter   = "TMUX_TERMINAL_PANEL_FOOTER"
	envVerbose      = "TMUX_TERMINAL_PANEL_VERBOSE"
	envTrace        = "TMUX_TERMINAL_PANEL_TRACE"
	envLogFile      = "TMUX_TERMINAL_PANEL_LOG_FILE"
	envSettings     = "TMUX_TERMINAL_PANEL_SETTINGS"
	envShell        = "TMUX_TERMINAL_PANEL_SHELL"
	envTheme        = "TMUX_TERMINAL_PANEL_THEME"
	envKeepOpen     = "TMUX_TERMINAL_PANEL_KEEP_OPEN"
	envPollInterval = "TMUX_TERMINAL_PANEL_POLL_INTERVAL"

	defaultPollInterval = 1500
	minPollInterval     = 100 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-terminal-panel", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	settingsPath := fs.String("settings", envOrDefault(env, envSettings, ""), "path to the YAML settings file")
	shell := fs.String("shell", envOrDefault(env, envShell, ""), "shell to start in new terminals (defaults to $SHELL)")
	themeID := fs.String("theme", envOrDefault(env, envTheme, ""), "theme id overriding the settings file")
	keepOpen := fs.Bool("keep-open", envOrBool(env, envKeepOpen, false), "keep running after the last terminal exits")
	pollMillis := fs.Int("poll-interval", envOrInt(env, envPollInterval, defaultPollInterval), "settings poll interval in milliseconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	pollInterval := time.Duration(*pollMillis) * time.Millisecond
	if pollInterval < minPollInterval {
		return Config{}, fmt.Errorf("poll-interval must be >= %d (got %d)", minPollInterval.Milliseconds(), *pollMillis)
	}

	cfg := Config{
		App: app.Config{
			SocketPath:   *socket,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			SettingsPath: strings.TrimSpace(*settingsPath),
			Shell:        strings.TrimSpace(*shell),
			Theme:        strings.TrimSpace(*themeID),
			KeepOpen:     *keepOpen,
			PollInterval: pollInterval,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"socket":       *socket,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"settings":     *settingsPath,
			"shell":        *shell,
			"theme":        *themeID,
			"keepOpen":     strconv.FormatBool(*keepOpen),
			"pollInterval": strconv.Itoa(*pollMillis),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present. A theme
// override must name a built-in theme unless a settings file may define it.
func Validate(cfg Config) error {
	id := cfg.App.Theme
	if id == "" || cfg.App.SettingsPath != "" {
		return nil
	}
	if _, ok := theme.Builtin(id); !ok {
		return fmt.Errorf("unknown theme %q (built-in themes: %s)", id, strings.Join(theme.BuiltinIDs(), ", "))
	}
	return nil
}
