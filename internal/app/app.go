package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/tmux-terminal-panel/internal/backend"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/panel"
	"github.com/atomicstack/tmux-terminal-panel/internal/session"
	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	"github.com/atomicstack/tmux-terminal-panel/internal/tmux"
	"github.com/atomicstack/tmux-terminal-panel/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	SettingsPath string
	Shell        string
	Theme        string
	KeepOpen     bool
	PollInterval time.Duration
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	base, err := settings.LoadFile(cfg.SettingsPath)
	if err != nil {
		return err
	}
	overrides := settings.Overrides{Theme: cfg.Theme, Shell: cfg.Shell}
	initial := base.With(overrides)
	if err := initial.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	store := settings.NewStore(initial)
	helper := settings.NewHelper(store)
	notifier := terminal.NewNotifier(64)
	defer notifier.Close()

	container := terminal.NewContainer()
	if size, err := tmux.ClientCellSize(socketPath); err == nil {
		container.SetCellSize(size.Width, size.Height)
	} else {
		logging.Trace("app.cell_size", map[string]interface{}{"error": err.Error()})
	}

	svc := session.New(terminal.Spawn, helper, spawnOptions(store, container))
	ctrl := panel.NewController(svc, helper, panel.WithInstanceFactory(instanceFactory(store, notifier)))

	sources := []backend.Source{
		backend.TmuxOptions(socketPath),
		backend.TmuxCellSize(socketPath),
	}
	if cfg.SettingsPath != "" {
		sources = append(sources, backend.SettingsFile(cfg.SettingsPath))
	}
	watcher := backend.NewWatcher(cfg.PollInterval, sources...)
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		KeepOpen:   cfg.KeepOpen,
		Panel:      ctrl,
		Service:    svc,
		Store:      store,
		Base:       base,
		Overrides:  overrides,
		Watcher:    watcher,
		Signals:    notifier.Signals(),
	})
	svc.Attach(ctrl, model)
	defer ctrl.Dispose()

	if err := model.Start(container); err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	events.App.Stop(stopReason(err))
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// instanceFactory binds every new instance to the notifier so reader
// goroutines report through the UI loop.
func instanceFactory(store *settings.Store, notifier *terminal.Notifier) panel.InstanceFactory {
	return func(proc terminal.Process, container *terminal.Container) panel.Instance {
		opts := notifier.Bind(terminal.Options{Scrollback: store.Current().Scrollback})
		return terminal.New(proc, container, opts)
	}
}

// spawnOptions starts shells in the current directory sized to the panel.
func spawnOptions(store *settings.Store, container *terminal.Container) func() terminal.SpawnOptions {
	return func() terminal.SpawnOptions {
		s := store.Current()
		size := container.Size()
		dir, _ := os.Getwd()
		return terminal.SpawnOptions{
			Shell: s.Shell,
			Args:  append([]string(nil), s.ShellArgs...),
			Env:   []string{"TMUX_TERMINAL_PANEL=1"},
			Dir:   dir,
			Cols:  size.Width,
			Rows:  size.Height,
		}
	}
}

func stopReason(err error) string {
	switch {
	case err == nil:
		return "quit"
	case errors.Is(err, tea.ErrProgramKilled):
		return "killed"
	default:
		return err.Error()
	}
}
