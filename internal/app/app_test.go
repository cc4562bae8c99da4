package app

import (
	"errors"
	"testing"

	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	tea "github.com/charmbracelet/bubbletea"
)

func TestSpawnOptionsFollowSettingsAndContainer(t *testing.T) {
	s := settings.Defaults()
	s.Shell = "/bin/zsh"
	s.ShellArgs = []string{"-l"}
	store := settings.NewStore(s)
	container := terminal.NewContainer()
	container.SetSize(terminal.Dimension{Width: 100, Height: 30})

	opts := spawnOptions(store, container)()
	if opts.Shell != "/bin/zsh" || len(opts.Args) != 1 || opts.Args[0] != "-l" {
		t.Fatalf("unexpected shell options %+v", opts)
	}
	if opts.Cols != 100 || opts.Rows != 30 {
		t.Fatalf("unexpected size %dx%d", opts.Cols, opts.Rows)
	}

	next := store.Current()
	next.Shell = "/bin/bash"
	store.Apply(next)
	if got := spawnOptions(store, container)().Shell; got != "/bin/bash" {
		t.Fatalf("later shells should follow settings, got %q", got)
	}
}

func TestStopReason(t *testing.T) {
	if stopReason(nil) != "quit" {
		t.Fatalf("unexpected reason for nil")
	}
	if stopReason(tea.ErrProgramKilled) != "killed" {
		t.Fatalf("unexpected reason for kill")
	}
	if stopReason(errors.New("boom")) != "boom" {
		t.Fatalf("unexpected reason for error")
	}
}

func TestRunRejectsUnknownTheme(t *testing.T) {
	err := Run(Config{SocketPath: "/nonexistent.sock", Theme: "neon"})
	if !errors.Is(err, settings.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}
