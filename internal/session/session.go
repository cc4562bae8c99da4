// Package session owns the list of shell processes behind the terminal
// panel and the index of the active one. The panel asks it for the active
// index after every mutation; it never tracks that index itself.
package session

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
)

// NoActive is the active index of an empty service.
const NoActive = -1

// ErrNoPanel is returned by operations that need an attached panel.
var ErrNoPanel = errors.New("no panel attached")

// Panel is the part of the terminal panel the service drives.
type Panel interface {
	CreateNewTerminalInstance(proc terminal.Process) error
	SetActiveTerminal(index int)
	CloseTerminal(index int) error
	SetVisible(visible bool) error
	Visible() bool
	Focus()
}

// Host is the program embedding the panel.
type Host interface {
	HidePanel()
	FocusPanel()
}

// Service is the terminal oracle. It runs on the UI goroutine.
type Service struct {
	spawn   terminal.Spawner
	helper  *settings.Helper
	options func() terminal.SpawnOptions

	panel Panel
	host  Host

	procs  []terminal.Process
	active int
}

// New returns a service that starts shells with spawn. options is consulted
// for every new shell so settings changes apply to later terminals.
func New(spawn terminal.Spawner, helper *settings.Helper, options func() terminal.SpawnOptions) *Service {
	if spawn == nil {
		spawn = terminal.Spawn
	}
	if options == nil {
		options = func() terminal.SpawnOptions { return terminal.SpawnOptions{} }
	}
	return &Service{spawn: spawn, helper: helper, options: options, active: NoActive}
}

// Attach connects the panel and its host.
func (s *Service) Attach(panel Panel, host Host) {
	s.panel = panel
	s.host = host
}

// ActiveTerminalIndex returns the active index or NoActive.
func (s *Service) ActiveTerminalIndex() int {
	return s.active
}

// CreateNew spawns a shell, registers it as active and hands it to the
// panel. A panel failure rolls the registration back.
func (s *Service) CreateNew() error {
	if s.panel == nil {
		return ErrNoPanel
	}
	opts := s.options()
	proc, err := s.spawn(opts)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", opts.Shell, err)
	}
	events.Terminal.Spawn(proc.Name(), proc.Pid())

	previous := s.active
	s.procs = append(s.procs, proc)
	s.active = len(s.procs) - 1
	if err := s.panel.CreateNewTerminalInstance(proc); err != nil {
		s.procs = s.procs[:len(s.procs)-1]
		s.active = previous
		_ = proc.Kill()
		return err
	}
	return nil
}

// SetActiveTerminal activates index. Unknown indices are ignored.
func (s *Service) SetActiveTerminal(index int) {
	if index < 0 || index >= len(s.procs) {
		return
	}
	s.active = index
	if s.panel != nil {
		s.panel.SetActiveTerminal(index)
	}
}

// Release drops the process at index after the panel removed its instance.
// When the active process goes, the one that takes its position becomes
// active, or the new last one when it was last.
func (s *Service) Release(index int) {
	if index < 0 || index >= len(s.procs) {
		return
	}
	copy(s.procs[index:], s.procs[index+1:])
	s.procs[len(s.procs)-1] = nil
	s.procs = s.procs[:len(s.procs)-1]

	switch {
	case len(s.procs) == 0:
		s.active = NoActive
	case index < s.active:
		s.active--
	case s.active >= len(s.procs):
		s.active = len(s.procs) - 1
	}
}

// Hide asks the host to hide the panel.
func (s *Service) Hide() {
	if s.host != nil {
		s.host.HidePanel()
	}
}

// Focus asks the host to focus the panel.
func (s *Service) Focus() {
	if s.host != nil {
		s.host.FocusPanel()
	}
}

// InitConfigHelper binds the settings helper to the panel container.
func (s *Service) InitConfigHelper(container *terminal.Container) {
	if s.helper != nil {
		s.helper.Attach(container)
	}
}

// FocusNext activates the next terminal, wrapping around.
func (s *Service) FocusNext() {
	s.step(1)
}

// FocusPrevious activates the previous terminal, wrapping around.
func (s *Service) FocusPrevious() {
	s.step(-1)
}

func (s *Service) step(delta int) {
	n := len(s.procs)
	if n < 2 {
		return
	}
	s.SetActiveTerminal(((s.active+delta)%n + n) % n)
}

// Close kills the active terminal.
func (s *Service) Close() error {
	if s.panel == nil {
		return ErrNoPanel
	}
	if s.active == NoActive {
		return nil
	}
	return s.panel.CloseTerminal(s.active)
}

// Toggle shows a hidden panel and hides a visible one.
func (s *Service) Toggle() error {
	if s.panel == nil {
		return ErrNoPanel
	}
	if s.panel.Visible() {
		return s.panel.SetVisible(false)
	}
	if err := s.panel.SetVisible(true); err != nil {
		return err
	}
	s.panel.Focus()
	return nil
}

// Count returns the number of live terminals.
func (s *Service) Count() int {
	return len(s.procs)
}

// Pids lists process ids in terminal order.
func (s *Service) Pids() []int {
	out := make([]int, len(s.procs))
	for i, p := range s.procs {
		out[i] = p.Pid()
	}
	return out
}
