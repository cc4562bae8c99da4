package ui

import (
	"reflect"

	"github.com/atomicstack/tmux-terminal-panel/internal/backend"
	"github.com/atomicstack/tmux-terminal-panel/internal/panel"
	"github.com/atomicstack/tmux-terminal-panel/internal/session"
	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
	"github.com/atomicstack/tmux-terminal-panel/internal/ui/command"
	uistate "github.com/atomicstack/tmux-terminal-panel/internal/ui/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeTerminal Mode = iota
	ModePicker
)

type msgHandler func(tea.Msg) tea.Cmd

// Options wires the model to the rest of the program.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	KeepOpen   bool

	Panel     *panel.Controller
	Service   *session.Service
	Store     *settings.Store
	Base      settings.Settings
	Overrides settings.Overrides
	Watcher   *backend.Watcher
	Signals   <-chan terminal.Signal
}

// Model implements the Bubble Tea model for the terminal panel host.
type Model struct {
	panel   *panel.Controller
	service *session.Service
	store   *settings.Store
	bus     *command.Bus
	keys    KeyMap

	backend      *backend.Watcher
	backendState map[backend.Kind]error
	signals      <-chan terminal.Signal

	fileSettings settings.Settings
	tmuxOptions  settings.Overrides
	cliOverrides settings.Overrides

	mode        Mode
	picker      *uistate.Picker
	filter      textinput.Model
	styles      *theme.Styles
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	keepOpen    bool
	quitting    bool
	errMsg      string
	infoMsg     string

	handlers map[reflect.Type]msgHandler
}

var _ session.Host = (*Model)(nil)

// NewModel initialises the UI state.
func NewModel(opts Options) *Model {
	m := &Model{
		panel:        opts.Panel,
		service:      opts.Service,
		store:        opts.Store,
		bus:          command.New(),
		keys:         DefaultKeyMap,
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		signals:      opts.Signals,
		fileSettings: opts.Base,
		cliOverrides: opts.Overrides,
		mode:         ModeTerminal,
		styles:       theme.Default(),
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		keepOpen:     opts.KeepOpen,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.filter = newFilterInput(m.styles)
	m.registerHandlers()
	return m
}

// Start creates the panel in container and shows it. It runs before the
// program loop starts so that a missing shell fails the launch.
func (m *Model) Start(container *terminal.Container) error {
	if err := m.panel.Create(container); err != nil {
		return err
	}
	if err := m.panel.SetVisible(true); err != nil {
		return err
	}
	m.restyle()
	m.layout()
	return nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.signals != nil {
		cmds = append(cmds, waitForSignal(m.signals))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(signalMsg{}):         m.handleSignalMsg,
		reflect.TypeOf(signalsClosedMsg{}):  m.handleSignalsClosedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.layout()
	return nil
}

// bodyHeight is the number of rows left for the terminal after the tab bar
// and the status line.
func (m *Model) bodyHeight() int {
	h := m.height - 2
	if h < 0 {
		return 0
	}
	return h
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.panel.Layout(&terminal.Dimension{Width: m.width, Height: m.bodyHeight()})
}

// restyle derives the chrome styles from the palette the panel applied.
func (m *Model) restyle() {
	if p := m.panel.Stylesheet().Palette(); len(p) > 0 {
		m.styles = theme.FromPalette(p)
	} else {
		m.styles = theme.Default()
	}
	applyFilterStyles(&m.filter, m.styles)
}

// HidePanel is called by the session service once the last terminal is
// gone. Without keep-open the program exits.
func (m *Model) HidePanel() {
	if err := m.panel.SetVisible(false); err != nil {
		m.setError(err)
	}
	m.closePicker(-1)
	if !m.keepOpen {
		m.quitting = true
	}
}

// FocusPanel is called by the session service after the active terminal
// changed underneath the user.
func (m *Model) FocusPanel() {
	m.mode = ModeTerminal
	m.panel.Focus()
}

// Quitting reports whether the model asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}
