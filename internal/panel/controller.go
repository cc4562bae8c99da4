package panel

import (
	"github.com/atomicstack/tmux-terminal-panel/internal/logging"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// State combines panel visibility with collection emptiness.
type State int

const (
	EmptyHidden State = iota
	EmptyVisible
	PopulatedHidden
	PopulatedVisible
)

func (s State) String() string {
	switch s {
	case EmptyHidden:
		return "empty/hidden"
	case EmptyVisible:
		return "empty/visible"
	case PopulatedHidden:
		return "populated/hidden"
	case PopulatedVisible:
		return "populated/visible"
	default:
		return "unknown"
	}
}

// Controller is the terminal panel.
type Controller struct {
	oracle  Oracle
	config  ConfigHelper
	factory InstanceFactory

	container  *terminal.Container
	sheet      *theme.Sheet
	registry   *Registry
	propagator *Propagator
	toDispose  disposables

	dim      *terminal.Dimension
	visible  bool
	created  bool
	pending  bool
	disposed bool
	actions  []*Action
}

var _ Lifecycle = (*Controller)(nil)

// Option customises a Controller.
type Option func(*Controller)

// WithInstanceFactory replaces the function used to build instances.
func WithInstanceFactory(factory InstanceFactory) Option {
	return func(c *Controller) {
		if factory != nil {
			c.factory = factory
		}
	}
}

// NewController returns an empty, hidden panel.
func NewController(oracle Oracle, config ConfigHelper, opts ...Option) *Controller {
	c := &Controller{
		oracle:   oracle,
		config:   config,
		sheet:    theme.NewSheet(),
		registry: NewRegistry(),
		factory: func(proc terminal.Process, container *terminal.Container) Instance {
			return terminal.New(proc, container, terminal.Options{})
		},
	}
	c.propagator = NewPropagator(c.registry, oracle, config, c.sheet)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create prepares the container and stylesheet, subscribes to presentation
// changes and asks the oracle for the first instance. A failed theme leaves
// nothing behind. When only the first instance request failed, calling
// Create again repeats that request.
func (c *Controller) Create(container *terminal.Container) error {
	if c.disposed {
		return ErrDisposed
	}
	if c.created {
		if !c.pending {
			return nil
		}
		return c.requestFirstInstance()
	}
	if container == nil {
		container = terminal.NewContainer()
	}
	container.Prepare()
	c.container = container
	c.registry.attach(container)
	c.oracle.InitConfigHelper(container)

	if err := c.propagator.OnThemeChanged(""); err != nil {
		return err
	}

	c.toDispose.add(c.config.OnDidThemeChange(func(themeID string) {
		if err := c.propagator.OnThemeChanged(themeID); err != nil {
			logging.Error(err)
		}
	}))
	c.toDispose.add(c.config.OnDidUpdateConfiguration(c.propagator.OnConfigurationChanged))

	c.created = true
	events.Panel.Create()
	return c.requestFirstInstance()
}

func (c *Controller) requestFirstInstance() error {
	err := c.oracle.CreateNew()
	c.pending = err != nil && c.registry.Len() == 0
	return err
}

// Layout forwards d to the active instance.
func (c *Controller) Layout(d *terminal.Dimension) {
	if d == nil || c.disposed {
		return
	}
	dim := *d
	c.dim = &dim
	if c.container != nil {
		c.container.SetSize(dim)
	}
	inst, ok := c.activeInstance()
	if !ok {
		return
	}
	inst.Layout(dim)
}

// SetVisible shows or hides the panel. Showing an empty panel requests a
// new instance; showing a populated one re-applies font and theme.
func (c *Controller) SetVisible(visible bool) error {
	if c.disposed {
		return ErrDisposed
	}
	c.visible = visible
	events.Panel.Visible(visible, c.registry.Len())
	if !visible {
		return nil
	}
	if c.registry.Len() > 0 {
		c.propagator.ApplyFont()
		return c.propagator.OnThemeChanged("")
	}
	if !c.created {
		return ErrNotCreated
	}
	return c.oracle.CreateNew()
}

// Actions returns switch, new and kill. The list is built on first use.
func (c *Controller) Actions() []*Action {
	if c.actions == nil {
		c.actions = c.buildActions()
	}
	return c.actions
}

// ActionItem returns the instance selector for the switch action and nil
// for every other action.
func (c *Controller) ActionItem(a *Action) ActionItem {
	if a == nil || a.ID != ActionSwitch {
		return nil
	}
	item := &SwitchItem{selected: -1}
	c.registry.Each(func(i int, inst Instance) {
		item.entries = append(item.entries, switchEntry(i, inst.Title()))
	})
	if c.registry.Len() > 0 {
		if active := c.oracle.ActiveTerminalIndex(); active >= 0 && active < c.registry.Len() {
			item.selected = active
		}
	}
	return item
}

// Focus gives keyboard focus to the active instance.
func (c *Controller) Focus() {
	inst, ok := c.activeInstance()
	if !ok {
		return
	}
	inst.Focus(true)
	events.Panel.Focus(c.oracle.ActiveTerminalIndex())
}

// Dispose releases subscriptions and instances. Later calls do nothing.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.toDispose.dispose()
	n := c.registry.Len()
	c.registry.DisposeAll()
	for i := n - 1; i >= 0; i-- {
		c.oracle.Release(i)
	}
	events.Panel.Dispose(n)
}

// CreateNewTerminalInstance builds an instance around proc, appends it and
// makes it active. The oracle must already report it as active.
func (c *Controller) CreateNewTerminalInstance(proc terminal.Process) error {
	if c.disposed {
		return ErrDisposed
	}
	if !c.created {
		return ErrNotCreated
	}
	inst := c.factory(proc, c.container)
	index := c.registry.Add(inst)
	events.Terminal.Create(inst.ID(), index)
	if c.dim != nil {
		inst.Layout(*c.dim)
	}
	if err := c.propagator.OnThemeChanged(""); err != nil {
		logging.Error(err)
	}
	c.propagator.OnConfigurationChanged()
	c.Focus()
	return nil
}

// CloseActiveTerminal closes the instance the oracle reports as active.
func (c *Controller) CloseActiveTerminal() error {
	return c.CloseTerminal(c.oracle.ActiveTerminalIndex())
}

// CloseTerminal disposes the instance at index. Unknown indices are ignored.
func (c *Controller) CloseTerminal(index int) error {
	if c.disposed {
		return ErrDisposed
	}
	c.removeAt(index)
	return nil
}

// SetActiveTerminal makes the instance at index the visible one.
func (c *Controller) SetActiveTerminal(index int) {
	inst, ok := c.registry.At(index)
	if !ok || c.disposed {
		return
	}
	c.registry.SetActive(index)
	inst.SetFont(c.config.Font())
	if c.dim != nil {
		inst.Layout(*c.dim)
	}
	events.Terminal.Switch(index)
}

// HandleInstanceExit removes an instance whose process ended.
func (c *Controller) HandleInstanceExit(inst Instance) {
	if c.disposed {
		return
	}
	c.removeAt(c.registry.IndexOf(inst))
}

// DispatchEvent forwards a key event to the active instance.
func (c *Controller) DispatchEvent(msg tea.KeyMsg) error {
	inst, ok := c.activeInstance()
	if !ok {
		return nil
	}
	return inst.DispatchEvent(msg)
}

func (c *Controller) removeAt(index int) {
	if _, ok := c.registry.At(index); !ok {
		return
	}
	empty := c.registry.RemoveAt(index)
	c.oracle.Release(index)
	events.Terminal.Close(index)
	if empty {
		events.Panel.Hide()
		c.oracle.Hide()
		return
	}
	c.SetActiveTerminal(c.oracle.ActiveTerminalIndex())
	c.oracle.Focus()
}

func (c *Controller) activeInstance() (Instance, bool) {
	if c.registry.Len() == 0 {
		return nil, false
	}
	return c.registry.At(c.oracle.ActiveTerminalIndex())
}

// ActiveInstance returns the instance the oracle reports as active.
func (c *Controller) ActiveInstance() (Instance, bool) {
	return c.activeInstance()
}

// Instances returns the instances in order.
func (c *Controller) Instances() []Instance {
	out := make([]Instance, 0, c.registry.Len())
	c.registry.Each(func(_ int, inst Instance) { out = append(out, inst) })
	return out
}

// State reports the visibility/emptiness combination.
func (c *Controller) State() State {
	switch {
	case c.registry.Len() == 0 && !c.visible:
		return EmptyHidden
	case c.registry.Len() == 0:
		return EmptyVisible
	case !c.visible:
		return PopulatedHidden
	default:
		return PopulatedVisible
	}
}

// Visible reports whether the panel is shown.
func (c *Controller) Visible() bool {
	return c.visible
}

// Disposed reports whether Dispose has run.
func (c *Controller) Disposed() bool {
	return c.disposed
}

// Stylesheet returns the panel's stylesheet element.
func (c *Controller) Stylesheet() *theme.Sheet {
	return c.sheet
}

// Container returns the container passed to Create.
func (c *Controller) Container() *terminal.Container {
	return c.container
}

// Len returns the number of instances.
func (c *Controller) Len() int {
	return c.registry.Len()
}

// Titles lists instance titles in order.
func (c *Controller) Titles() []string {
	out := make([]string, 0, c.registry.Len())
	c.registry.Each(func(_ int, inst Instance) { out = append(out, inst.Title()) })
	return out
}

// RefreshFont re-applies the configured font to the active instance. Hosts
// call it when the cell size of the container changed.
func (c *Controller) RefreshFont() {
	if c.disposed {
		return
	}
	c.propagator.ApplyFont()
}
