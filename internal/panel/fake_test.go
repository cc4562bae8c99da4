package panel

import (
	"fmt"
	"testing"

	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/terminal"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeInstance struct {
	id      string
	title   string
	visible bool
	focused bool
	font    *terminal.Font
	blink   *bool
	palette theme.Palette
	layouts []terminal.Dimension
	keys    []tea.KeyMsg
	dispose int
}

func (f *fakeInstance) ID() string                    { return f.id }
func (f *fakeInstance) Title() string                 { return f.title }
func (f *fakeInstance) Layout(d terminal.Dimension)   { f.layouts = append(f.layouts, d) }
func (f *fakeInstance) SetFont(font terminal.Font)    { f.font = &font }
func (f *fakeInstance) SetCursorBlink(b bool)         { f.blink = &b }
func (f *fakeInstance) SetPalette(p theme.Palette)    { f.palette = p }
func (f *fakeInstance) ToggleVisibility(visible bool) { f.visible = visible }
func (f *fakeInstance) Visible() bool                 { return f.visible }
func (f *fakeInstance) Focus(focus bool)              { f.focused = focus }
func (f *fakeInstance) Dispose()                      { f.dispose++ }

func (f *fakeInstance) DispatchEvent(msg tea.KeyMsg) error {
	f.keys = append(f.keys, msg)
	return nil
}

// fakeOracle keeps a session count and active index the way the session
// service does.
type fakeOracle struct {
	panel     *Controller
	count     int
	active    int
	createErr error

	container *terminal.Container
	released  []int
	hidden    int
	focused   int
}

func (o *fakeOracle) ActiveTerminalIndex() int { return o.active }

func (o *fakeOracle) CreateNew() error {
	if o.createErr != nil {
		return o.createErr
	}
	o.count++
	o.active = o.count - 1
	return o.panel.CreateNewTerminalInstance(nil)
}

func (o *fakeOracle) SetActiveTerminal(index int) {
	if index < 0 || index >= o.count {
		return
	}
	o.active = index
	o.panel.SetActiveTerminal(index)
}

func (o *fakeOracle) Release(index int) {
	o.released = append(o.released, index)
	o.count--
	switch {
	case o.count == 0:
		o.active = -1
	case index < o.active:
		o.active--
	case o.active >= o.count:
		o.active = o.count - 1
	}
}

func (o *fakeOracle) Hide()  { o.hidden++ }
func (o *fakeOracle) Focus() { o.focused++ }

func (o *fakeOracle) InitConfigHelper(container *terminal.Container) {
	o.container = container
}

type fixture struct {
	controller *Controller
	oracle     *fakeOracle
	store      *settings.Store
	instances  []*fakeInstance
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		oracle: &fakeOracle{active: -1},
		store:  settings.NewStore(settings.Defaults()),
	}
	factory := func(_ terminal.Process, _ *terminal.Container) Instance {
		n := len(f.instances) + 1
		inst := &fakeInstance{id: fmt.Sprintf("t%d", n), title: fmt.Sprintf("shell %d", n)}
		f.instances = append(f.instances, inst)
		return inst
	}
	f.controller = NewController(f.oracle, settings.NewHelper(f.store), WithInstanceFactory(factory))
	f.oracle.panel = f.controller
	return f
}

func (f *fixture) create(t *testing.T) {
	t.Helper()
	if err := f.controller.Create(terminal.NewContainer()); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func (f *fixture) add(t *testing.T) *fakeInstance {
	t.Helper()
	if err := f.oracle.CreateNew(); err != nil {
		t.Fatalf("create new: %v", err)
	}
	return f.instances[len(f.instances)-1]
}

func visibleCount(c *Controller) int {
	n := 0
	for _, inst := range c.Instances() {
		if inst.Visible() {
			n++
		}
	}
	return n
}

func (f *fixture) checkInvariants(t *testing.T) {
	t.Helper()
	c := f.controller
	if c.registry.Len() != f.oracle.count {
		t.Fatalf("panel holds %d instances, oracle %d", c.registry.Len(), f.oracle.count)
	}
	if n := c.registry.Len(); n > 0 {
		if f.oracle.active < 0 || f.oracle.active >= n {
			t.Fatalf("active index %d out of range for %d instances", f.oracle.active, n)
		}
		if got := visibleCount(c); got != 1 {
			t.Fatalf("expected exactly one visible instance, got %d", got)
		}
		active, _ := c.ActiveInstance()
		if !active.Visible() {
			t.Fatalf("active instance is hidden")
		}
	}
	if got := len(c.container.Children()); got != c.registry.Len() {
		t.Fatalf("container has %d children, want %d", got, c.registry.Len())
	}
}
