package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/tmux-terminal-panel/internal/logging"
	"github.com/atomicstack/tmux-terminal-panel/internal/logging/events"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

const defaultScrollback = 2000

// Options configures a new instance.
type Options struct {
	// Title is shown in the tab bar. Defaults to the process name.
	Title string

	// Scrollback is the number of output lines kept (default 2000).
	Scrollback int

	// OnOutput is called from the reader goroutine after output arrives.
	OnOutput func(*Instance)

	// OnExit is called from the reader goroutine once the process is gone,
	// unless the instance was disposed first.
	OnExit func(*Instance)
}

// Instance is one live terminal session mounted in a panel container. The
// reader goroutine only touches the output buffer; every other field belongs
// to the UI goroutine.
type Instance struct {
	id        string
	title     string
	proc      Process
	container *Container

	mu         sync.Mutex
	lines      []string
	partial    string
	scrollback int

	font        Font
	cursorBlink bool
	visible     bool
	focused     bool
	dim         Dimension
	palette     theme.Palette

	onOutput func(*Instance)
	onExit   func(*Instance)

	disposed    atomic.Bool
	exited      atomic.Bool
	disposeOnce sync.Once
	done        chan struct{}
}

// New wraps a running process and starts reading its output.
func New(proc Process, container *Container, opts Options) *Instance {
	if opts.Scrollback <= 0 {
		opts.Scrollback = defaultScrollback
	}
	title := opts.Title
	if title == "" && proc != nil {
		title = proc.Name()
	}
	inst := &Instance{
		id:         uuid.New().String(),
		title:      title,
		proc:       proc,
		container:  container,
		scrollback: opts.Scrollback,
		onOutput:   opts.OnOutput,
		onExit:     opts.OnExit,
		done:       make(chan struct{}),
	}
	go inst.readLoop()
	return inst
}

func (i *Instance) readLoop() {
	defer close(i.done)
	buf := make([]byte, 4096)
	for {
		n, err := i.proc.Read(buf)
		if n > 0 {
			i.appendOutput(buf[:n])
			if i.onOutput != nil && !i.disposed.Load() {
				i.onOutput(i)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !i.disposed.Load() {
				logging.Trace("terminal.read.end", map[string]interface{}{"id": i.id, "error": err.Error()})
			}
			break
		}
	}
	waitErr := i.proc.Wait()
	i.exited.Store(true)
	if i.disposed.Load() {
		return
	}
	if waitErr != nil {
		logging.Trace("terminal.wait", map[string]interface{}{"id": i.id, "title": i.title, "error": waitErr.Error()})
	}
	events.Terminal.Exit(i.id, i.title)
	if i.onExit != nil {
		i.onExit(i)
	}
}

func (i *Instance) appendOutput(data []byte) {
	i.mu.Lock()
	defer i.mu.Unlock()
	chunks := bytes.Split(data, []byte("\n"))
	for idx, chunk := range chunks {
		i.partial += string(chunk)
		if idx == len(chunks)-1 {
			break
		}
		i.lines = append(i.lines, cleanLine(i.partial))
		i.partial = ""
	}
	if over := len(i.lines) - i.scrollback; over > 0 {
		i.lines = append([]string(nil), i.lines[over:]...)
	}
}

// cleanLine drops escape sequences and keeps the text after the last
// carriage return, which is what a shell redrawing a line leaves visible.
func cleanLine(s string) string {
	s = strings.TrimRight(s, "\r")
	if idx := strings.LastIndex(s, "\r"); idx >= 0 {
		s = s[idx+1:]
	}
	return ansi.Strip(s)
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() string {
	return i.id
}

// Title returns the display name.
func (i *Instance) Title() string {
	return i.title
}

// Pid returns the process id of the shell.
func (i *Instance) Pid() int {
	if i.proc == nil {
		return 0
	}
	return i.proc.Pid()
}

// Layout resizes the process to the given cell dimension.
func (i *Instance) Layout(d Dimension) {
	if d.Empty() || d == i.dim || i.disposed.Load() {
		return
	}
	i.dim = d
	events.Terminal.Layout(i.id, d.Width, d.Height)
	if err := i.proc.Resize(d.Width, d.Height); err != nil {
		logging.Error(err)
	}
}

// Dimension returns the last size passed to Layout.
func (i *Instance) Dimension() Dimension {
	return i.dim
}

func (i *Instance) SetFont(f Font) {
	i.font = f
}

func (i *Instance) Font() Font {
	return i.font
}

func (i *Instance) SetCursorBlink(blink bool) {
	i.cursorBlink = blink
}

func (i *Instance) CursorBlink() bool {
	return i.cursorBlink
}

// SetPalette records the colors used to draw the cursor.
func (i *Instance) SetPalette(p theme.Palette) {
	i.palette = p.Clone()
}

func (i *Instance) ToggleVisibility(visible bool) {
	i.visible = visible
}

func (i *Instance) Visible() bool {
	return i.visible
}

func (i *Instance) Focus(focus bool) {
	i.focused = focus
}

func (i *Instance) Focused() bool {
	return i.focused
}

// Exited reports whether the process has terminated.
func (i *Instance) Exited() bool {
	return i.exited.Load()
}

// DispatchEvent writes a key event to the process.
func (i *Instance) DispatchEvent(msg tea.KeyMsg) error {
	if i.disposed.Load() {
		return ErrInstanceDisposed
	}
	data := EncodeKey(msg)
	if len(data) == 0 {
		return nil
	}
	_, err := i.proc.Write(data)
	return err
}

// Dispose kills the process. Only the first call has an effect.
func (i *Instance) Dispose() {
	i.disposeOnce.Do(func() {
		i.disposed.Store(true)
		i.visible = false
		i.focused = false
		if err := i.proc.Kill(); err != nil {
			logging.Error(err)
		}
	})
}

// Disposed reports whether Dispose has run.
func (i *Instance) Disposed() bool {
	return i.disposed.Load()
}

// Lines returns a copy of the scrollback including the unterminated line.
func (i *Instance) Lines() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, 0, len(i.lines)+1)
	out = append(out, i.lines...)
	if i.partial != "" {
		out = append(out, cleanLine(i.partial))
	}
	return out
}

// View renders the tail of the scrollback into a width x height block.
func (i *Instance) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := i.Lines()
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	rows := make([]string, 0, height)
	for idx, line := range lines {
		line = ansi.Truncate(line, width, "")
		if idx == len(lines)-1 && i.focused {
			line = i.withCursor(line, width)
		}
		rows = append(rows, line)
	}
	if len(lines) == 0 && i.focused {
		rows = append(rows, i.withCursor("", width))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (i *Instance) withCursor(line string, width int) string {
	if ansi.StringWidth(line) >= width {
		return line
	}
	style := lipgloss.NewStyle().Reverse(true)
	if bg := i.palette.Slot(7); bg != "" {
		style = lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(i.palette.Slot(0)))
	}
	if i.cursorBlink {
		style = style.Blink(true)
	}
	return line + style.Render(" ")
}

// Done is closed when the reader goroutine has finished.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}
