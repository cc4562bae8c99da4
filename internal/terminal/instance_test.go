package terminal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tmux-terminal-panel/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestInstanceCollectsOutputLines(t *testing.T) {
	proc := newFakeProcess()
	inst := New(proc, NewContainer(), Options{})
	defer inst.Dispose()

	proc.emit("hello\r\nwor")
	proc.emit("ld\n\x1b[31mred\x1b[0m\n")
	waitFor(t, func() bool { return len(inst.Lines()) == 3 })

	got := inst.Lines()
	want := []string{"hello", "world", "red"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInstanceCarriageReturnKeepsLastSegment(t *testing.T) {
	if got := cleanLine("progress 10%\rprogress 99%\r"); got != "progress 99%" {
		t.Fatalf("unexpected cleaned line %q", got)
	}
}

func TestInstanceScrollbackIsBounded(t *testing.T) {
	proc := newFakeProcess()
	inst := New(proc, NewContainer(), Options{Scrollback: 2})
	defer inst.Dispose()

	proc.emit("a\nb\nc\n")
	waitFor(t, func() bool {
		lines := inst.Lines()
		return len(lines) == 2 && lines[0] == "b"
	})
}

func TestInstanceExitCallback(t *testing.T) {
	proc := newFakeProcess()
	exited := make(chan *Instance, 1)
	inst := New(proc, NewContainer(), Options{OnExit: func(i *Instance) { exited <- i }})

	proc.exit()
	select {
	case got := <-exited:
		if got != inst {
			t.Fatalf("exit callback received another instance")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("exit callback not invoked")
	}
	if !inst.Exited() {
		t.Fatalf("expected instance to report exit")
	}
}

func TestInstanceTracesAbnormalExit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "panel.log")
	prevPath := logging.Path()
	logging.Configure(logPath)
	logging.SetTraceEnabled(true)
	t.Cleanup(func() {
		logging.SetTraceEnabled(false)
		logging.Configure(prevPath)
	})

	proc := newFakeProcess()
	proc.waitErr = errors.New("exit status 3")
	exited := make(chan struct{})
	New(proc, NewContainer(), Options{OnExit: func(*Instance) { close(exited) }})

	proc.exit()
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatalf("exit callback not invoked")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"terminal.wait"`) || !strings.Contains(string(data), "exit status 3") {
		t.Fatalf("expected wait error in trace log, got:\n%s", data)
	}
}

func TestInstanceDisposeSuppressesExitAndIsIdempotent(t *testing.T) {
	proc := newFakeProcess()
	called := make(chan struct{}, 1)
	inst := New(proc, NewContainer(), Options{OnExit: func(*Instance) { called <- struct{}{} }})

	inst.Dispose()
	inst.Dispose()
	<-inst.Done()
	select {
	case <-called:
		t.Fatalf("exit callback fired for disposed instance")
	default:
	}
	if proc.killed != 1 {
		t.Fatalf("expected one kill, got %d", proc.killed)
	}
	if err := inst.DispatchEvent(tea.KeyMsg{Type: tea.KeyEnter}); err != ErrInstanceDisposed {
		t.Fatalf("expected ErrInstanceDisposed, got %v", err)
	}
}

func TestInstanceLayoutResizesOncePerDimension(t *testing.T) {
	proc := newFakeProcess()
	inst := New(proc, NewContainer(), Options{})
	defer inst.Dispose()

	inst.Layout(Dimension{Width: 100, Height: 30})
	inst.Layout(Dimension{Width: 100, Height: 30})
	inst.Layout(Dimension{})
	if len(proc.resizes) != 1 || proc.resizes[0] != [2]int{100, 30} {
		t.Fatalf("unexpected resizes %v", proc.resizes)
	}
}

func TestInstanceDispatchEventWritesBytes(t *testing.T) {
	proc := newFakeProcess()
	inst := New(proc, NewContainer(), Options{})
	defer inst.Dispose()

	_ = inst.DispatchEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ls")})
	_ = inst.DispatchEvent(tea.KeyMsg{Type: tea.KeyEnter})
	proc.mu.Lock()
	defer proc.mu.Unlock()
	if !bytes.Equal(proc.input, []byte("ls\r")) {
		t.Fatalf("unexpected input %q", proc.input)
	}
}

func TestInstanceViewPadsAndTruncates(t *testing.T) {
	proc := newFakeProcess()
	inst := New(proc, NewContainer(), Options{})
	defer inst.Dispose()

	proc.emit("abcdefgh\n")
	waitFor(t, func() bool { return len(inst.Lines()) == 1 })
	view := inst.View(4, 3)
	rows := strings.Split(view, "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0] != "abcd" {
		t.Fatalf("expected truncated row, got %q", rows[0])
	}
}

func TestTitleDefaultsToProcessName(t *testing.T) {
	proc := newFakeProcess()
	inst := New(proc, NewContainer(), Options{})
	defer inst.Dispose()
	if inst.Title() != "fake" {
		t.Fatalf("expected title fake, got %q", inst.Title())
	}
}
