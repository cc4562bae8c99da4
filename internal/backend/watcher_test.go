package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/theme"
)

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("no event before deadline")
	}
	return Event{}
}

func TestWatcherEmitsOnlyChanges(t *testing.T) {
	var calls atomic.Int32
	src := Source{Kind: KindOptions, Fetch: func(context.Context) (interface{}, error) {
		n := calls.Add(1)
		if n < 4 {
			return "same", nil
		}
		return "changed", nil
	}}
	w := NewWatcher(10*time.Millisecond, src)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	first := nextEvent(t, w)
	if first.Kind != KindOptions || first.Data != "same" {
		t.Fatalf("unexpected first event %+v", first)
	}
	second := nextEvent(t, w)
	if second.Data != "changed" {
		t.Fatalf("expected the changed value next, got %+v", second)
	}
	if calls.Load() < 4 {
		t.Fatalf("expected duplicate polls to be suppressed, got %d calls", calls.Load())
	}
}

func TestWatcherReportsErrorsOnce(t *testing.T) {
	var calls atomic.Int32
	src := Source{Kind: KindCellSize, Fetch: func(context.Context) (interface{}, error) {
		if calls.Add(1) < 5 {
			return nil, errors.New("no server")
		}
		return 3, nil
	}}
	w := NewWatcher(5*time.Millisecond, src)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if evt := nextEvent(t, w); evt.Err == nil {
		t.Fatalf("expected error event, got %+v", evt)
	}
	if evt := nextEvent(t, w); evt.Err != nil || evt.Data != 3 {
		t.Fatalf("expected recovery event, got %+v", evt)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	src := Source{Kind: KindSettings, Fetch: func(context.Context) (interface{}, error) { return 1, nil }}
	w := NewWatcher(time.Hour, src, Source{Kind: KindOptions})
	nextEvent(t, w)
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}

func TestSettingsFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	src := SettingsFile(path)

	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if data.(settings.Settings).Theme != theme.Dark {
		t.Fatalf("expected defaults for a missing file")
	}

	if err := os.WriteFile(path, []byte("theme: light\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err = src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if data.(settings.Settings).Theme != theme.Light {
		t.Fatalf("expected light theme, got %q", data.(settings.Settings).Theme)
	}

	if err := os.WriteFile(path, []byte("theme: [\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatalf("expected parse error for malformed yaml")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("throttle let calls through too quickly: %v", elapsed)
	}
	var zero *throttle
	zero.wait()
}

func TestSocketThrottleSharedPerSocket(t *testing.T) {
	a := socketThrottle("/tmp/throttle-a.sock")
	if socketThrottle("/tmp/throttle-a.sock") != a {
		t.Fatalf("expected one throttle per socket")
	}
	if socketThrottle("/tmp/throttle-b.sock") == a {
		t.Fatalf("expected separate throttles for separate sockets")
	}
	if a.interval != tmuxPollSpacing {
		t.Fatalf("interval = %v, want %v", a.interval, tmuxPollSpacing)
	}
}
