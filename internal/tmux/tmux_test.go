package tmux

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"testing"
)

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() {
		newTmux = prev
	})
}

type fakeClient struct {
	responses map[string]string
	err       error
	formats   []string
	targets   []string
	closed    int
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	f.targets = append(f.targets, target)
	f.formats = append(f.formats, format)
	if f.err != nil {
		return "", f.err
	}
	return f.responses[format], nil
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func TestCurrentClientID(t *testing.T) {
	t.Setenv("TMUX_PANE", "%3")
	fake := &fakeClient{responses: map[string]string{"#{client_name}": "/dev/pts/4\n"}}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	if got := CurrentClientID("sock"); got != "/dev/pts/4" {
		t.Fatalf("client id = %q", got)
	}
	if fake.targets[0] != "%3" {
		t.Fatalf("expected TMUX_PANE target, got %q", fake.targets[0])
	}
	if fake.closed != 1 {
		t.Fatalf("expected client closed")
	}
}

func TestCurrentClientIDErrors(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) { return nil, errors.New("no server") })
	if got := CurrentClientID("sock"); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func TestOptions(t *testing.T) {
	format := "#{@terminal-panel-theme}\t#{@terminal-panel-cursor-blink}\t#{@terminal-panel-font}"
	fake := &fakeClient{responses: map[string]string{format: "light\toff\tIosevka Term 13.5\n"}}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	opts, err := Options("sock")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Theme != "light" || opts.Font != "Iosevka Term" || opts.FontSize != 13.5 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.CursorBlink == nil || *opts.CursorBlink {
		t.Fatalf("expected cursor blink off")
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		line  string
		theme string
		blink string
		font  string
		size  float64
	}{
		{line: "", blink: "unset"},
		{line: "dark\t\t", blink: "unset", theme: "dark"},
		{line: "\ton\tmonospace", blink: "true", font: "monospace"},
		{line: "\tyes\tFira Code 11", blink: "true", font: "Fira Code", size: 11},
		{line: "\tmaybe\tFira Code x", blink: "unset", font: "Fira Code x"},
	}
	for _, tt := range tests {
		opts := parseOptions(tt.line)
		blink := "unset"
		if opts.CursorBlink != nil {
			blink = fmt.Sprint(*opts.CursorBlink)
		}
		if opts.Theme != tt.theme || blink != tt.blink || opts.Font != tt.font || opts.FontSize != tt.size {
			t.Fatalf("parseOptions(%q) = %+v (blink %s)", tt.line, opts, blink)
		}
	}
}

func TestOptionsError(t *testing.T) {
	fake := &fakeClient{err: errors.New("boom")}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if _, err := Options(""); err == nil {
		t.Fatalf("expected error")
	}
	if fake.closed != 1 {
		t.Fatalf("expected client closed on error")
	}
}

func TestClientCellSize(t *testing.T) {
	format := "#{client_cell_width} #{client_cell_height}"
	fake := &fakeClient{responses: map[string]string{format: "9 18\n"}}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	size, err := ClientCellSize("sock")
	if err != nil {
		t.Fatalf("cell size: %v", err)
	}
	if size != (CellSize{Width: 9, Height: 18}) {
		t.Fatalf("unexpected size %+v", size)
	}

	fake.responses[format] = "garbage"
	if _, err := ClientCellSize("sock"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResolveSocketPath(t *testing.T) {
	t.Setenv("TMUX_TERMINAL_PANEL_SOCKET", "")
	t.Setenv("TMUX", "")
	t.Setenv("TMUX_TMPDIR", "/var/tmux")

	if got, _ := ResolveSocketPath("/flag.sock"); got != "/flag.sock" {
		t.Fatalf("flag value ignored: %q", got)
	}

	t.Setenv("TMUX_TERMINAL_PANEL_SOCKET", "/env.sock")
	if got, _ := ResolveSocketPath(""); got != "/env.sock" {
		t.Fatalf("env value ignored: %q", got)
	}

	t.Setenv("TMUX_TERMINAL_PANEL_SOCKET", "")
	t.Setenv("TMUX", "/tmp/tmux-1/other,123,0")
	if got, _ := ResolveSocketPath(""); got != "/tmp/tmux-1/other" {
		t.Fatalf("TMUX value ignored: %q", got)
	}

	t.Setenv("TMUX", "")
	u, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	want := filepath.Join("/var/tmux", fmt.Sprintf("tmux-%s", u.Uid), "default")
	if got, _ := ResolveSocketPath(""); got != want {
		t.Fatalf("default socket = %q, want %q", got, want)
	}
}
