package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	optionTheme       = "@terminal-panel-theme"
	optionCursorBlink = "@terminal-panel-cursor-blink"
	optionFont        = "@terminal-panel-font"
)

// CurrentClientID attempts to detect the client that launched the popup so
// queries target the visible tmux client instead of the control-mode
// connection.
func CurrentClientID(socketPath string) string {
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()
	name, err := client.DisplayMessage(currentTarget(), "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// Options reads the panel's user options in one round trip.
func Options(socketPath string) (PanelOptions, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return PanelOptions{}, err
	}
	defer client.Close()
	format := strings.Join([]string{
		"#{" + optionTheme + "}",
		"#{" + optionCursorBlink + "}",
		"#{" + optionFont + "}",
	}, "\t")
	out, err := client.DisplayMessage(currentTarget(), format)
	if err != nil {
		return PanelOptions{}, err
	}
	return parseOptions(out), nil
}

func parseOptions(line string) PanelOptions {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	for len(fields) < 3 {
		fields = append(fields, "")
	}
	opts := PanelOptions{Theme: strings.TrimSpace(fields[0])}
	switch strings.ToLower(strings.TrimSpace(fields[1])) {
	case "on", "1", "true", "yes":
		v := true
		opts.CursorBlink = &v
	case "off", "0", "false", "no":
		v := false
		opts.CursorBlink = &v
	}
	opts.Font, opts.FontSize = parseFont(fields[2])
	return opts
}

// parseFont splits "Family Name 13.5" into family and size. A value with no
// trailing number is all family.
func parseFont(value string) (string, float64) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", 0
	}
	idx := strings.LastIndex(value, " ")
	if idx < 0 {
		return value, 0
	}
	size, err := strconv.ParseFloat(value[idx+1:], 64)
	if err != nil || size <= 0 {
		return value, 0
	}
	return strings.TrimSpace(value[:idx]), size
}

// ClientCellSize returns the cell size of the current client. tmux reports
// zero when the terminal does not answer the pixel size query.
func ClientCellSize(socketPath string) (CellSize, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return CellSize{}, err
	}
	defer client.Close()
	out, err := client.DisplayMessage(currentTarget(), "#{client_cell_width} #{client_cell_height}")
	if err != nil {
		return CellSize{}, err
	}
	parts := strings.Fields(out)
	if len(parts) != 2 {
		return CellSize{}, fmt.Errorf("unexpected cell size %q", strings.TrimSpace(out))
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return CellSize{}, fmt.Errorf("unexpected cell size %q", strings.TrimSpace(out))
	}
	return CellSize{Width: w, Height: h}, nil
}

func currentTarget() string {
	return strings.TrimSpace(os.Getenv("TMUX_PANE"))
}

// ResolveSocketPath picks the tmux socket from the flag, the environment or
// the tmux default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_TERMINAL_PANEL_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
