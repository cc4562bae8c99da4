package backend

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/atomicstack/tmux-terminal-panel/internal/settings"
	"github.com/atomicstack/tmux-terminal-panel/internal/tmux"
)

// SettingsFile re-reads the settings file when its size or modification
// time changes. A missing file yields the defaults.
func SettingsFile(path string) Source {
	var (
		modTime time.Time
		size    int64 = -1
		cached  settings.Settings
	)
	return Source{
		Kind: KindSettings,
		Fetch: func(context.Context) (interface{}, error) {
			info, err := os.Stat(path)
			switch {
			case errors.Is(err, os.ErrNotExist):
				modTime, size = time.Time{}, -1
				return settings.Defaults(), nil
			case err != nil:
				return nil, err
			}
			if size >= 0 && info.ModTime().Equal(modTime) && info.Size() == size {
				return cached, nil
			}
			s, err := settings.LoadFile(path)
			if err != nil {
				return nil, err
			}
			modTime, size, cached = info.ModTime(), info.Size(), s
			return s, nil
		},
	}
}

// TmuxOptions polls the @terminal-panel-* user options.
func TmuxOptions(socketPath string) Source {
	throttle := socketThrottle(socketPath)
	return Source{
		Kind: KindOptions,
		Fetch: func(context.Context) (interface{}, error) {
			throttle.wait()
			return tmux.Options(socketPath)
		},
	}
}

// TmuxCellSize polls the client cell size, which changes with the font of
// the outer terminal.
func TmuxCellSize(socketPath string) Source {
	throttle := socketThrottle(socketPath)
	return Source{
		Kind: KindCellSize,
		Fetch: func(context.Context) (interface{}, error) {
			throttle.wait()
			return tmux.ClientCellSize(socketPath)
		},
	}
}
