package backend

import (
	"sync"
	"time"
)

// throttle spaces out tmux round trips. The option and cell-size sources
// share one per socket so two pollers never hit the server back to back.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

var (
	socketThrottlesMu sync.Mutex
	socketThrottles   = map[string]*throttle{}
)

const tmuxPollSpacing = 250 * time.Millisecond

// socketThrottle returns the throttle shared by every source that talks to
// the tmux server behind socketPath.
func socketThrottle(socketPath string) *throttle {
	socketThrottlesMu.Lock()
	defer socketThrottlesMu.Unlock()
	t, ok := socketThrottles[socketPath]
	if !ok {
		t = newThrottle(tmuxPollSpacing)
		socketThrottles[socketPath] = t
	}
	return t
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	for {
		t.mu.Lock()
		wait := time.Until(t.next)
		if wait <= 0 {
			t.next = time.Now().Add(t.interval)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		if wait > t.interval {
			wait = t.interval
		}
		time.Sleep(wait)
	}
}
