package backend

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSettings Kind = iota
	KindOptions
	KindCellSize
)

func (k Kind) String() string {
	switch k {
	case KindSettings:
		return "settings"
	case KindOptions:
		return "options"
	case KindCellSize:
		return "cell-size"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Source is one polled input.
type Source struct {
	Kind  Kind
	Fetch func(ctx context.Context) (interface{}, error)
}

// Watcher polls its sources at a fixed interval and publishes an event
// whenever a source's result differs from the previous one.
type Watcher struct {
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts one poller per source.
func NewWatcher(interval time.Duration, sources ...Source) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	for _, src := range sources {
		if src.Fetch == nil {
			continue
		}
		w.wg.Add(1)
		go w.poll(src.Kind, src.Fetch)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

const defaultInterval = 1500 * time.Millisecond

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	var (
		sent    bool
		lastVal interface{}
		lastErr string
	)
	emit := func() bool {
		data, err := fetch(w.ctx)
		errText := ""
		if err != nil {
			errText = err.Error()
		}
		if sent && errText == lastErr && (err != nil || reflect.DeepEqual(data, lastVal)) {
			return true
		}
		sent, lastVal, lastErr = true, data, errText
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
