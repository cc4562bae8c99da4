package terminal

import "sync"

// SignalKind identifies what happened to an instance.
type SignalKind int

const (
	SignalOutput SignalKind = iota
	SignalExit
)

// Signal is posted from reader goroutines for the UI goroutine to handle.
type Signal struct {
	Kind     SignalKind
	Instance *Instance
}

// Notifier funnels instance callbacks into a single channel so that all
// state changes happen on the goroutine that drains it. Output signals are
// coalesced; exit signals are never dropped while the notifier is open.
type Notifier struct {
	signals chan Signal
	done    chan struct{}
	once    sync.Once
}

// NewNotifier creates a notifier with the given channel capacity.
func NewNotifier(buffer int) *Notifier {
	if buffer <= 0 {
		buffer = 64
	}
	return &Notifier{
		signals: make(chan Signal, buffer),
		done:    make(chan struct{}),
	}
}

// Signals returns the receive side of the notifier.
func (n *Notifier) Signals() <-chan Signal {
	return n.signals
}

// Bind fills the callbacks of opts with ones that post to this notifier.
func (n *Notifier) Bind(opts Options) Options {
	opts.OnOutput = func(inst *Instance) {
		select {
		case n.signals <- Signal{Kind: SignalOutput, Instance: inst}:
		default:
		}
	}
	opts.OnExit = func(inst *Instance) {
		select {
		case n.signals <- Signal{Kind: SignalExit, Instance: inst}:
		case <-n.done:
		}
	}
	return opts
}

// Close releases goroutines blocked on exit delivery.
func (n *Notifier) Close() {
	n.once.Do(func() { close(n.done) })
}

// Closed is closed once Close has been called.
func (n *Notifier) Closed() <-chan struct{} {
	return n.done
}
