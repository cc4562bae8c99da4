package settings

import (
	"sort"
	"sync"
)

// Subscription is returned by the On* methods. Unsubscribe is idempotent.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe stops further callbacks for this subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Store holds the effective settings and notifies observers when Apply
// changes them. Observers run synchronously on the caller's goroutine, in
// subscription order.
type Store struct {
	mu      sync.Mutex
	current Settings

	nextID          uint64
	themeObservers  map[uint64]func(themeID string)
	configObservers map[uint64]func()
}

// NewStore creates a store seeded with s.
func NewStore(s Settings) *Store {
	return &Store{
		current:         s,
		themeObservers:  make(map[uint64]func(string)),
		configObservers: make(map[uint64]func()),
	}
}

// Current returns the effective settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnDidThemeChange registers fn for theme changes. fn receives the new theme id.
func (s *Store) OnDidThemeChange(fn func(themeID string)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.themeObservers[id] = fn
	return &Subscription{cancel: func() {
		s.mu.Lock()
		delete(s.themeObservers, id)
		s.mu.Unlock()
	}}
}

// OnDidUpdateConfiguration registers fn for any settings change.
func (s *Store) OnDidUpdateConfiguration(fn func()) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.configObservers[id] = fn
	return &Subscription{cancel: func() {
		s.mu.Lock()
		delete(s.configObservers, id)
		s.mu.Unlock()
	}}
}

// Apply replaces the settings and returns the names of the changed fields.
// Theme observers fire when the active theme id or its palette changed;
// configuration observers fire on any change.
func (s *Store) Apply(next Settings) []string {
	s.mu.Lock()
	prev := s.current
	changes := prev.Diff(next)
	if len(changes) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.current = next
	themeChanged := prev.Theme != next.Theme || !paletteEqual(prev, next)
	themeFns := observersInOrder(s.themeObservers)
	configFns := observersInOrder(s.configObservers)
	s.mu.Unlock()

	if themeChanged {
		for _, fn := range themeFns {
			fn(next.Theme)
		}
	}
	for _, fn := range configFns {
		fn()
	}
	return changes
}

func paletteEqual(prev, next Settings) bool {
	a, errA := prev.Palette(next.Theme)
	b, errB := next.Palette(next.Theme)
	if errA != nil || errB != nil {
		return errA == nil && errB == nil
	}
	return a.Equal(b)
}

func observersInOrder[F any](m map[uint64]F) []F {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]F, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
