package keystate

import (
	"sync"

	"github.com/dshills/keybind/key"
)

// Op identifies the kind of mutation a Change describes.
type Op uint8

const (
	// OpPress added a key to the held set.
	OpPress Op = iota

	// OpRelease removed a key from the held set.
	OpRelease

	// OpClear emptied the held set through an explicit Reset.
	OpClear
)

// String returns "press", "release", or "clear".
func (o Op) String() string {
	switch o {
	case OpPress:
		return "press"
	case OpRelease:
		return "release"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Change describes one tracker mutation.
type Change struct {
	// Op is the kind of mutation.
	Op Op

	// Key is the normalized key name, empty for OpClear.
	Key string

	// Held is a snapshot of the held set after the change, in press order.
	// The slice is the caller's to keep.
	Held []string

	// AllReleased is true when a release emptied a non-empty set, and
	// always true for OpClear. It is the signal fire-once hotkeys re-arm
	// on.
	AllReleased bool

	// Changed reports whether the operation actually mutated the set.
	// Pressing a held key or releasing an untracked one changes nothing.
	Changed bool
}

// Listener observes tracker mutations. Listeners run synchronously on the
// goroutine performing the mutation, in subscription order, after the
// tracker's own lock is released. A listener must not call back into the
// component that owns the tracker.
type Listener func(Change)

// FailureHandler receives panics recovered from listeners.
type FailureHandler func(listenerID uint64, recovered any)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithFailureHandler sets the handler invoked when a listener panics. The
// panic never propagates and never prevents later listeners from running.
func WithFailureHandler(fn FailureHandler) Option {
	return func(t *Tracker) {
		t.onFailure = fn
	}
}

// Tracker maintains the set of currently held keys. The zero value is not
// usable; construct with NewTracker. Each consumer owns its tracker.
type Tracker struct {
	mu        sync.Mutex
	held      map[string]struct{}
	order     []string
	listeners []listenerEntry
	nextID    uint64
	onFailure FailureHandler
}

// NewTracker returns an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		held: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Press records a key going down. The name is normalized before tracking.
// Pressing a key that is already held is not a mutation: auto-repeat never
// produces notifications.
func (t *Tracker) Press(name string) Change {
	name = key.Normalize(name)

	t.mu.Lock()
	if _, ok := t.held[name]; ok {
		change := Change{Op: OpPress, Key: name, Held: t.snapshotLocked()}
		t.mu.Unlock()
		return change
	}

	t.held[name] = struct{}{}
	t.order = append(t.order, name)
	change := Change{Op: OpPress, Key: name, Held: t.snapshotLocked(), Changed: true}
	listeners := t.listenersLocked()
	t.mu.Unlock()

	t.notify(listeners, change)
	return change
}

// Release records a key coming up. Releasing a key that is not held is not
// a mutation and does not count as an all-released transition. When the
// release empties a non-empty set, the Change carries AllReleased.
func (t *Tracker) Release(name string) Change {
	name = key.Normalize(name)

	t.mu.Lock()
	if _, ok := t.held[name]; !ok {
		change := Change{Op: OpRelease, Key: name, Held: t.snapshotLocked()}
		t.mu.Unlock()
		return change
	}

	delete(t.held, name)
	for i, held := range t.order {
		if held == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	change := Change{
		Op:          OpRelease,
		Key:         name,
		Held:        t.snapshotLocked(),
		AllReleased: len(t.order) == 0,
		Changed:     true,
	}
	listeners := t.listenersLocked()
	t.mu.Unlock()

	t.notify(listeners, change)
	return change
}

// Reset unconditionally empties the held set and notifies listeners with an
// OpClear change. Use it when the event source loses key-up visibility
// (focus loss, suspend) and the held set can no longer be trusted.
func (t *Tracker) Reset() Change {
	t.mu.Lock()
	changed := len(t.order) > 0
	t.held = make(map[string]struct{})
	t.order = nil
	change := Change{Op: OpClear, AllReleased: true, Changed: changed}
	listeners := t.listenersLocked()
	t.mu.Unlock()

	t.notify(listeners, change)
	return change
}

// Held returns a snapshot of the held keys in press order.
func (t *Tracker) Held() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// IsHeld reports whether a key is currently held. The name is normalized
// before lookup.
func (t *Tracker) IsHeld(name string) bool {
	name = key.Normalize(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.held[name]
	return ok
}

// Len returns the number of held keys.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// AddListener subscribes to tracker mutations and returns an id for
// RemoveListener. Listeners are invoked in subscription order.
func (t *Tracker) AddListener(fn Listener) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.listeners = append(t.listeners, listenerEntry{id: t.nextID, fn: fn})
	return t.nextID
}

// RemoveListener unsubscribes a listener. It reports whether the id was
// subscribed.
func (t *Tracker) RemoveListener(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, entry := range t.listeners {
		if entry.id == id {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Tracker) snapshotLocked() []string {
	if len(t.order) == 0 {
		return nil
	}
	held := make([]string, len(t.order))
	copy(held, t.order)
	return held
}

func (t *Tracker) listenersLocked() []listenerEntry {
	if len(t.listeners) == 0 {
		return nil
	}
	entries := make([]listenerEntry, len(t.listeners))
	copy(entries, t.listeners)
	return entries
}

// notify runs outside the tracker lock so listeners may inspect the tracker.
func (t *Tracker) notify(entries []listenerEntry, change Change) {
	for _, entry := range entries {
		t.invoke(entry, change)
	}
}

func (t *Tracker) invoke(entry listenerEntry, change Change) {
	defer func() {
		if r := recover(); r != nil && t.onFailure != nil {
			// The failure handler is protected too; a panicking handler
			// must not take down the mutation that triggered it.
			func() {
				defer func() { _ = recover() }()
				t.onFailure(entry.id, r)
			}()
		}
	}()
	entry.fn(change)
}
