package keybind

import (
	"sync"
	"time"

	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
	"github.com/dshills/keybind/keystate"
	"github.com/dshills/keybind/sequence"
)

// Engine owns hotkey registrations, the held-key tracker, and sequence
// matchers, and dispatches key events to them. Construct with New; there is
// deliberately no package-level engine, so tests and embedders each own
// their instance and state never leaks between them.
//
// One mutex serializes all state changes. Events are expected from a single
// event loop; the lock exists so sequence timers and any stray goroutine
// see consistent state, not to make concurrent dispatch fast. Callbacks run
// after the state pass completes and outside the lock, so they may safely
// register, unregister, or reset the engine.
type Engine struct {
	mu       sync.Mutex
	platform key.Platform
	logger   *Logger
	onError  func(CallbackError)

	// seqTimeout is the default inter-key timeout for sequences registered
	// without one.
	seqTimeout time.Duration

	tracker  *keystate.Tracker
	regs     []*registration
	regIndex map[string]*registration
	seqs     []*sequenceEntry
	seqIndex map[string]*sequenceEntry
	closed   bool

	stats Stats
}

// Stats counts engine activity since construction.
type Stats struct {
	// Events is the number of events processed.
	Events uint64

	// Matches is the number of registration matches dispatched.
	Matches uint64

	// CallbackPanics is the number of callback panics recovered.
	CallbackPanics uint64

	// SequenceCompletions is the number of completed sequences.
	SequenceCompletions uint64
}

// New constructs an engine. Defaults: detected host platform, stderr logger
// at info level, one-second sequence timeout.
func New(opts ...Option) *Engine {
	e := &Engine{
		platform:   key.Detect(),
		logger:     NewLogger(DefaultLoggerConfig()),
		seqTimeout: sequence.DefaultTimeout,
		regIndex:   make(map[string]*registration),
		seqIndex:   make(map[string]*sequenceEntry),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tracker = keystate.NewTracker(keystate.WithFailureHandler(func(id uint64, r any) {
		e.logger.Error("key state listener %d panicked: %v", id, r)
	}))
	return e
}

// Platform returns the platform the engine resolves descriptors for.
func (e *Engine) Platform() key.Platform {
	return e.platform
}

// SequenceTimeout returns the default inter-key timeout for sequences.
func (e *Engine) SequenceTimeout() time.Duration {
	return e.seqTimeout
}

// Tracker exposes the held-key tracker for listeners and state queries.
// Listeners run synchronously during event processing and must not call
// engine methods; use them to observe, not to act.
func (e *Engine) Tracker() *keystate.Tracker {
	return e.tracker
}

// Held returns the currently held keys in press order.
func (e *Engine) Held() []string {
	return e.tracker.Held()
}

// ProcessEvent feeds one key event through the engine: held-key bookkeeping
// first, then every press/release registration in insertion order, then the
// sequence matchers. Matching never short-circuits; every registration sees
// every event it qualifies for.
func (e *Engine) ProcessEvent(ev *key.Event) {
	if ev == nil {
		return
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.stats.Events++

	// Held-key bookkeeping precedes matching so fire-once registrations
	// re-arm on the same event that empties the held set.
	var change keystate.Change
	switch ev.Phase {
	case key.PhasePress:
		change = e.tracker.Press(ev.Name)
	case key.PhaseRelease:
		change = e.tracker.Release(ev.Name)
	}
	if change.AllReleased {
		for _, r := range e.regs {
			r.hasFired = false
		}
	}

	// State pass: decide every firing under the lock, run callbacks after.
	var calls []invocation
	for _, r := range e.regs {
		if r.phase != ev.Phase || !r.enabled {
			continue
		}
		if r.requireReset && r.hasFired {
			continue
		}
		if !hotkey.Matches(r.parsed, ev) {
			continue
		}
		if r.requireReset {
			r.hasFired = true
		}
		if r.preventDefault {
			ev.PreventDefault()
		}
		if r.stopPropagation {
			ev.StopPropagation()
		}
		calls = append(calls, invocation{
			id:       r.id,
			callback: r.callback,
			ctx:      hotkey.Context{Hotkey: r.descriptor, Parsed: r.parsed, Event: ev},
		})
	}
	e.stats.Matches += uint64(len(calls))

	var matchers []*sequence.Matcher
	for _, s := range e.seqs {
		if s.enabled {
			matchers = append(matchers, s.matcher)
		}
	}
	e.mu.Unlock()

	for _, call := range calls {
		e.invoke(call)
	}
	for _, m := range matchers {
		m.HandleEvent(ev)
	}
}

// Reset clears the held-key tracker, re-arms every fire-once registration,
// and abandons in-progress sequence attempts. Use it when the event source
// loses key-up visibility (focus loss, suspend) or between tests.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.tracker.Reset()
	for _, r := range e.regs {
		r.hasFired = false
	}
	for _, s := range e.seqs {
		s.matcher.Reset()
	}
	e.logger.Debug("engine reset")
}

// Close stops all sequence timers, drops every registration, and makes the
// engine permanently inert. Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true

	for _, s := range e.seqs {
		s.matcher.Close()
	}
	e.regs = nil
	e.seqs = nil
	e.regIndex = make(map[string]*registration)
	e.seqIndex = make(map[string]*sequenceEntry)
	e.tracker.Reset()
	e.logger.Debug("engine closed")
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) noteSequenceCompletion() {
	e.mu.Lock()
	e.stats.SequenceCompletions++
	e.mu.Unlock()
}

func (e *Engine) noteCallbackPanic() {
	e.mu.Lock()
	e.stats.CallbackPanics++
	e.mu.Unlock()
}
