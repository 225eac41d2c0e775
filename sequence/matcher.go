package sequence

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
)

// DefaultTimeout is the maximum gap between consecutive sequence keys.
const DefaultTimeout = 1000 * time.Millisecond

// ErrEmptySequence is returned when a sequence has no steps.
var ErrEmptySequence = errors.New("sequence needs at least one step")

// State reports where a matcher is in its lifecycle.
type State uint8

const (
	// StateIdle means no attempt is in progress.
	StateIdle State = iota

	// StateAdvancing means at least one step has matched and the matcher
	// is waiting for the next key.
	StateAdvancing
)

// String returns "idle" or "advancing".
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAdvancing:
		return "advancing"
	default:
		return "unknown"
	}
}

// Match is passed to the callback when a sequence completes.
type Match struct {
	// Descriptors are the step descriptors as registered.
	Descriptors []string

	// Steps are the parsed steps.
	Steps []hotkey.Hotkey

	// Event is the key event that completed the sequence.
	Event *key.Event
}

// Callback is invoked when the sequence completes.
type Callback func(Match)

// FailureHandler receives panics recovered from the callback.
type FailureHandler func(recovered any)

// Options configure a Matcher.
type Options struct {
	// Timeout is the maximum gap between consecutive keys. Zero or
	// negative selects DefaultTimeout.
	Timeout time.Duration

	// Descriptors carries the original step spellings into Match. When
	// empty, the canonical serializations of the steps are used.
	Descriptors []string

	// OnFailure receives recovered callback panics. A panicking callback
	// never corrupts matcher state.
	OnFailure FailureHandler
}

// ParseSteps parses an ordered list of descriptors into sequence steps.
func ParseSteps(descriptors []string, platform key.Platform) ([]hotkey.Hotkey, error) {
	if len(descriptors) == 0 {
		return nil, ErrEmptySequence
	}
	steps := make([]hotkey.Hotkey, len(descriptors))
	for i, d := range descriptors {
		h, err := hotkey.Parse(d, platform)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps[i] = h
	}
	return steps, nil
}

// Matcher advances through an ordered list of hotkey steps. Construct with
// NewMatcher; the zero value is not usable.
type Matcher struct {
	mu          sync.Mutex
	steps       []hotkey.Hotkey
	descriptors []string
	cb          Callback
	timeout     time.Duration
	onFailure   FailureHandler

	pos      int
	deadline time.Time
	timer    *time.Timer
	closed   bool
}

// NewMatcher builds a matcher over the given steps.
func NewMatcher(steps []hotkey.Hotkey, cb Callback, opts Options) (*Matcher, error) {
	if len(steps) == 0 {
		return nil, ErrEmptySequence
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	descriptors := opts.Descriptors
	if len(descriptors) == 0 {
		descriptors = make([]string, len(steps))
		for i, s := range steps {
			descriptors[i] = s.String()
		}
	}

	return &Matcher{
		steps:       append([]hotkey.Hotkey(nil), steps...),
		descriptors: append([]string(nil), descriptors...),
		cb:          cb,
		timeout:     timeout,
		onFailure:   opts.OnFailure,
	}, nil
}

// HandleEvent feeds one event to the matcher and reports whether the
// sequence completed on this event.
//
// Only key-down events participate; releases and modifier-key presses are
// invisible. A non-matching key or an expired gap resets the attempt, and
// the same event is then re-evaluated against the first step so it can
// begin a new attempt.
func (m *Matcher) HandleEvent(ev *key.Event) bool {
	if ev == nil || ev.Phase != key.PhasePress {
		return false
	}
	if key.IsModifierKeyName(key.Normalize(ev.Name)) {
		return false
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}

	// A stale attempt expires on the next key even if the timer has not
	// fired yet.
	if m.pos > 0 && time.Now().After(m.deadline) {
		m.resetLocked()
	}

	if !hotkey.Matches(m.steps[m.pos], ev) {
		if m.pos == 0 {
			m.mu.Unlock()
			return false
		}
		// Broken attempt: reset, then let this key start over.
		m.resetLocked()
		if !hotkey.Matches(m.steps[0], ev) {
			m.mu.Unlock()
			return false
		}
	}

	m.pos++
	if m.pos < len(m.steps) {
		m.armLocked()
		m.mu.Unlock()
		return false
	}

	cb := m.cb
	match := Match{
		Descriptors: append([]string(nil), m.descriptors...),
		Steps:       append([]hotkey.Hotkey(nil), m.steps...),
		Event:       ev,
	}
	m.resetLocked()
	m.mu.Unlock()

	if cb != nil {
		m.safeInvoke(cb, match)
	}
	return true
}

// Reset abandons any in-progress attempt and cancels the timer.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

// Close cancels the timer and makes the matcher permanently inert.
func (m *Matcher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	m.closed = true
}

// Position returns how many steps have matched in the current attempt.
func (m *Matcher) Position() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

// State returns StateIdle or StateAdvancing.
func (m *Matcher) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos > 0 {
		return StateAdvancing
	}
	return StateIdle
}

// Len returns the number of steps.
func (m *Matcher) Len() int {
	return len(m.steps)
}

// Timeout returns the configured inter-key timeout.
func (m *Matcher) Timeout() time.Duration {
	return m.timeout
}

// Descriptors returns the step descriptors as registered.
func (m *Matcher) Descriptors() []string {
	return append([]string(nil), m.descriptors...)
}

// armLocked refreshes the deadline and re-arms the single timer. Caller
// holds m.mu.
func (m *Matcher) armLocked() {
	m.deadline = time.Now().Add(m.timeout)
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.timeout, m.handleTimeout)
}

// handleTimeout fires when the inter-key gap elapses. An advance may have
// re-armed the deadline after this fire was scheduled, so reset only if the
// attempt is genuinely stale.
func (m *Matcher) handleTimeout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.pos == 0 {
		return
	}
	if time.Now().Before(m.deadline) {
		return
	}
	m.resetLocked()
}

// resetLocked returns to the idle state and cancels the timer. Caller holds
// m.mu.
func (m *Matcher) resetLocked() {
	m.pos = 0
	m.deadline = time.Time{}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Matcher) safeInvoke(cb Callback, match Match) {
	defer func() {
		if r := recover(); r != nil && m.onFailure != nil {
			// The failure handler is protected too.
			func() {
				defer func() { _ = recover() }()
				m.onFailure(r)
			}()
		}
	}()
	cb(match)
}
