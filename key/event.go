package key

import "time"

// Phase distinguishes key press and key release events.
type Phase uint8

const (
	// PhasePress is a key-down event.
	PhasePress Phase = iota

	// PhaseRelease is a key-up event.
	PhaseRelease
)

// String returns "press" or "release".
func (p Phase) String() string {
	switch p {
	case PhasePress:
		return "press"
	case PhaseRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Event is a single keyboard event: a key name, the modifier flags active
// at the moment of the event, and the press/release phase.
//
// Events carry two suppression requests, PreventDefault and StopPropagation.
// Matching registrations record requests on the event; the input boundary
// that produced the event decides what honoring them means. The engine
// itself attaches no semantics to the flags.
type Event struct {
	// Name is the key name. Producers may pass any spelling; consumers
	// normalize with Normalize.
	Name string

	// Mods holds the modifier flags active when the event fired.
	Mods Modifier

	// Phase is the press/release phase.
	Phase Phase

	// Time is when the event occurred.
	Time time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// NewPressEvent returns a key-down Event stamped with the current time.
func NewPressEvent(name string, mods Modifier) *Event {
	return &Event{Name: name, Mods: mods, Phase: PhasePress, Time: time.Now()}
}

// NewReleaseEvent returns a key-up Event stamped with the current time.
func NewReleaseEvent(name string, mods Modifier) *Event {
	return &Event{Name: name, Mods: mods, Phase: PhaseRelease, Time: time.Now()}
}

// IsPress returns true for key-down events.
func (e *Event) IsPress() bool {
	return e.Phase == PhasePress
}

// IsRelease returns true for key-up events.
func (e *Event) IsRelease() bool {
	return e.Phase == PhaseRelease
}

// PreventDefault asks the producing boundary to suppress the event's default
// effect.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was requested.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation asks the producing boundary to stop propagating the event
// further.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was requested.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// String returns a compact form like "press Control+Alt+S".
func (e *Event) String() string {
	name := Normalize(e.Name)
	if e.Mods.IsEmpty() {
		return e.Phase.String() + " " + name
	}
	return e.Phase.String() + " " + e.Mods.String() + "+" + name
}
