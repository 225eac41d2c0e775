package keybind

import (
	"time"

	"github.com/dshills/keybind/key"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPlatform fixes the platform used to resolve the adaptive "Mod"
// modifier for every registration that does not override it. The default is
// the detected host platform.
func WithPlatform(p key.Platform) Option {
	return func(e *Engine) {
		e.platform = p
	}
}

// WithLogger sets the engine logger. Pass NullLogger to silence the engine
// entirely.
func WithLogger(l *Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithErrorHandler subscribes a handler for callback panics recovered during
// dispatch. Failures are logged regardless; the handler is for callers that
// want to surface them elsewhere.
func WithErrorHandler(fn func(CallbackError)) Option {
	return func(e *Engine) {
		e.onError = fn
	}
}

// WithSequenceTimeout sets the default inter-key timeout for sequences
// registered without an explicit one.
func WithSequenceTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.seqTimeout = d
		}
	}
}

// regConfig collects per-registration options before the registration is
// built.
type regConfig struct {
	disabled        bool
	requireReset    bool
	preventDefault  bool
	stopPropagation bool
	phase           key.Phase
	platform        key.Platform
}

// RegisterOption configures a single registration.
type RegisterOption func(*regConfig)

// WithDisabled registers the hotkey in the disabled state; enable it later
// with SetEnabled.
func WithDisabled() RegisterOption {
	return func(c *regConfig) {
		c.disabled = true
	}
}

// WithRequireReset makes the registration fire once and stay dormant until
// every key has been released. Holding the chord, or rolling from one
// matching press to another without fully letting go, fires it only once.
func WithRequireReset() RegisterOption {
	return func(c *regConfig) {
		c.requireReset = true
	}
}

// WithPreventDefault marks matched events with a request to suppress their
// default effect.
func WithPreventDefault() RegisterOption {
	return func(c *regConfig) {
		c.preventDefault = true
	}
}

// WithStopPropagation marks matched events with a request to stop further
// propagation.
func WithStopPropagation() RegisterOption {
	return func(c *regConfig) {
		c.stopPropagation = true
	}
}

// WithOnRelease fires the registration on key-up instead of key-down.
func WithOnRelease() RegisterOption {
	return func(c *regConfig) {
		c.phase = key.PhaseRelease
	}
}

// WithPlatformOverride parses this registration's descriptor for a specific
// platform instead of the engine's.
func WithPlatformOverride(p key.Platform) RegisterOption {
	return func(c *regConfig) {
		c.platform = p
	}
}
