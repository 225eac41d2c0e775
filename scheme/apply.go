package scheme

import (
	"sync"
	"time"

	"github.com/dshills/keybind"
	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
	"github.com/dshills/keybind/sequence"
)

// Actions maps action names to implementations. Apply looks bindings up
// here by their Action field.
type Actions map[string]func()

// Skip records one binding Apply could not register and why.
type Skip struct {
	// Keys is the binding descriptor, or the first step for a sequence.
	Keys string

	// Action is the action name the binding asked for.
	Action string

	// Reason says why the binding was skipped.
	Reason string
}

// Applied tracks the registrations one Apply call produced so they can be
// torn down together.
type Applied struct {
	engine *keybind.Engine

	mu     sync.Mutex
	ids    []string
	skips  []Skip
	closed bool
}

// Apply registers every binding in the scheme against the engine. Bindings
// with an unknown action or an unregistrable descriptor are skipped with a
// recorded reason rather than failing the whole scheme; a config file with
// one bad line should not lose the other fifty bindings.
func Apply(e *keybind.Engine, s *Scheme, actions Actions) (*Applied, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	if s == nil {
		return nil, ErrNilScheme
	}

	a := &Applied{engine: e}

	for _, b := range s.Bindings {
		fn, ok := actions[b.Action]
		if !ok {
			a.skips = append(a.skips, Skip{Keys: b.Keys, Action: b.Action, Reason: "unknown action"})
			continue
		}

		var opts []keybind.RegisterOption
		if s.Platform != "" {
			opts = append(opts, keybind.WithPlatformOverride(s.Platform))
		}
		if !b.Enabled {
			opts = append(opts, keybind.WithDisabled())
		}
		if b.RequireReset {
			opts = append(opts, keybind.WithRequireReset())
		}
		if b.PreventDefault {
			opts = append(opts, keybind.WithPreventDefault())
		}
		if b.StopPropagation {
			opts = append(opts, keybind.WithStopPropagation())
		}
		if b.OnRelease {
			opts = append(opts, keybind.WithOnRelease())
		}

		id, err := e.Register(b.Keys, func(hotkey.Context) { fn() }, opts...)
		if err != nil {
			a.skips = append(a.skips, Skip{Keys: b.Keys, Action: b.Action, Reason: err.Error()})
			continue
		}
		a.ids = append(a.ids, id)
	}

	for _, sb := range s.Sequences {
		fn, ok := actions[sb.Action]
		if !ok {
			a.skips = append(a.skips, Skip{Keys: firstStep(sb.Steps), Action: sb.Action, Reason: "unknown action"})
			continue
		}

		steps := sb.Steps
		if s.Platform != "" {
			// Sequences have no per-registration platform override, so a
			// pinned platform is resolved here: canonical descriptors parse
			// the same everywhere.
			normalized, err := normalizeSteps(sb.Steps, s.Platform)
			if err != nil {
				a.skips = append(a.skips, Skip{Keys: firstStep(sb.Steps), Action: sb.Action, Reason: err.Error()})
				continue
			}
			steps = normalized
		}

		opts := sequence.Options{Descriptors: sb.Steps}
		if sb.TimeoutMS > 0 {
			opts.Timeout = time.Duration(sb.TimeoutMS) * time.Millisecond
		}

		id, err := e.RegisterSequence(steps, func(sequence.Match) { fn() }, opts)
		if err != nil {
			a.skips = append(a.skips, Skip{Keys: firstStep(sb.Steps), Action: sb.Action, Reason: err.Error()})
			continue
		}
		a.ids = append(a.ids, id)
	}

	return a, nil
}

func firstStep(steps []string) string {
	if len(steps) == 0 {
		return ""
	}
	return steps[0]
}

func normalizeSteps(steps []string, platform key.Platform) ([]string, error) {
	out := make([]string, len(steps))
	for i, step := range steps {
		n, err := hotkey.Normalize(step, platform)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// IDs returns the registration IDs in application order.
func (a *Applied) IDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.ids))
	copy(out, a.ids)
	return out
}

// Skips returns the bindings that were not registered.
func (a *Applied) Skips() []Skip {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Skip, len(a.skips))
	copy(out, a.skips)
	return out
}

// Close unregisters everything Apply registered. Close is idempotent.
func (a *Applied) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	ids := a.ids
	a.ids = nil
	a.mu.Unlock()

	for _, id := range ids {
		// Individually removed registrations are fine to miss here.
		_ = a.engine.Unregister(id)
	}
}
