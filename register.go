package keybind

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
)

// registration is one hotkey binding. All fields are guarded by the engine
// mutex; hasFired is the fire-once latch cleared when the held set empties.
type registration struct {
	id         string
	descriptor string
	parsed     hotkey.Hotkey
	callback   hotkey.Callback
	phase      key.Phase

	enabled         bool
	requireReset    bool
	preventDefault  bool
	stopPropagation bool
	hasFired        bool
}

// Register parses a hotkey descriptor and binds a callback to it. The
// returned ID is the handle for Unregister and SetEnabled. Descriptors
// resolve against the engine platform unless WithPlatformOverride says
// otherwise.
func (e *Engine) Register(descriptor string, cb hotkey.Callback, opts ...RegisterOption) (string, error) {
	if cb == nil {
		return "", fmt.Errorf("%w: register %q", ErrNilCallback, descriptor)
	}

	cfg := regConfig{phase: key.PhasePress, platform: e.platform}
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := hotkey.Parse(descriptor, cfg.platform)
	if err != nil {
		return "", fmt.Errorf("register %q: %w", descriptor, err)
	}
	return e.addRegistration(descriptor, h, cb, cfg)
}

// RegisterHotkey binds a callback to an already-built hotkey, skipping the
// descriptor parse. The canonical string form becomes the descriptor.
func (e *Engine) RegisterHotkey(h hotkey.Hotkey, cb hotkey.Callback, opts ...RegisterOption) (string, error) {
	if cb == nil {
		return "", fmt.Errorf("%w: register %q", ErrNilCallback, h.String())
	}

	cfg := regConfig{phase: key.PhasePress, platform: e.platform}
	for _, opt := range opts {
		opt(&cfg)
	}
	return e.addRegistration(h.String(), h, cb, cfg)
}

func (e *Engine) addRegistration(descriptor string, h hotkey.Hotkey, cb hotkey.Callback, cfg regConfig) (string, error) {
	r := &registration{
		id:              uuid.NewString(),
		descriptor:      descriptor,
		parsed:          h,
		callback:        cb,
		phase:           cfg.phase,
		enabled:         !cfg.disabled,
		requireReset:    cfg.requireReset,
		preventDefault:  cfg.preventDefault,
		stopPropagation: cfg.stopPropagation,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", ErrEngineClosed
	}
	e.regs = append(e.regs, r)
	e.regIndex[r.id] = r
	e.logger.Debug("registered %q as %s (%s)", descriptor, h.String(), r.id)
	return r.id, nil
}

// Unregister removes a hotkey or sequence registration by ID. Removing a
// sequence stops its timer.
func (e *Engine) Unregister(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}

	if _, ok := e.regIndex[id]; ok {
		delete(e.regIndex, id)
		for i, r := range e.regs {
			if r.id == id {
				e.regs = append(e.regs[:i], e.regs[i+1:]...)
				break
			}
		}
		e.logger.Debug("unregistered %s", id)
		return nil
	}

	if s, ok := e.seqIndex[id]; ok {
		delete(e.seqIndex, id)
		for i, entry := range e.seqs {
			if entry.id == id {
				e.seqs = append(e.seqs[:i], e.seqs[i+1:]...)
				break
			}
		}
		s.matcher.Close()
		e.logger.Debug("unregistered sequence %s", id)
		return nil
	}

	return fmt.Errorf("%w: %s", ErrRegistrationNotFound, id)
}

// SetEnabled toggles a registration without losing its place in dispatch
// order. Disabling a sequence abandons any in-progress attempt.
func (e *Engine) SetEnabled(id string, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}

	if r, ok := e.regIndex[id]; ok {
		r.enabled = enabled
		if !enabled {
			r.hasFired = false
		}
		return nil
	}
	if s, ok := e.seqIndex[id]; ok {
		s.enabled = enabled
		if !enabled {
			s.matcher.Reset()
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRegistrationNotFound, id)
}

// RegistrationInfo is a read-only snapshot of one registration.
type RegistrationInfo struct {
	// ID is the registration handle.
	ID string

	// Hotkey is the descriptor as registered.
	Hotkey string

	// Canonical is the normalized form the engine matches on.
	Canonical string

	// Phase is the event phase the registration fires on.
	Phase key.Phase

	// Enabled reports whether the registration participates in dispatch.
	Enabled bool

	// RequireReset reports whether the registration fires once per hold.
	RequireReset bool

	// Sequence holds the step descriptors for a sequence registration and
	// is nil for a plain hotkey.
	Sequence []string
}

// Registrations lists every registration, hotkeys in dispatch order
// followed by sequences in registration order.
func (e *Engine) Registrations() []RegistrationInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	infos := make([]RegistrationInfo, 0, len(e.regs)+len(e.seqs))
	for _, r := range e.regs {
		infos = append(infos, RegistrationInfo{
			ID:           r.id,
			Hotkey:       r.descriptor,
			Canonical:    r.parsed.String(),
			Phase:        r.phase,
			Enabled:      r.enabled,
			RequireReset: r.requireReset,
		})
	}
	for _, s := range e.seqs {
		descs := s.matcher.Descriptors()
		first := ""
		if len(descs) > 0 {
			first = descs[0]
		}
		infos = append(infos, RegistrationInfo{
			ID:        s.id,
			Hotkey:    first,
			Canonical: first,
			Phase:     key.PhasePress,
			Enabled:   s.enabled,
			Sequence:  descs,
		})
	}
	return infos
}
