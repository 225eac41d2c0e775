package keybind

import (
	"sync"

	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/sequence"
)

// Scope groups registrations so they can be torn down together. A mode or
// UI panel registers its bindings through a scope and closes the scope on
// exit instead of tracking individual IDs.
type Scope struct {
	engine *Engine

	mu     sync.Mutex
	ids    []string
	closed bool
}

// Scope returns a new registration scope backed by the engine.
func (e *Engine) Scope() *Scope {
	return &Scope{engine: e}
}

// Register is Engine.Register with the ID recorded for Close.
func (s *Scope) Register(descriptor string, cb hotkey.Callback, opts ...RegisterOption) (string, error) {
	id, err := s.engine.Register(descriptor, cb, opts...)
	if err != nil {
		return "", err
	}
	s.record(id)
	return id, nil
}

// RegisterHotkey is Engine.RegisterHotkey with the ID recorded for Close.
func (s *Scope) RegisterHotkey(h hotkey.Hotkey, cb hotkey.Callback, opts ...RegisterOption) (string, error) {
	id, err := s.engine.RegisterHotkey(h, cb, opts...)
	if err != nil {
		return "", err
	}
	s.record(id)
	return id, nil
}

// RegisterSequence is Engine.RegisterSequence with the ID recorded for
// Close.
func (s *Scope) RegisterSequence(descriptors []string, cb sequence.Callback, opts sequence.Options) (string, error) {
	id, err := s.engine.RegisterSequence(descriptors, cb, opts)
	if err != nil {
		return "", err
	}
	s.record(id)
	return id, nil
}

func (s *Scope) record(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// Scope already torn down; drop the straggler immediately.
		_ = s.engine.Unregister(id)
		return
	}
	s.ids = append(s.ids, id)
}

// IDs returns the live registration IDs in registration order.
func (s *Scope) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Close unregisters everything the scope registered. Registrations already
// removed individually are skipped. Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	ids := s.ids
	s.ids = nil
	s.mu.Unlock()

	for _, id := range ids {
		// ErrRegistrationNotFound just means someone beat us to it.
		_ = s.engine.Unregister(id)
	}
}
