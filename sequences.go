package keybind

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/keybind/sequence"
)

// sequenceEntry tracks one registered sequence matcher. enabled is guarded
// by the engine mutex; the matcher has its own lock.
type sequenceEntry struct {
	id      string
	matcher *sequence.Matcher
	enabled bool
}

// RegisterSequence binds a callback to an ordered chord sequence such as
// Ctrl+K followed by Ctrl+C. Zero opts.Timeout means the engine default,
// and empty opts.Descriptors defaults to the descriptors as given. The
// sequence advances on presses only; releases and bare modifier presses
// between steps are ignored.
func (e *Engine) RegisterSequence(descriptors []string, cb sequence.Callback, opts sequence.Options) (string, error) {
	if cb == nil {
		return "", fmt.Errorf("%w: register sequence %v", ErrNilCallback, descriptors)
	}

	steps, err := sequence.ParseSteps(descriptors, e.platform)
	if err != nil {
		return "", fmt.Errorf("register sequence: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = e.seqTimeout
	}
	if len(opts.Descriptors) == 0 {
		opts.Descriptors = descriptors
	}

	id := uuid.NewString()
	first := opts.Descriptors[0]

	wrapped := func(m sequence.Match) {
		e.noteSequenceCompletion()
		cb(m)
	}

	userFailure := opts.OnFailure
	opts.OnFailure = func(r any) {
		e.noteCallbackPanic()
		e.logger.Error("sequence callback panic: %v (sequence %v)", r, opts.Descriptors)
		e.reportCallbackError(CallbackError{
			RegistrationID: id,
			Hotkey:         first,
			Recovered:      r,
		})
		if userFailure != nil {
			userFailure(r)
		}
	}

	m, err := sequence.NewMatcher(steps, wrapped, opts)
	if err != nil {
		return "", fmt.Errorf("register sequence: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		m.Close()
		return "", ErrEngineClosed
	}
	entry := &sequenceEntry{id: id, matcher: m, enabled: true}
	e.seqs = append(e.seqs, entry)
	e.seqIndex[id] = entry
	e.logger.Debug("registered sequence %v (%s)", opts.Descriptors, id)
	return id, nil
}
