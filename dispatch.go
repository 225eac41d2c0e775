package keybind

import (
	"runtime/debug"

	"github.com/dshills/keybind/hotkey"
)

// CallbackError describes a recovered callback panic. The engine never lets
// a panicking callback take down the event loop; it recovers, logs, and
// reports here when an error handler is installed.
type CallbackError struct {
	// RegistrationID identifies the hotkey or sequence registration whose
	// callback panicked.
	RegistrationID string

	// Hotkey is the canonical descriptor of the registration. For a
	// sequence it is the first step's descriptor.
	Hotkey string

	// Recovered is the value recovered from the panic.
	Recovered any

	// Stack is the goroutine stack captured at recovery.
	Stack []byte
}

// invocation is a firing decided during the state pass, carried out of the
// lock so the callback can re-enter the engine.
type invocation struct {
	id       string
	callback hotkey.Callback
	ctx      hotkey.Context
}

// invoke runs one callback with panic isolation. A panic in one callback
// must not starve the rest of the dispatch list, so recovery happens here
// per call rather than once around the loop.
func (e *Engine) invoke(call invocation) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			e.noteCallbackPanic()
			e.logger.Error("hotkey callback panic: %v (hotkey %q)", r, call.ctx.Hotkey)
			e.reportCallbackError(CallbackError{
				RegistrationID: call.id,
				Hotkey:         call.ctx.Hotkey,
				Recovered:      r,
				Stack:          stack,
			})
		}
	}()

	if call.callback != nil {
		call.callback(call.ctx)
	}
}

// reportCallbackError hands a recovered panic to the configured error
// handler. The handler itself is untrusted; if it panics the engine logs
// and moves on.
func (e *Engine) reportCallbackError(cbErr CallbackError) {
	e.mu.Lock()
	handler := e.onError
	e.mu.Unlock()
	if handler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("error handler panic: %v", r)
		}
	}()
	handler(cbErr)
}
