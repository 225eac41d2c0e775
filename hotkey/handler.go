package hotkey

import "github.com/dshills/keybind/key"

// Context carries what a callback learns about its trigger: the descriptor
// the callback was registered under, the parsed form, and the live event.
type Context struct {
	// Hotkey is the descriptor as registered, before normalization.
	Hotkey string

	// Parsed is the canonical parsed form.
	Parsed Hotkey

	// Event is the event that fired the callback. Callbacks may set
	// suppression requests on it.
	Event *key.Event
}

// Callback is invoked when a hotkey fires.
type Callback func(Context)

// HandlerOptions adjust what a handler does to a matched event before
// invoking the callback.
type HandlerOptions struct {
	PreventDefault  bool
	StopPropagation bool
}

// NewHandler wraps one hotkey and callback into an event handler function.
// The handler reports whether the event matched; on a match it applies the
// suppression options to the event and invokes the callback.
//
// Handlers are the single-target convenience, one widget listening for one
// chord. For many hotkeys with ordered dispatch, held-key tracking, and
// fire-once behavior, use the engine.
func NewHandler(h Hotkey, cb Callback, opts HandlerOptions) func(*key.Event) bool {
	desc := h.String()
	return func(ev *key.Event) bool {
		if !Matches(h, ev) {
			return false
		}
		if opts.PreventDefault {
			ev.PreventDefault()
		}
		if opts.StopPropagation {
			ev.StopPropagation()
		}
		if cb != nil {
			cb(Context{Hotkey: desc, Parsed: h, Event: ev})
		}
		return true
	}
}

// HandlerEntry pairs a hotkey with its callback and options for
// NewMultiHandler.
type HandlerEntry struct {
	Hotkey   Hotkey
	Callback Callback
	Options  HandlerOptions
}

// NewMultiHandler builds a handler over several hotkeys. Entries are tried
// in order and the first match wins; later entries never see a matched
// event. First-match short-circuiting is right for routing inside a single
// target; the engine, by contrast, always evaluates every registration.
func NewMultiHandler(entries []HandlerEntry) func(*key.Event) bool {
	handlers := make([]func(*key.Event) bool, len(entries))
	for i, e := range entries {
		handlers[i] = NewHandler(e.Hotkey, e.Callback, e.Options)
	}
	return func(ev *key.Event) bool {
		for _, handle := range handlers {
			if handle(ev) {
				return true
			}
		}
		return false
	}
}
