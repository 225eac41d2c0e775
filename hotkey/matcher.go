package hotkey

import "github.com/dshills/keybind/key"

// Matches reports whether a single input event satisfies the hotkey.
//
// The event's key name must equal the hotkey's key after normalization, and
// the event's modifier flags must exactly equal the required set: a missing
// required modifier fails the match, and so does any extra one. "Control+S"
// never matches a plain "S" press, and "S" never matches Control+S.
//
// Matches is pure: it reads nothing but its arguments, mutates nothing, and
// is safe to call at any event rate.
func Matches(h Hotkey, ev *key.Event) bool {
	if ev == nil {
		return false
	}
	if key.Normalize(ev.Name) != h.Key {
		return false
	}
	return ev.Mods == h.Mods()
}
