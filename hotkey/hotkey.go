package hotkey

import (
	"github.com/dshills/keybind/key"
)

// Hotkey is the canonical parsed form of a descriptor: one non-modifier key
// plus the exact set of required modifiers. The boolean flags and the
// Modifiers list always agree; Modifiers holds the set flags in canonical
// order (Control, Alt, Shift, Meta).
type Hotkey struct {
	// Key is the canonical key name.
	Key string

	// Required modifier flags.
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool

	// Modifiers lists the required modifiers in canonical order, derived
	// from the flags by New and Parse.
	Modifiers []key.Modifier
}

// New builds a Hotkey from a key name and modifier bitmask. The name is
// normalized to its canonical spelling and the Modifiers list is derived in
// canonical order.
func New(name string, mods key.Modifier) Hotkey {
	return Hotkey{
		Key:       key.Normalize(name),
		Ctrl:      mods.HasControl(),
		Shift:     mods.HasShift(),
		Alt:       mods.HasAlt(),
		Meta:      mods.HasMeta(),
		Modifiers: mods.Split(),
	}
}

// Mods returns the required modifiers as a bitmask.
func (h Hotkey) Mods() key.Modifier {
	var m key.Modifier
	if h.Ctrl {
		m = m.With(key.ModControl)
	}
	if h.Alt {
		m = m.With(key.ModAlt)
	}
	if h.Shift {
		m = m.With(key.ModShift)
	}
	if h.Meta {
		m = m.With(key.ModMeta)
	}
	return m
}

// String returns the canonical serialization: modifiers in the fixed order
// Control, Alt, Shift, Meta, then the key, joined by '+'. The result always
// re-parses to an equal Hotkey on any platform.
func (h Hotkey) String() string {
	mods := h.Mods()
	if mods.IsEmpty() {
		return h.Key
	}
	return mods.String() + "+" + h.Key
}

// Equal reports whether two hotkeys require the same key and modifier set.
func (h Hotkey) Equal(other Hotkey) bool {
	return h.Key == other.Key && h.Mods() == other.Mods()
}
