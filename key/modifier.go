package key

import "strings"

// Modifier is a bitmask of keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModControl indicates the Control key.
	ModControl Modifier = 1 << iota

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModShift indicates the Shift key.
	ModShift

	// ModMeta indicates the Meta key (Command on macOS, Win on Windows).
	ModMeta
)

// canonicalOrder fixes the order modifiers appear in whenever they are
// listed or serialized: Control, Alt, Shift, Meta.
var canonicalOrder = [4]Modifier{ModControl, ModAlt, ModShift, ModMeta}

// CanonicalModifiers returns the four modifiers in canonical order.
func CanonicalModifiers() []Modifier {
	return []Modifier{ModControl, ModAlt, ModShift, ModMeta}
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasControl returns true if Control is set.
func (m Modifier) HasControl() bool {
	return m.Has(ModControl)
}

// HasAlt returns true if Alt is set.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasShift returns true if Shift is set.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasMeta returns true if Meta is set.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Split returns the individual modifiers set in m, in canonical order.
func (m Modifier) Split() []Modifier {
	if m == ModNone {
		return nil
	}
	var mods []Modifier
	for _, mod := range canonicalOrder {
		if m.Has(mod) {
			mods = append(mods, mod)
		}
	}
	return mods
}

// Name returns the canonical name of a single modifier bit, or "" if m is
// not exactly one of the four modifiers.
func (m Modifier) Name() string {
	switch m {
	case ModControl:
		return "Control"
	case ModAlt:
		return "Alt"
	case ModShift:
		return "Shift"
	case ModMeta:
		return "Meta"
	}
	return ""
}

// String returns the canonical representation like "Control+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, mod := range canonicalOrder {
		if m.Has(mod) {
			parts = append(parts, mod.Name())
		}
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier spellings (lowercase) to Modifier values.
// Single-letter spellings are deliberately absent: in hotkey descriptors a
// single letter is a key, never a modifier.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModControl,
	"control": ModControl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
}

// ModifierFromName returns the Modifier for a given fixed name
// (case-insensitive). Returns ModNone if the name is not recognized.
// Platform-adaptive spellings like "mod" are resolved by
// ResolveModifierToken, not here.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// IsModifierKeyName reports whether a canonical key name names one of the
// four modifier keys themselves ("Control", "Alt", "Shift", "Meta"). Held-key
// tracking sees modifier keys as ordinary keys; sequence matching ignores
// them.
func IsModifierKeyName(name string) bool {
	switch name {
	case "Control", "Alt", "Shift", "Meta":
		return true
	}
	return false
}
