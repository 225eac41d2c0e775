package key

import (
	"strings"
	"unicode"
)

// Family classifies a canonical key name.
type Family uint8

const (
	// FamilyUnknown covers names outside every known family.
	FamilyUnknown Family = iota

	// FamilyLetter covers A-Z.
	FamilyLetter

	// FamilyDigit covers 0-9.
	FamilyDigit

	// FamilyFunction covers F1-F12.
	FamilyFunction

	// FamilyNavigation covers arrows, Home, End, PageUp, PageDown.
	FamilyNavigation

	// FamilyEditing covers editing and special keys (Enter, Escape, Tab,
	// Backspace, Delete, Insert, Space, lock keys, PrintScreen, Pause).
	FamilyEditing

	// FamilyPunctuation covers punctuation keys, including Plus.
	FamilyPunctuation

	// FamilyModifier covers the modifier keys when they appear as keys
	// themselves ("Control", "Alt", "Shift", "Meta").
	FamilyModifier
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case FamilyLetter:
		return "letter"
	case FamilyDigit:
		return "digit"
	case FamilyFunction:
		return "function"
	case FamilyNavigation:
		return "navigation"
	case FamilyEditing:
		return "editing"
	case FamilyPunctuation:
		return "punctuation"
	case FamilyModifier:
		return "modifier"
	default:
		return "unknown"
	}
}

// namedKeys maps lowercase spellings (canonical and alias) to canonical key
// names. Single-character names never pass through this map; Normalize
// handles them directly.
var namedKeys = map[string]string{
	// Navigation
	"arrowup":    "ArrowUp",
	"up":         "ArrowUp",
	"arrowdown":  "ArrowDown",
	"down":       "ArrowDown",
	"arrowleft":  "ArrowLeft",
	"left":       "ArrowLeft",
	"arrowright": "ArrowRight",
	"right":      "ArrowRight",
	"home":       "Home",
	"end":        "End",
	"pageup":     "PageUp",
	"pgup":       "PageUp",
	"pagedown":   "PageDown",
	"pgdn":       "PageDown",

	// Editing and special
	"enter":       "Enter",
	"return":      "Enter",
	"cr":          "Enter",
	"escape":      "Escape",
	"esc":         "Escape",
	"tab":         "Tab",
	"backspace":   "Backspace",
	"bs":          "Backspace",
	"delete":      "Delete",
	"del":         "Delete",
	"insert":      "Insert",
	"ins":         "Insert",
	"space":       "Space",
	"spacebar":    "Space",
	"capslock":    "CapsLock",
	"numlock":     "NumLock",
	"scrolllock":  "ScrollLock",
	"printscreen": "PrintScreen",
	"pause":       "Pause",

	// Punctuation aliases. Canonical punctuation is the literal character,
	// except Plus: '+' delimits descriptors, so the plus key gets a named
	// canonical form that always re-parses.
	"comma":        ",",
	"period":       ".",
	"dot":          ".",
	"slash":        "/",
	"backslash":    "\\",
	"semicolon":    ";",
	"quote":        "'",
	"apostrophe":   "'",
	"minus":        "-",
	"dash":         "-",
	"hyphen":       "-",
	"equal":        "=",
	"equals":       "=",
	"plus":         "Plus",
	"add":          "Plus",
	"backquote":    "`",
	"grave":        "`",
	"leftbracket":  "[",
	"rightbracket": "]",

	// Modifier keys as keys, for held-key tracking and release events.
	"control": "Control",
	"ctrl":    "Control",
	"alt":     "Alt",
	"option":  "Alt",
	"opt":     "Alt",
	"shift":   "Shift",
	"meta":    "Meta",
	"cmd":     "Meta",
	"command": "Meta",
	"super":   "Meta",
	"win":     "Meta",
}

// punctuationKeys is the set of canonical single-character punctuation keys.
var punctuationKeys = map[string]struct{}{
	",": {}, ".": {}, "/": {}, "\\": {}, ";": {}, "'": {},
	"[": {}, "]": {}, "-": {}, "=": {}, "`": {},
}

// navigationKeys and editingKeys are the canonical multi-character names per
// family, used by FamilyOf.
var navigationKeys = map[string]struct{}{
	"ArrowUp": {}, "ArrowDown": {}, "ArrowLeft": {}, "ArrowRight": {},
	"Home": {}, "End": {}, "PageUp": {}, "PageDown": {},
}

var editingKeys = map[string]struct{}{
	"Enter": {}, "Escape": {}, "Tab": {}, "Backspace": {}, "Delete": {},
	"Insert": {}, "Space": {}, "CapsLock": {}, "NumLock": {},
	"ScrollLock": {}, "PrintScreen": {}, "Pause": {},
}

// Normalize returns the canonical spelling of a key name. Letters become a
// single uppercase character ("s" -> "S"), named keys and their aliases map
// to the canonical form ("esc" -> "Escape", "up" -> "ArrowUp", "+" ->
// "Plus"), digits and punctuation literals pass through, and function keys
// normalize to an uppercase F ("f5" -> "F5").
//
// Normalize is total: unknown names normalize to lowercase, so matching on
// them stays deterministic and case-insensitive even though they belong to
// no known family.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		switch {
		case unicode.IsLetter(r):
			return string(unicode.ToUpper(r))
		case r == '+':
			return "Plus"
		case r == ' ':
			return "Space"
		default:
			return string(r)
		}
	}

	lower := strings.ToLower(name)
	if canonical, ok := namedKeys[lower]; ok {
		return canonical
	}
	if isFunctionKeyName(lower) {
		return "F" + lower[1:]
	}
	return lower
}

// isFunctionKeyName reports whether a lowercase name spells f1 through f12.
func isFunctionKeyName(lower string) bool {
	if len(lower) < 2 || len(lower) > 3 || lower[0] != 'f' {
		return false
	}
	n := 0
	for i := 1; i < len(lower); i++ {
		c := lower[i]
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	return n >= 1 && n <= 12
}

// FamilyOf reports the family of a canonical key name. Names must already be
// normalized; FamilyOf does not normalize.
func FamilyOf(name string) Family {
	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		switch {
		case r >= 'A' && r <= 'Z':
			return FamilyLetter
		case r >= '0' && r <= '9':
			return FamilyDigit
		}
		if _, ok := punctuationKeys[name]; ok {
			return FamilyPunctuation
		}
		return FamilyUnknown
	}

	if name == "Plus" {
		return FamilyPunctuation
	}
	if IsModifierKeyName(name) {
		return FamilyModifier
	}
	if _, ok := navigationKeys[name]; ok {
		return FamilyNavigation
	}
	if _, ok := editingKeys[name]; ok {
		return FamilyEditing
	}
	if len(name) >= 2 && name[0] == 'F' && isFunctionKeyName("f"+name[1:]) {
		return FamilyFunction
	}
	return FamilyUnknown
}

// IsKnown reports whether a name normalizes into a known key family.
func IsKnown(name string) bool {
	return FamilyOf(Normalize(name)) != FamilyUnknown
}
