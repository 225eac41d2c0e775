// Package key provides the fundamental types for keyboard input: modifier
// flags, canonical key names, platform identification, and input events.
//
// This package defines the vocabulary the rest of the module speaks:
//
//   - Modifier: a bitmask of the four modifier keys (Control, Alt, Shift, Meta)
//   - Platform: the host platform, which decides how the adaptive "Mod"
//     modifier resolves (Meta on mac, Control elsewhere)
//   - Normalize: the total normalization function for key names
//   - Event: a single key press or release with modifier flags
//
// # Canonical Key Names
//
// Every key has exactly one canonical spelling. Letters are single uppercase
// characters ("S"), digits are themselves ("1"), function keys use an
// uppercase F ("F5"), navigation and editing keys use fixed names ("ArrowUp",
// "PageDown", "Escape", "Enter"), and punctuation keys are the literal
// character (",", "/") except the plus key, whose canonical spelling is
// "Plus" because '+' delimits hotkey descriptors. Common aliases ("esc",
// "up", "return", "del") map onto the canonical forms.
//
// Normalize is total: names it does not recognize still normalize
// deterministically (to lowercase) so that matching on them remains
// case-insensitive.
//
// # Modifier Order
//
// Whenever modifiers are listed or serialized, the order is fixed:
// Control, Alt, Shift, Meta.
package key
