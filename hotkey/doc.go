// Package hotkey parses, validates, serializes, and matches single-chord
// hotkey descriptors.
//
// A descriptor is a '+'-separated list of tokens: zero or more modifiers
// followed by exactly one key, e.g. "Ctrl+S", "Mod+Shift+ArrowUp", "Escape".
// Parsing is case-insensitive and resolves the platform-adaptive "Mod"
// modifier (Meta on mac, Control elsewhere), producing a canonical Hotkey
// whose serialization always lists modifiers in the fixed order Control,
// Alt, Shift, Meta.
//
// # Permissive Parsing
//
// Parse drops unrecognized modifier tokens in multi-token descriptors and
// treats a single unrecognized token as the key. This mirrors how hotkey
// descriptors behave in configuration files, where a typo should degrade
// rather than crash. Validate is the strict companion: it reports dropped
// modifiers as errors and flags suspicious combinations (Alt+letter,
// Shift+digit) as warnings. Call Validate or AssertValid at configuration
// boundaries; rely on Parse alone only for trusted input.
//
// # Matching
//
// Matches applies exact modifier-set equality: the event must carry every
// required modifier and no extra one. "Control+S" never matches a plain "S"
// press, and "S" never matches Control+S. Matching is pure and stateless;
// held-key tracking and fire-once behavior live in the engine.
package hotkey
