// Package tcellkey translates tcell keyboard events into key events the
// engine can dispatch. It is the terminal input boundary: a program reads
// *tcell.EventKey values from a tcell screen, converts each with Translate,
// and feeds the result to Engine.ProcessEvent.
//
// # Translation
//
// Printable input arrives from tcell as KeyRune and translates to the rune
// itself; downstream normalization turns "s" into "S" and ' ' into "Space".
// Named keys (arrows, paging, function keys, Enter, Escape, Tab, Backspace,
// Delete, Insert) translate to their canonical names. The dedicated control
// keycodes tcell uses for Ctrl+letter combinations translate back into the
// letter with the Control modifier set, so a binding written "Ctrl+S"
// matches the KeyCtrlS event a terminal delivers.
//
// Events that carry no meaning for hotkey matching (tcell keys with no
// canonical name, zero-rune events) translate to nil; callers skip those.
//
// # Key releases
//
// Terminals do not report key-up. ReleaseFor builds the synthetic release
// matching a translated press; feeding it immediately after the press keeps
// held-key tracking bounded and re-arms fire-once bindings after every
// keystroke. Programs that want fire-once semantics across real key
// repeats need an input source that reports releases.
//
// # Limitations
//
// Terminal input collapses some combinations: Ctrl+H is indistinguishable
// from Backspace, Ctrl+I from Tab, and Ctrl+M from Enter, and all three
// translate to the named key. Shifted runes arrive as the shifted character
// without the Shift modifier ("S", not Shift+s), so bindings should name
// the character the terminal actually delivers.
package tcellkey
