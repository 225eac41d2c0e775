package tcellkey

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/key"
)

// specialNames maps tcell's named keys to canonical key names. Tab, Enter,
// Escape and Backspace share keycodes with Ctrl+I, Ctrl+M, Ctrl+[ and
// Ctrl+H; the named form wins because that is what the user pressed on
// every terminal that cannot tell them apart.
var specialNames = map[tcell.Key]string{
	tcell.KeyEscape:     "Escape",
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyPrint:      "PrintScreen",
	tcell.KeyPause:      "Pause",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// Translate converts a tcell key event into a press event the engine can
// dispatch. It returns nil when the event carries nothing a hotkey could
// match: a nil event, a zero rune, or a tcell key with no canonical name
// (F13 and above, the application keys).
func Translate(ev *tcell.EventKey) *key.Event {
	if ev == nil {
		return nil
	}

	mods := translateMods(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		if r == 0 {
			return nil
		}
		return key.NewPressEvent(string(r), mods)
	}

	// Backtab is the terminal's encoding of Shift+Tab and often arrives
	// without the Shift bit, so it is forced here.
	if k == tcell.KeyBacktab {
		return key.NewPressEvent("Tab", mods.With(key.ModShift))
	}

	if name, ok := specialNames[k]; ok {
		return key.NewPressEvent(name, mods)
	}

	// Dedicated control keycodes. The named keys above already claimed
	// the codes Ctrl+H, Ctrl+I and Ctrl+M collide with, so what reaches
	// this range is an unambiguous Ctrl+letter chord. tcell does not set
	// ModCtrl consistently for these, so the Control bit is forced.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewPressEvent(string(letter), mods.With(key.ModControl))
	}

	switch k {
	case tcell.KeyCtrlSpace:
		return key.NewPressEvent("Space", mods.With(key.ModControl))
	case tcell.KeyCtrlBackslash:
		return key.NewPressEvent(`\`, mods.With(key.ModControl))
	case tcell.KeyCtrlRightSq:
		return key.NewPressEvent("]", mods.With(key.ModControl))
	case tcell.KeyCtrlCarat:
		return key.NewPressEvent("^", mods.With(key.ModControl))
	case tcell.KeyCtrlUnderscore:
		return key.NewPressEvent("_", mods.With(key.ModControl))
	}

	return nil
}

// ReleaseFor returns the synthetic key-up counterpart of a translated
// press. Terminals never report key-up, so callers feed the result to the
// engine right after dispatching the press; see the package documentation.
func ReleaseFor(press *key.Event) *key.Event {
	if press == nil || !press.IsPress() {
		return nil
	}
	return key.NewReleaseEvent(press.Name, press.Mods)
}

// translateMods converts a tcell modifier mask bit by bit.
func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModControl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}
