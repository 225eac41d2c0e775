package hotkey

import (
	"strings"

	"github.com/dshills/keybind/key"
)

// Display renders a hotkey for presentation. On mac the modifiers become
// the conventional glyphs with no separators ("⌃⌥⇧⌘S" style); elsewhere
// they are spelled out and joined with '+', with Meta written "Win" on
// windows and "Super" on linux.
func Display(h Hotkey, platform key.Platform) string {
	if platform.IsMac() {
		var b strings.Builder
		if h.Ctrl {
			b.WriteRune('⌃')
		}
		if h.Alt {
			b.WriteRune('⌥')
		}
		if h.Shift {
			b.WriteRune('⇧')
		}
		if h.Meta {
			b.WriteRune('⌘')
		}
		b.WriteString(displayKey(h.Key))
		return b.String()
	}

	var parts []string
	if h.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if h.Alt {
		parts = append(parts, "Alt")
	}
	if h.Shift {
		parts = append(parts, "Shift")
	}
	if h.Meta {
		if platform == key.PlatformWindows {
			parts = append(parts, "Win")
		} else {
			parts = append(parts, "Super")
		}
	}
	parts = append(parts, displayKey(h.Key))
	return strings.Join(parts, "+")
}

// displayKey substitutes presentation forms for canonical names that read
// poorly in UI.
func displayKey(name string) string {
	if name == "Plus" {
		return "+"
	}
	return name
}
