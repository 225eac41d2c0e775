package tcellkey

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind"
	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
)

func TestTranslate_Runes(t *testing.T) {
	tests := []struct {
		name      string
		r         rune
		mods      tcell.ModMask
		wantName  string
		wantCanon string
		wantMods  key.Modifier
	}{
		{"lowercase letter", 's', tcell.ModNone, "s", "S", key.ModNone},
		{"uppercase letter", 'S', tcell.ModNone, "S", "S", key.ModNone},
		{"digit", '1', tcell.ModNone, "1", "1", key.ModNone},
		{"space", ' ', tcell.ModNone, " ", "Space", key.ModNone},
		{"plus", '+', tcell.ModNone, "+", "Plus", key.ModNone},
		{"punctuation", ',', tcell.ModNone, ",", ",", key.ModNone},
		{"alt rune", 'x', tcell.ModAlt, "x", "X", key.ModAlt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Translate(tcell.NewEventKey(tcell.KeyRune, tt.r, tt.mods))
			if ev == nil {
				t.Fatal("Translate returned nil")
			}
			if !ev.IsPress() {
				t.Errorf("phase = %v, want press", ev.Phase)
			}
			if ev.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", ev.Name, tt.wantName)
			}
			if got := key.Normalize(ev.Name); got != tt.wantCanon {
				t.Errorf("Normalize(Name) = %q, want %q", got, tt.wantCanon)
			}
			if ev.Mods != tt.wantMods {
				t.Errorf("Mods = %v, want %v", ev.Mods, tt.wantMods)
			}
		})
	}
}

func TestTranslate_NamedKeys(t *testing.T) {
	tests := []struct {
		k    tcell.Key
		want string
	}{
		{tcell.KeyEscape, "Escape"},
		{tcell.KeyEnter, "Enter"},
		{tcell.KeyTab, "Tab"},
		{tcell.KeyBackspace, "Backspace"},
		{tcell.KeyBackspace2, "Backspace"},
		{tcell.KeyDelete, "Delete"},
		{tcell.KeyInsert, "Insert"},
		{tcell.KeyHome, "Home"},
		{tcell.KeyEnd, "End"},
		{tcell.KeyPgUp, "PageUp"},
		{tcell.KeyPgDn, "PageDown"},
		{tcell.KeyUp, "ArrowUp"},
		{tcell.KeyDown, "ArrowDown"},
		{tcell.KeyLeft, "ArrowLeft"},
		{tcell.KeyRight, "ArrowRight"},
		{tcell.KeyPrint, "PrintScreen"},
		{tcell.KeyPause, "Pause"},
		{tcell.KeyF1, "F1"},
		{tcell.KeyF5, "F5"},
		{tcell.KeyF12, "F12"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			ev := Translate(tcell.NewEventKey(tt.k, 0, tcell.ModNone))
			if ev == nil {
				t.Fatalf("Translate(%v) returned nil", tt.k)
			}
			if ev.Name != tt.want {
				t.Errorf("Name = %q, want %q", ev.Name, tt.want)
			}
			if !ev.Mods.IsEmpty() {
				t.Errorf("Mods = %v, want none", ev.Mods)
			}
		})
	}
}

func TestTranslate_CtrlKeycodes(t *testing.T) {
	tests := []struct {
		name     string
		k        tcell.Key
		wantName string
		wantMods key.Modifier
	}{
		{"ctrl-a", tcell.KeyCtrlA, "a", key.ModControl},
		{"ctrl-s", tcell.KeyCtrlS, "s", key.ModControl},
		{"ctrl-z", tcell.KeyCtrlZ, "z", key.ModControl},
		{"ctrl-space", tcell.KeyCtrlSpace, "Space", key.ModControl},
		{"ctrl-backslash", tcell.KeyCtrlBackslash, `\`, key.ModControl},
		{"ctrl-right-bracket", tcell.KeyCtrlRightSq, "]", key.ModControl},
		// Terminal collisions resolve to the named key.
		{"ctrl-h is backspace", tcell.KeyCtrlH, "Backspace", key.ModNone},
		{"ctrl-i is tab", tcell.KeyCtrlI, "Tab", key.ModNone},
		{"ctrl-m is enter", tcell.KeyCtrlM, "Enter", key.ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Translate(tcell.NewEventKey(tt.k, 0, tcell.ModNone))
			if ev == nil {
				t.Fatalf("Translate(%v) returned nil", tt.k)
			}
			if ev.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", ev.Name, tt.wantName)
			}
			if ev.Mods != tt.wantMods {
				t.Errorf("Mods = %v, want %v", ev.Mods, tt.wantMods)
			}
		})
	}
}

func TestTranslate_CtrlModRedundant(t *testing.T) {
	// tcell sometimes sets ModCtrl alongside a dedicated control keycode.
	// Forcing the bit must not double it.
	ev := Translate(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	if ev == nil {
		t.Fatal("Translate returned nil")
	}
	if ev.Mods != key.ModControl {
		t.Errorf("Mods = %v, want Control only", ev.Mods)
	}
}

func TestTranslate_Backtab(t *testing.T) {
	ev := Translate(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	if ev == nil {
		t.Fatal("Translate returned nil")
	}
	if ev.Name != "Tab" {
		t.Errorf("Name = %q, want %q", ev.Name, "Tab")
	}
	if ev.Mods != key.ModShift {
		t.Errorf("Mods = %v, want Shift", ev.Mods)
	}

	// The Shift bit stays single when the terminal reported it too.
	ev = Translate(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift))
	if ev == nil || ev.Mods != key.ModShift {
		t.Errorf("Backtab with ModShift = %v, want Shift", ev)
	}
}

func TestTranslate_ModMask(t *testing.T) {
	tests := []struct {
		name string
		mask tcell.ModMask
		want key.Modifier
	}{
		{"none", tcell.ModNone, key.ModNone},
		{"shift", tcell.ModShift, key.ModShift},
		{"ctrl", tcell.ModCtrl, key.ModControl},
		{"alt", tcell.ModAlt, key.ModAlt},
		{"meta", tcell.ModMeta, key.ModMeta},
		{"ctrl+shift", tcell.ModCtrl | tcell.ModShift, key.ModControl | key.ModShift},
		{"all", tcell.ModCtrl | tcell.ModAlt | tcell.ModShift | tcell.ModMeta,
			key.ModControl | key.ModAlt | key.ModShift | key.ModMeta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateMods(tt.mask); got != tt.want {
				t.Errorf("translateMods(%v) = %v, want %v", tt.mask, got, tt.want)
			}
		})
	}
}

func TestTranslate_NoKeyMeaning(t *testing.T) {
	if ev := Translate(nil); ev != nil {
		t.Errorf("Translate(nil) = %v, want nil", ev)
	}
	if ev := Translate(tcell.NewEventKey(tcell.KeyRune, 0, tcell.ModNone)); ev != nil {
		t.Errorf("zero rune = %v, want nil", ev)
	}
	if ev := Translate(tcell.NewEventKey(tcell.KeyF13, 0, tcell.ModNone)); ev != nil {
		t.Errorf("F13 = %v, want nil", ev)
	}
	if ev := Translate(tcell.NewEventKey(tcell.KeyHelp, 0, tcell.ModNone)); ev != nil {
		t.Errorf("Help = %v, want nil", ev)
	}
}

func TestReleaseFor(t *testing.T) {
	press := Translate(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone))
	if press == nil {
		t.Fatal("Translate returned nil")
	}

	rel := ReleaseFor(press)
	if rel == nil {
		t.Fatal("ReleaseFor returned nil")
	}
	if !rel.IsRelease() {
		t.Errorf("phase = %v, want release", rel.Phase)
	}
	if rel.Name != press.Name || rel.Mods != press.Mods {
		t.Errorf("release = %q/%v, want %q/%v", rel.Name, rel.Mods, press.Name, press.Mods)
	}

	if got := ReleaseFor(nil); got != nil {
		t.Errorf("ReleaseFor(nil) = %v, want nil", got)
	}
	if got := ReleaseFor(rel); got != nil {
		t.Errorf("ReleaseFor(release) = %v, want nil", got)
	}
}

func TestTranslate_EngineDispatch(t *testing.T) {
	e := keybind.New(
		keybind.WithPlatform(key.PlatformLinux),
		keybind.WithLogger(keybind.NullLogger),
	)
	defer e.Close()

	var fired int
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) {
		fired++
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	feed := func(tev *tcell.EventKey) {
		press := Translate(tev)
		if press == nil {
			t.Fatalf("Translate(%v) returned nil", tev)
		}
		e.ProcessEvent(press)
		e.ProcessEvent(ReleaseFor(press))
	}

	feed(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1 after Ctrl+S", fired)
	}

	feed(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1 after bare s", fired)
	}

	if held := e.Held(); len(held) != 0 {
		t.Errorf("Held() = %v, want empty after synthetic releases", held)
	}
}
