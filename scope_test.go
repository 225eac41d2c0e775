package keybind

import (
	"testing"

	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
	"github.com/dshills/keybind/sequence"
)

func TestScope_CloseUnregistersAll(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	scope := e.Scope()
	fired := 0

	if _, err := scope.Register("Ctrl+S", func(hotkey.Context) { fired++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := scope.RegisterHotkey(hotkey.New("a", key.ModControl), func(hotkey.Context) { fired++ }); err != nil {
		t.Fatalf("RegisterHotkey() error = %v", err)
	}
	if _, err := scope.RegisterSequence([]string{"g", "g"}, func(sequence.Match) { fired++ }, sequence.Options{}); err != nil {
		t.Fatalf("RegisterSequence() error = %v", err)
	}

	if got := len(scope.IDs()); got != 3 {
		t.Fatalf("IDs() = %d entries, want 3", got)
	}
	if got := len(e.Registrations()); got != 3 {
		t.Fatalf("Registrations() = %d entries, want 3", got)
	}

	scope.Close()

	if got := len(e.Registrations()); got != 0 {
		t.Errorf("Registrations() after scope close = %d entries, want 0", got)
	}
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("a", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("g", key.ModNone))
	e.ProcessEvent(key.NewPressEvent("g", key.ModNone))
	if fired != 0 {
		t.Errorf("scoped callbacks fired %d times after close, want 0", fired)
	}
}

func TestScope_CloseIdempotent(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	scope := e.Scope()
	if _, err := scope.Register("Ctrl+S", func(hotkey.Context) {}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	scope.Close()
	scope.Close()

	if got := len(scope.IDs()); got != 0 {
		t.Errorf("IDs() after close = %d entries, want 0", got)
	}
}

func TestScope_IndividualUnregisterBeforeClose(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	scope := e.Scope()
	id, err := scope.Register("Ctrl+S", func(hotkey.Context) {})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := scope.Register("Ctrl+A", func(hotkey.Context) {}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := e.Unregister(id); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}

	// Close skips the already removed registration without error.
	scope.Close()

	if got := len(e.Registrations()); got != 0 {
		t.Errorf("Registrations() = %d entries, want 0", got)
	}
}

func TestScope_RegisterAfterClose(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	scope := e.Scope()
	scope.Close()

	fired := 0
	if _, err := scope.Register("Ctrl+S", func(hotkey.Context) { fired++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// The straggler was dropped immediately.
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 0 {
		t.Errorf("callback registered after scope close fired %d times, want 0", fired)
	}
	if got := len(e.Registrations()); got != 0 {
		t.Errorf("Registrations() = %d entries, want 0", got)
	}
}

func TestScope_FailedRegisterNotRecorded(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	scope := e.Scope()
	if _, err := scope.Register("", func(hotkey.Context) {}); err == nil {
		t.Fatal("Register(\"\") expected error")
	}

	if got := len(scope.IDs()); got != 0 {
		t.Errorf("IDs() = %d entries after failed register, want 0", got)
	}
}
