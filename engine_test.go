package keybind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
	"github.com/dshills/keybind/keystate"
)

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithPlatform(key.PlatformLinux), WithLogger(NullLogger)}, opts...)
	return New(opts...)
}

func TestEngine_RegisterAndProcess(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	var got hotkey.Context
	fired := 0
	id, err := e.Register("Ctrl+S", func(ctx hotkey.Context) {
		got = ctx
		fired++
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if id == "" {
		t.Fatal("Register() returned empty ID")
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))

	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
	if got.Hotkey != "Ctrl+S" {
		t.Errorf("Context.Hotkey = %q, want %q", got.Hotkey, "Ctrl+S")
	}
	if got.Parsed.String() != "Control+S" {
		t.Errorf("Context.Parsed = %q, want %q", got.Parsed.String(), "Control+S")
	}
	if got.Event == nil || got.Event.Name != "s" {
		t.Errorf("Context.Event = %v, want press of s", got.Event)
	}
}

func TestEngine_ExactModifierMatch(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	fired := 0
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { fired++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Extra or missing modifiers must not fire.
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl|key.ModShift))
	e.ProcessEvent(key.NewPressEvent("s", key.ModNone))
	e.ProcessEvent(key.NewPressEvent("a", key.ModControl))
	if fired != 0 {
		t.Fatalf("callback fired %d times for non-matching events, want 0", fired)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 1 {
		t.Errorf("callback fired %d times, want 1", fired)
	}
}

func TestEngine_DispatchOrder(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		if _, err := e.Register("Ctrl+S", func(hotkey.Context) {
			order = append(order, name)
		}); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("dispatched %d callbacks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("dispatch order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestEngine_SharedHotkeyBothFire(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	a, b := 0, 0
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { a++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	// Same chord spelled differently still matches the same events.
	if _, err := e.Register("Control+s", func(hotkey.Context) { b++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))

	if a != 1 || b != 1 {
		t.Errorf("shared hotkey fired a=%d b=%d, want 1 and 1", a, b)
	}
}

func TestEngine_RequireReset(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	fired := 0
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { fired++ }, WithRequireReset()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("Control", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 1 {
		t.Fatalf("after first chord fired = %d, want 1", fired)
	}

	// Auto-repeat and re-press while Control stays held must not re-fire.
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	e.ProcessEvent(key.NewReleaseEvent("s", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 1 {
		t.Fatalf("while held fired = %d, want 1", fired)
	}

	// Releasing everything re-arms the binding.
	e.ProcessEvent(key.NewReleaseEvent("s", key.ModControl))
	e.ProcessEvent(key.NewReleaseEvent("Control", key.ModNone))

	e.ProcessEvent(key.NewPressEvent("Control", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 2 {
		t.Errorf("after release and re-press fired = %d, want 2", fired)
	}
}

func TestEngine_RequireReset_DoesNotAffectOthers(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	once, every := 0, 0
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { once++ }, WithRequireReset()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { every++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))

	if once != 1 {
		t.Errorf("fire-once registration fired %d times, want 1", once)
	}
	if every != 3 {
		t.Errorf("plain registration fired %d times, want 3", every)
	}
}

func TestEngine_SetEnabled(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	fired := 0
	id, err := e.Register("Ctrl+S", func(hotkey.Context) { fired++ })
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := e.SetEnabled(id, false); err != nil {
		t.Fatalf("SetEnabled(false) error = %v", err)
	}
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 0 {
		t.Fatalf("disabled registration fired %d times, want 0", fired)
	}

	if err := e.SetEnabled(id, true); err != nil {
		t.Fatalf("SetEnabled(true) error = %v", err)
	}
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 1 {
		t.Errorf("re-enabled registration fired %d times, want 1", fired)
	}
}

func TestEngine_RegisterDisabled(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	fired := 0
	id, err := e.Register("Ctrl+S", func(hotkey.Context) { fired++ }, WithDisabled())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 0 {
		t.Fatalf("registration created disabled fired %d times, want 0", fired)
	}

	if err := e.SetEnabled(id, true); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 1 {
		t.Errorf("after enabling fired %d times, want 1", fired)
	}
}

func TestEngine_EventSuppressionFlags(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	if _, err := e.Register("Ctrl+S", func(hotkey.Context) {},
		WithPreventDefault(), WithStopPropagation()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ev := key.NewPressEvent("s", key.ModControl)
	e.ProcessEvent(ev)

	if !ev.DefaultPrevented() {
		t.Error("expected DefaultPrevented after match")
	}
	if !ev.PropagationStopped() {
		t.Error("expected PropagationStopped after match")
	}

	other := key.NewPressEvent("a", key.ModControl)
	e.ProcessEvent(other)
	if other.DefaultPrevented() || other.PropagationStopped() {
		t.Error("non-matching event must not be suppressed")
	}
}

func TestEngine_CallbackPanicIsolation(t *testing.T) {
	var reported []CallbackError
	e := newTestEngine(WithErrorHandler(func(cbErr CallbackError) {
		reported = append(reported, cbErr)
	}))
	defer e.Close()

	panicID, err := e.Register("Ctrl+S", func(hotkey.Context) {
		panic("callback exploded")
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	laterRan := false
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { laterRan = true }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))

	if !laterRan {
		t.Error("expected callback after the panicking one to run")
	}
	if len(reported) != 1 {
		t.Fatalf("error handler called %d times, want 1", len(reported))
	}
	if reported[0].RegistrationID != panicID {
		t.Errorf("CallbackError.RegistrationID = %q, want %q", reported[0].RegistrationID, panicID)
	}
	if reported[0].Hotkey != "Ctrl+S" {
		t.Errorf("CallbackError.Hotkey = %q, want %q", reported[0].Hotkey, "Ctrl+S")
	}
	if reported[0].Recovered != "callback exploded" {
		t.Errorf("CallbackError.Recovered = %v, want %q", reported[0].Recovered, "callback exploded")
	}
	if len(reported[0].Stack) == 0 {
		t.Error("expected a captured stack")
	}
	if e.Stats().CallbackPanics != 1 {
		t.Errorf("Stats().CallbackPanics = %d, want 1", e.Stats().CallbackPanics)
	}

	// The engine stays usable after a panic.
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if e.Stats().CallbackPanics != 2 {
		t.Errorf("Stats().CallbackPanics = %d, want 2", e.Stats().CallbackPanics)
	}
}

func TestEngine_ErrorHandlerPanic(t *testing.T) {
	e := newTestEngine(WithErrorHandler(func(CallbackError) {
		panic("handler exploded")
	}))
	defer e.Close()

	if _, err := e.Register("Ctrl+S", func(hotkey.Context) {
		panic("callback exploded")
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Must not propagate out of ProcessEvent.
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))

	if e.Stats().CallbackPanics != 1 {
		t.Errorf("Stats().CallbackPanics = %d, want 1", e.Stats().CallbackPanics)
	}
}

func TestEngine_ReentrantCallback(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	var selfID string
	selfFired, addedFired := 0, 0

	selfID, err := e.Register("Ctrl+S", func(hotkey.Context) {
		selfFired++
		if _, err := e.Register("Ctrl+A", func(hotkey.Context) { addedFired++ }); err != nil {
			t.Errorf("re-entrant Register() error = %v", err)
		}
		if err := e.Unregister(selfID); err != nil {
			t.Errorf("re-entrant Unregister() error = %v", err)
		}
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("a", key.ModControl))

	if selfFired != 1 {
		t.Errorf("self-unregistering callback fired %d times, want 1", selfFired)
	}
	if addedFired != 1 {
		t.Errorf("re-entrantly added callback fired %d times, want 1", addedFired)
	}
}

func TestEngine_ReleasePhase(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	pressed, released := 0, 0
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { pressed++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { released++ }, WithOnRelease()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if pressed != 1 || released != 0 {
		t.Fatalf("after press: pressed=%d released=%d, want 1 and 0", pressed, released)
	}

	e.ProcessEvent(key.NewReleaseEvent("s", key.ModControl))
	if pressed != 1 || released != 1 {
		t.Errorf("after release: pressed=%d released=%d, want 1 and 1", pressed, released)
	}
}

func TestEngine_PlatformOverride(t *testing.T) {
	e := newTestEngine() // linux platform: Mod means Control
	defer e.Close()

	fired := 0
	if _, err := e.Register("Mod+S", func(hotkey.Context) { fired++ },
		WithPlatformOverride(key.PlatformMac)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 0 {
		t.Fatalf("Control press fired %d times for mac-override Mod, want 0", fired)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModMeta))
	if fired != 1 {
		t.Errorf("Meta press fired %d times for mac-override Mod, want 1", fired)
	}
}

func TestEngine_AdaptiveModifier(t *testing.T) {
	e := New(WithPlatform(key.PlatformMac), WithLogger(NullLogger))
	defer e.Close()

	fired := 0
	if _, err := e.Register("Mod+S", func(hotkey.Context) { fired++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModMeta))
	if fired != 1 {
		t.Errorf("Meta press fired %d times on mac, want 1", fired)
	}
}

// A tab bar binds several digit chords across different modifiers. Each
// chord must route to exactly its own tab.
func TestEngine_TabRouting(t *testing.T) {
	e := newTestEngine() // linux platform: Mod means Control
	defer e.Close()

	activeTab := -1
	bind := func(descriptor string, tab int) {
		t.Helper()
		if _, err := e.Register(descriptor, func(hotkey.Context) { activeTab = tab }); err != nil {
			t.Fatalf("Register(%s) error = %v", descriptor, err)
		}
	}
	for i := 1; i <= 5; i++ {
		bind(fmt.Sprintf("Mod+%d", i), i)
	}
	bind("Ctrl+0", 0)
	bind("Alt+9", 9)

	routed := []struct {
		ev   *key.Event
		want int
	}{
		{key.NewPressEvent("1", key.ModControl), 1},
		{key.NewPressEvent("3", key.ModControl), 3},
		{key.NewPressEvent("5", key.ModControl), 5},
		{key.NewPressEvent("0", key.ModControl), 0},
		{key.NewPressEvent("9", key.ModAlt), 9},
	}
	for _, tt := range routed {
		activeTab = -1
		e.ProcessEvent(tt.ev)
		if activeTab != tt.want {
			t.Errorf("press %v routed to tab %d, want %d", tt.ev, activeTab, tt.want)
		}
	}

	// Chords bound to no tab must route nowhere: wrong modifier for the
	// digit, extra modifier, or no modifier at all.
	for _, ev := range []*key.Event{
		key.NewPressEvent("9", key.ModControl),
		key.NewPressEvent("0", key.ModAlt),
		key.NewPressEvent("3", key.ModControl|key.ModAlt),
		key.NewPressEvent("3", key.ModNone),
	} {
		activeTab = -1
		e.ProcessEvent(ev)
		if activeTab != -1 {
			t.Errorf("press %v routed to tab %d, want none", ev, activeTab)
		}
	}
}

func TestEngine_Held(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	e.ProcessEvent(key.NewPressEvent("Control", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))

	held := e.Held()
	if len(held) != 2 || held[0] != "Control" || held[1] != "S" {
		t.Errorf("Held() = %v, want [Control S]", held)
	}

	e.ProcessEvent(key.NewReleaseEvent("Control", key.ModNone))
	held = e.Held()
	if len(held) != 1 || held[0] != "S" {
		t.Errorf("Held() after release = %v, want [S]", held)
	}
}

func TestEngine_TrackerListener(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	var changes []keystate.Change
	e.Tracker().AddListener(func(c keystate.Change) {
		changes = append(changes, c)
	})

	e.ProcessEvent(key.NewPressEvent("a", key.ModNone))
	e.ProcessEvent(key.NewReleaseEvent("a", key.ModNone))

	if len(changes) != 2 {
		t.Fatalf("listener saw %d changes, want 2", len(changes))
	}
	if changes[0].Op != keystate.OpPress || changes[0].Key != "A" {
		t.Errorf("first change = %+v, want press of A", changes[0])
	}
	if changes[1].Op != keystate.OpRelease || !changes[1].AllReleased {
		t.Errorf("second change = %+v, want release with AllReleased", changes[1])
	}
}

func TestEngine_Reset(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	fired := 0
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { fired++ }, WithRequireReset()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("Control", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	// Reset stands in for lost release events: held set clears and the
	// fire-once latch re-arms.
	e.Reset()

	if len(e.Held()) != 0 {
		t.Errorf("Held() after Reset = %v, want empty", e.Held())
	}
	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 2 {
		t.Errorf("fired after Reset = %d, want 2", fired)
	}
}

func TestEngine_Close(t *testing.T) {
	e := newTestEngine()

	fired := 0
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) { fired++ }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.Close()
	e.Close() // idempotent

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	if fired != 0 {
		t.Errorf("closed engine dispatched %d callbacks, want 0", fired)
	}

	if _, err := e.Register("Ctrl+A", func(hotkey.Context) {}); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Register() after Close error = %v, want ErrEngineClosed", err)
	}
	if err := e.Unregister("anything"); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Unregister() after Close error = %v, want ErrEngineClosed", err)
	}
	if len(e.Registrations()) != 0 {
		t.Errorf("Registrations() after Close = %d entries, want 0", len(e.Registrations()))
	}
}

func TestEngine_ProcessNilEvent(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	e.ProcessEvent(nil)

	if e.Stats().Events != 0 {
		t.Errorf("Stats().Events = %d after nil event, want 0", e.Stats().Events)
	}
}

func TestEngine_Stats(t *testing.T) {
	e := newTestEngine()
	defer e.Close()

	if _, err := e.Register("Ctrl+S", func(hotkey.Context) {}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := e.Register("Ctrl+S", func(hotkey.Context) {}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.ProcessEvent(key.NewPressEvent("s", key.ModControl))
	e.ProcessEvent(key.NewPressEvent("a", key.ModNone))
	e.ProcessEvent(key.NewReleaseEvent("s", key.ModNone))

	stats := e.Stats()
	if stats.Events != 3 {
		t.Errorf("Stats().Events = %d, want 3", stats.Events)
	}
	if stats.Matches != 2 {
		t.Errorf("Stats().Matches = %d, want 2", stats.Matches)
	}
}

func TestEngine_Platform(t *testing.T) {
	e := New(WithPlatform(key.PlatformWindows), WithLogger(NullLogger))
	defer e.Close()

	if e.Platform() != key.PlatformWindows {
		t.Errorf("Platform() = %q, want %q", e.Platform(), key.PlatformWindows)
	}
}
