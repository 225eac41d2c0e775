// Package keybind matches keyboard events against registered hotkeys and
// chord sequences.
//
// The engine is the integration point: applications translate their input
// source's events into key.Event values, feed them to Engine.ProcessEvent,
// and register callbacks against human-readable descriptors like
// "Ctrl+Shift+S" or the platform-adaptive "Mod+S".
//
// # Architecture
//
// The package splits into small cooperating layers:
//
//   - key: canonical key names, modifier bitmask, platform resolution,
//     and the Event type
//   - hotkey: descriptor parsing, normalization, validation, and the
//     exact-match predicate
//   - keystate: the held-key tracker with ordered change listeners
//   - sequence: multi-step chord matching with inter-key timeouts
//   - scheme: binding sets loaded from JSON, TOML, or Lua, with file
//     watching for live reload
//   - tcellkey: translation from tcell terminal events
//
// # Dispatch
//
// ProcessEvent updates the held-key tracker, then evaluates every enabled
// registration in insertion order. Matching never short-circuits: two
// registrations on the same hotkey both fire. Callbacks run after the
// evaluation pass and outside the engine lock, so a callback may register,
// unregister, or reset the engine. A panicking callback is recovered,
// counted, logged, and reported to the optional error handler; it never
// stops dispatch.
//
// # Matching
//
// A hotkey matches on exact modifier-set equality. Ctrl+S does not fire
// while Ctrl+Shift+S is held. Fire-once registrations (WithRequireReset)
// re-arm when every key has been released.
//
// # Usage
//
//	engine := keybind.New(keybind.WithPlatform(key.PlatformMac))
//	defer engine.Close()
//
//	_, err := engine.Register("Mod+S", func(ctx hotkey.Context) {
//	    save()
//	})
//	if err != nil {
//	    return err
//	}
//
//	_, err = engine.RegisterSequence([]string{"g", "g"}, func(m sequence.Match) {
//	    scrollToTop()
//	}, sequence.Options{})
//	if err != nil {
//	    return err
//	}
//
//	// Feed events from the input source.
//	for ev := range events {
//	    engine.ProcessEvent(ev)
//	}
package keybind
