// Package keystate tracks which keys are currently held down.
//
// A Tracker is fed normalized press and release events and maintains the
// held set in press order. Listeners observe every mutation; the Change they
// receive reports whether the set just became empty, which is the signal
// fire-once hotkeys wait for before they can fire again.
//
// Tracking is name-based: two keyboards both holding "Shift" collapse into
// one held entry, matching how the underlying platforms report keys. A
// repeated press of a held key is not a mutation and produces no
// notification.
package keystate
