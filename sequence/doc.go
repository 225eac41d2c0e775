// Package sequence matches ordered multi-key sequences like "g g" or
// "Ctrl+K Ctrl+C" against a stream of key events.
//
// A Matcher holds an ordered list of hotkey steps and a position. Key-down
// events that match the current step advance the position; completing the
// last step fires the callback and returns the matcher to the start. Each
// advance arms a single cancellable timer: if the gap between consecutive
// keys exceeds the timeout (default one second), the attempt expires.
//
// Two details keep matching predictable under fast typing:
//
//   - A key that breaks an attempt is immediately re-evaluated against the
//     first step, so it can begin the next attempt ("a a b" completes the
//     sequence "a b").
//   - Events for the modifier keys themselves are invisible: pressing Shift
//     mid-sequence neither advances nor resets, so chord steps can be typed
//     naturally.
//
// The timer is the only asynchronous element. Its callback takes the
// matcher lock before touching state and double-checks the deadline, so a
// fire that races a re-arm is a no-op.
package sequence
