package scheme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/keybind/hotkey"
	"github.com/dshills/keybind/key"
)

// Scheme is a named set of hotkey and sequence bindings.
type Scheme struct {
	// Name identifies the scheme.
	Name string

	// Description is free-form documentation.
	Description string

	// Platform pins descriptor resolution. Empty means the engine's
	// platform decides what Mod expands to.
	Platform key.Platform

	// Bindings are the single-chord bindings in file order.
	Bindings []Binding

	// Sequences are the multi-step bindings in file order.
	Sequences []SequenceBinding
}

// Binding maps one hotkey descriptor to a named action.
type Binding struct {
	// Keys is the hotkey descriptor, for example "Mod+Shift+P".
	Keys string

	// Action names the application function to invoke.
	Action string

	// Description is free-form documentation.
	Description string

	// Enabled gates dispatch. The parsers default it to true; set it
	// explicitly when building a Scheme in code.
	Enabled bool

	// RequireReset makes the binding fire once per hold.
	RequireReset bool

	// PreventDefault marks matched events as consumed.
	PreventDefault bool

	// StopPropagation stops matched events from reaching outer handlers.
	StopPropagation bool

	// OnRelease fires the binding on key-up instead of key-down.
	OnRelease bool
}

// SequenceBinding maps an ordered list of descriptors to a named action.
type SequenceBinding struct {
	// Steps are the chord descriptors in order, for example
	// ["Ctrl+K", "Ctrl+C"].
	Steps []string

	// Action names the application function to invoke.
	Action string

	// Description is free-form documentation.
	Description string

	// TimeoutMS is the inter-key gap in milliseconds. Zero means the
	// engine default.
	TimeoutMS int
}

// Load reads a scheme file, picking the parser by extension: .lua runs
// through the sandboxed interpreter, everything else parses as JSON.
func Load(path string) (*Scheme, error) {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return LoadLua(path)
	}
	return LoadFile(path)
}

// Validate checks every descriptor in the scheme and returns one message
// per problem. Warnings from descriptor validation are included; an empty
// result means the scheme is clean. Apply does not require a clean scheme.
func (s *Scheme) Validate() []string {
	var problems []string
	for i, b := range s.Bindings {
		res := hotkey.Validate(b.Keys)
		for _, e := range res.Errors {
			problems = append(problems, fmt.Sprintf("binding %d: %s", i, e))
		}
		for _, w := range res.Warnings {
			problems = append(problems, fmt.Sprintf("binding %d: %s", i, w))
		}
		if b.Action == "" {
			problems = append(problems, fmt.Sprintf("binding %d: no action", i))
		}
	}
	for i, sb := range s.Sequences {
		if len(sb.Steps) == 0 {
			problems = append(problems, fmt.Sprintf("sequence %d: no steps", i))
		}
		for j, step := range sb.Steps {
			res := hotkey.Validate(step)
			for _, e := range res.Errors {
				problems = append(problems, fmt.Sprintf("sequence %d step %d: %s", i, j, e))
			}
			for _, w := range res.Warnings {
				problems = append(problems, fmt.Sprintf("sequence %d step %d: %s", i, j, w))
			}
		}
		if sb.Action == "" {
			problems = append(problems, fmt.Sprintf("sequence %d: no action", i))
		}
	}
	return problems
}
