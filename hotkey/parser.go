package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/keybind/key"
)

// Parse errors
var (
	// ErrEmptyHotkey is returned for an empty or all-whitespace descriptor.
	ErrEmptyHotkey = errors.New("empty hotkey descriptor")

	// ErrEmptyToken is returned when a descriptor contains an empty token,
	// as in "Ctrl++S" or a trailing '+'. Write the plus key as "Plus".
	ErrEmptyToken = errors.New("empty token in hotkey descriptor")
)

// Parse parses a hotkey descriptor into its canonical form.
//
// Tokens are separated by '+'; all but the last are modifiers and the last
// is the key. Matching is case-insensitive and whitespace around tokens is
// ignored. The platform decides how the adaptive "Mod" modifier resolves:
// Meta on mac, Control on every other platform.
//
// Parsing is deliberately permissive: an unrecognized modifier token in a
// multi-token descriptor is dropped rather than rejected, and a single
// unrecognized token is treated as the key itself. Use Validate to surface
// those problems at configuration boundaries. Parse fails only on an empty
// descriptor or an empty token.
func Parse(descriptor string, platform key.Platform) (Hotkey, error) {
	if strings.TrimSpace(descriptor) == "" {
		return Hotkey{}, ErrEmptyHotkey
	}

	tokens := strings.Split(descriptor, "+")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
		if tokens[i] == "" {
			return Hotkey{}, fmt.Errorf("%w: %q", ErrEmptyToken, descriptor)
		}
	}

	var mods key.Modifier
	for _, tok := range tokens[:len(tokens)-1] {
		if mod := key.ResolveModifierToken(tok, platform); mod != key.ModNone {
			mods = mods.With(mod)
		}
	}

	return New(tokens[len(tokens)-1], mods), nil
}

// MustParse parses a descriptor and panics on error. Use only for
// known-valid descriptors in initialization code.
func MustParse(descriptor string, platform key.Platform) Hotkey {
	h, err := Parse(descriptor, platform)
	if err != nil {
		panic("invalid hotkey descriptor: " + descriptor + ": " + err.Error())
	}
	return h
}

// Normalize parses and re-serializes a descriptor to its canonical form.
// For a fixed platform the result is a fixed point: normalizing a canonical
// string returns it unchanged, and parsing it yields the same Hotkey as
// parsing the original.
func Normalize(descriptor string, platform key.Platform) (string, error) {
	h, err := Parse(descriptor, platform)
	if err != nil {
		return "", err
	}
	return h.String(), nil
}
