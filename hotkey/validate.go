package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/keybind/key"
)

// ErrInvalidHotkey is returned by AssertValid when a descriptor fails
// validation.
var ErrInvalidHotkey = errors.New("invalid hotkey")

// Result is the outcome of validating a descriptor. Errors make the
// descriptor invalid; warnings flag suspicious but accepted forms.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks a descriptor for problems Parse accepts silently. It is
// platform-independent: the adaptive "Mod" token is a valid modifier
// everywhere.
//
// Errors (descriptor invalid):
//   - empty descriptor
//   - empty token, as in "Ctrl++S" or a trailing '+'
//   - an unrecognized modifier token in a multi-token descriptor
//
// Warnings (descriptor valid):
//   - key outside the known families
//   - Alt+letter and Alt+Shift+letter: many layouts compose characters
//     with Alt, so the letter may never arrive
//   - Shift+digit and Shift+punctuation: the shifted symbol usually
//     arrives instead of the named key
func Validate(descriptor string) Result {
	var res Result

	if strings.TrimSpace(descriptor) == "" {
		res.Errors = append(res.Errors, "Hotkey cannot be empty")
		return res
	}

	tokens := strings.Split(descriptor, "+")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
		if tokens[i] == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Empty token in hotkey %q (write the plus key as \"Plus\")", descriptor))
			return res
		}
	}

	var hasAlt, hasShift bool
	for _, tok := range tokens[:len(tokens)-1] {
		if !key.IsModifierToken(tok) {
			res.Errors = append(res.Errors, fmt.Sprintf("Unknown modifier %q in hotkey %q", tok, descriptor))
			continue
		}
		// Platform only disambiguates the adaptive tokens, and those never
		// resolve to Alt or Shift, so any non-mac value serves here.
		switch key.ResolveModifierToken(tok, key.PlatformLinux) {
		case key.ModAlt:
			hasAlt = true
		case key.ModShift:
			hasShift = true
		}
	}

	name := key.Normalize(tokens[len(tokens)-1])
	family := key.FamilyOf(name)

	if family == key.FamilyUnknown {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unrecognized key %q in hotkey %q", name, descriptor))
	}
	if hasAlt && family == key.FamilyLetter {
		if hasShift {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Alt+Shift+letter hotkey %q may compose a character on some layouts", descriptor))
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Alt+letter hotkey %q may compose a character on some layouts", descriptor))
		}
	}
	if hasShift && (family == key.FamilyDigit || family == key.FamilyPunctuation) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Shift+%s hotkey %q usually reports the shifted symbol instead", family, descriptor))
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// AssertValid validates a descriptor and escalates validation errors to a
// hard failure wrapping ErrInvalidHotkey. Warnings never fail. Use at
// trusted configuration boundaries where a bad descriptor is a programming
// error; use Validate directly where problems should stay advisory.
func AssertValid(descriptor string) error {
	res := Validate(descriptor)
	if res.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidHotkey, strings.Join(res.Errors, "; "))
}
