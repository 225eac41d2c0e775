package key

import (
	"runtime"
	"strings"
)

// Platform identifies the host platform. It decides how platform-adaptive
// modifier spellings resolve at parse time; nothing else in the module
// consults the operating system.
type Platform string

const (
	// PlatformMac is macOS. The adaptive "Mod" modifier resolves to Meta.
	PlatformMac Platform = "mac"

	// PlatformWindows is Windows. "Mod" resolves to Control.
	PlatformWindows Platform = "windows"

	// PlatformLinux is Linux and everything else. "Mod" resolves to Control.
	PlatformLinux Platform = "linux"
)

// Detect returns the Platform for the current operating system.
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMac
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformMac, PlatformWindows, PlatformLinux:
		return true
	}
	return false
}

// IsMac reports whether p is the mac platform.
func (p Platform) IsMac() bool {
	return p == PlatformMac
}

// ParsePlatform returns the Platform for a configuration string
// (case-insensitive), accepting common synonyms. An empty or unknown value
// falls back to Detect.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mac", "macos", "darwin", "osx":
		return PlatformMac
	case "windows", "win":
		return PlatformWindows
	case "linux":
		return PlatformLinux
	}
	return Detect()
}

// adaptiveModifierTokens are modifier spellings that resolve differently per
// platform: Meta on mac, Control everywhere else.
var adaptiveModifierTokens = map[string]struct{}{
	"mod":              {},
	"cmdorctrl":        {},
	"commandorcontrol": {},
}

// ResolveModifierToken resolves a descriptor modifier token to a concrete
// Modifier for the given platform. Fixed spellings (ctrl, alt, shift, meta
// and their aliases) resolve the same on every platform; adaptive spellings
// (mod, cmdorctrl, commandorcontrol) resolve to Meta on mac and to Control
// on any other platform value. Returns ModNone if the token does not name a
// modifier.
func ResolveModifierToken(token string, platform Platform) Modifier {
	token = strings.ToLower(strings.TrimSpace(token))
	if _, ok := adaptiveModifierTokens[token]; ok {
		if platform.IsMac() {
			return ModMeta
		}
		return ModControl
	}
	return ModifierFromName(token)
}

// IsModifierToken reports whether token names a modifier in descriptor
// grammar, including the platform-adaptive spellings.
func IsModifierToken(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if _, ok := adaptiveModifierTokens[token]; ok {
		return true
	}
	_, ok := modifierNameMap[token]
	return ok
}
