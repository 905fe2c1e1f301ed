// Package key provides the keyboard surface the block overlay consumes:
// modifier state, cancellation keys, and configurable modifier bindings.
package key

import (
	"fmt"
	"strings"
)

// Modifier represents keyboard modifier keys as a bitmask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a name like "ctrl" or "ctrl+shift".
func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

// ParseModifier resolves a configuration binding name to a modifier.
// Recognized names: ctrl, control, alt, option, shift, meta, cmd, super.
func ParseModifier(name string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ctrl", "control":
		return ModCtrl, nil
	case "alt", "option":
		return ModAlt, nil
	case "shift":
		return ModShift, nil
	case "meta", "cmd", "super":
		return ModMeta, nil
	default:
		return ModNone, fmt.Errorf("unknown modifier %q", name)
	}
}

// Code identifies the non-modifier key of a key event. The overlay only
// distinguishes the keys it reacts to; everything else is CodeOther.
type Code uint8

const (
	// CodeNone indicates a modifier-only event.
	CodeNone Code = iota

	// CodeEscape is the cancellation key.
	CodeEscape

	// CodeOther is any other key; it marks the input mode as keyboard.
	CodeOther
)

// String returns a human-readable name for the code.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeEscape:
		return "escape"
	case CodeOther:
		return "other"
	default:
		return "unknown"
	}
}

// Event represents a keyboard input event.
type Event struct {
	// Code is the key pressed, if any.
	Code Code

	// Modifiers contains the modifier keys held after the event.
	Modifiers Modifier
}

// IsEscape returns true for a cancellation key press.
func (e Event) IsEscape() bool {
	return e.Code == CodeEscape
}

// IsModifierOnly returns true when the event changes modifier state
// without pressing a key. Modifier-only events do not count as typing.
func (e Event) IsModifierOnly() bool {
	return e.Code == CodeNone
}
