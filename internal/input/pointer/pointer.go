// Package pointer provides pointer input events for the block overlay.
//
// Events carry screen coordinates in display space (already zoomed),
// the button involved, the modifier keys held, and a timestamp used by
// the long-press detector. The package does not interpret gestures;
// it only describes raw input.
package pointer

import (
	"time"

	"github.com/dshills/blockdrag/internal/input/key"
)

// Button represents a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonPrimary is the primary (left) button.
	ButtonPrimary
	// ButtonSecondary is the secondary (right) button.
	ButtonSecondary
	// ButtonMiddle is the middle button.
	ButtonMiddle
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// Action represents the type of pointer action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionDown indicates a button press.
	ActionDown
	// ActionMove indicates pointer movement.
	ActionMove
	// ActionUp indicates a button release.
	ActionUp
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	default:
		return "none"
	}
}

// Position represents a screen coordinate in display space.
type Position struct {
	X float64
	Y float64
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two
// positions. Manhattan distance is cheap and close enough for gesture
// thresholds.
func (p Position) Distance(other Position) float64 {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event represents a pointer input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the pointer button involved.
	Button Button

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is the type of pointer action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}
