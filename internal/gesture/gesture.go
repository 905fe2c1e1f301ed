// Package gesture implements the long-press detector that converts a
// held pointer-down into drag arming.
//
// The detector is a three-state machine (Idle, Arming, Dragging)
// advanced by pointer events and an explicit Tick with the current
// time. No real timers run; a deadline is recorded at pointer-down
// and checked on every tick, which keeps the machine unit-testable
// with synthetic clocks.
package gesture

import (
	"sync"
	"time"

	"github.com/dshills/blockdrag/internal/input/pointer"
)

// Phase is the detector's current state.
type Phase uint8

const (
	// PhaseIdle means no gesture is in progress.
	PhaseIdle Phase = iota
	// PhaseArming means a long-press timer is pending.
	PhaseArming
	// PhaseDragging means the long press expired and the drag owns
	// the pointer.
	PhaseDragging
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseArming:
		return "arming"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Config configures the detector thresholds.
type Config struct {
	// PressDuration is how long the pointer must stay down before the
	// drag arms.
	PressDuration time.Duration

	// MoveThreshold is the Manhattan distance that cancels an armed
	// press.
	MoveThreshold float64
}

// DefaultConfig returns the standard long-press thresholds.
func DefaultConfig() Config {
	return Config{
		PressDuration: 400 * time.Millisecond,
		MoveThreshold: 10,
	}
}

// Detector is the long-press state machine.
type Detector struct {
	mu sync.Mutex

	config Config
	phase  Phase

	// startPos is where the press began.
	startPos pointer.Position

	// deadline is when the press converts into a drag.
	deadline time.Time
}

// NewDetector creates an idle detector.
func NewDetector(config Config) *Detector {
	return &Detector{config: config}
}

// Phase returns the current phase.
func (d *Detector) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Arming reports a pending long-press timer.
func (d *Detector) Arming() bool {
	return d.Phase() == PhaseArming
}

// Down arms the timer for a pointer-down over a resolvable block.
// Arming is refused while a drag is active: a second session is
// impossible by construction. Returns true when the press armed.
func (d *Detector) Down(ev pointer.Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != PhaseIdle {
		return false
	}
	if ev.Button != pointer.ButtonPrimary || !ev.Modifiers.IsEmpty() {
		return false
	}

	d.phase = PhaseArming
	d.startPos = ev.Position
	d.deadline = ev.Timestamp.Add(d.config.PressDuration)
	return true
}

// Move cancels an armed press that drifted past the movement
// threshold. Returns true when the move cancelled the press.
func (d *Detector) Move(ev pointer.Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != PhaseArming {
		return false
	}
	if ev.Position.Distance(d.startPos) <= d.config.MoveThreshold {
		return false
	}
	d.phase = PhaseIdle
	return true
}

// Up releases the pointer. An armed press cancels; a drag phase stays
// untouched since the drag controller owns the release.
func (d *Detector) Up() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == PhaseArming {
		d.phase = PhaseIdle
	}
}

// Cancel forces the detector back to idle from any phase.
func (d *Detector) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phase = PhaseIdle
}

// Tick checks the deadline. When an armed press expires the detector
// enters Dragging and returns true exactly once; the caller hands off
// to the drag session controller.
func (d *Detector) Tick(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != PhaseArming || now.Before(d.deadline) {
		return false
	}
	d.phase = PhaseDragging
	return true
}

// Release returns the detector to idle after a drag ends.
func (d *Detector) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == PhaseDragging {
		d.phase = PhaseIdle
	}
}

// StartPos returns where the armed press began.
func (d *Detector) StartPos() pointer.Position {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.startPos
}

// SetConfig replaces the thresholds. An armed press keeps the deadline
// it was armed with; the new values apply from the next press.
func (d *Detector) SetConfig(config Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config = config
}
