package gesture

import (
	"testing"
	"time"

	"github.com/dshills/blockdrag/internal/input/key"
	"github.com/dshills/blockdrag/internal/input/pointer"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func press(x, y float64, at time.Time) pointer.Event {
	return pointer.Event{
		Position:  pointer.Position{X: x, Y: y},
		Button:    pointer.ButtonPrimary,
		Action:    pointer.ActionDown,
		Timestamp: at,
	}
}

func move(x, y float64) pointer.Event {
	return pointer.Event{
		Position: pointer.Position{X: x, Y: y},
		Action:   pointer.ActionMove,
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseIdle, "idle"},
		{PhaseArming, "arming"},
		{PhaseDragging, "dragging"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestLongPressArms(t *testing.T) {
	d := NewDetector(DefaultConfig())

	if !d.Down(press(100, 100, t0)) {
		t.Fatal("Down did not arm")
	}
	if d.Phase() != PhaseArming {
		t.Fatalf("phase = %s, want arming", d.Phase())
	}

	// Before the deadline nothing fires.
	if d.Tick(t0.Add(399 * time.Millisecond)) {
		t.Error("Tick fired before the deadline")
	}
	// At the deadline the press converts to a drag exactly once.
	if !d.Tick(t0.Add(400 * time.Millisecond)) {
		t.Error("Tick did not fire at the deadline")
	}
	if d.Tick(t0.Add(401 * time.Millisecond)) {
		t.Error("Tick fired twice")
	}
	if d.Phase() != PhaseDragging {
		t.Errorf("phase = %s, want dragging", d.Phase())
	}
}

func TestMovementCancels(t *testing.T) {
	d := NewDetector(DefaultConfig())
	d.Down(press(100, 100, t0))

	// Within the threshold the press stays armed.
	if d.Move(move(104, 104)) {
		t.Error("small move cancelled the press")
	}
	if d.Phase() != PhaseArming {
		t.Fatalf("phase = %s, want arming", d.Phase())
	}

	// Past the threshold (Manhattan distance 11) the press cancels.
	if !d.Move(move(105, 106)) {
		t.Error("large move did not cancel")
	}
	if d.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", d.Phase())
	}
	if d.Tick(t0.Add(time.Second)) {
		t.Error("Tick fired after cancellation")
	}
}

func TestEarlyReleaseCancels(t *testing.T) {
	d := NewDetector(DefaultConfig())
	d.Down(press(100, 100, t0))
	d.Up()

	if d.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", d.Phase())
	}
	if d.Tick(t0.Add(time.Second)) {
		t.Error("Tick fired after early release")
	}
}

func TestModifierBlocksArming(t *testing.T) {
	d := NewDetector(DefaultConfig())

	ev := press(100, 100, t0)
	ev.Modifiers = key.ModCtrl
	if d.Down(ev) {
		t.Error("Down armed with a modifier held")
	}
	if d.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", d.Phase())
	}
}

func TestSecondaryButtonBlocksArming(t *testing.T) {
	d := NewDetector(DefaultConfig())

	ev := press(100, 100, t0)
	ev.Button = pointer.ButtonSecondary
	if d.Down(ev) {
		t.Error("Down armed on the secondary button")
	}
}

func TestCannotArmWhileDragging(t *testing.T) {
	d := NewDetector(DefaultConfig())
	d.Down(press(100, 100, t0))
	d.Tick(t0.Add(time.Second))

	if d.Phase() != PhaseDragging {
		t.Fatal("setup: not dragging")
	}
	if d.Down(press(200, 200, t0.Add(2*time.Second))) {
		t.Error("Down armed while dragging")
	}
}

func TestCancelFromAnyPhase(t *testing.T) {
	d := NewDetector(DefaultConfig())

	d.Down(press(100, 100, t0))
	d.Cancel()
	if d.Phase() != PhaseIdle {
		t.Error("Cancel did not reset an armed press")
	}

	d.Down(press(100, 100, t0))
	d.Tick(t0.Add(time.Second))
	d.Cancel()
	if d.Phase() != PhaseIdle {
		t.Error("Cancel did not reset a drag")
	}
}

func TestReleaseAfterDrag(t *testing.T) {
	d := NewDetector(DefaultConfig())
	d.Down(press(100, 100, t0))
	d.Tick(t0.Add(time.Second))

	d.Release()
	if d.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", d.Phase())
	}

	// A fresh press can arm again.
	if !d.Down(press(50, 50, t0.Add(2*time.Second))) {
		t.Error("Down did not arm after release")
	}
}

func TestStartPos(t *testing.T) {
	d := NewDetector(DefaultConfig())
	d.Down(press(123, 456, t0))

	got := d.StartPos()
	if got.X != 123 || got.Y != 456 {
		t.Errorf("StartPos() = %+v, want {123 456}", got)
	}
}
