package pointer

import "testing"

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonPrimary, "primary"},
		{ButtonSecondary, "secondary"},
		{ButtonMiddle, "middle"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "none"},
		{ActionDown, "down"},
		{ActionMove, "move"},
		{ActionUp, "up"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.action.String(); got != tt.expected {
				t.Errorf("Action.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPositionDistance(t *testing.T) {
	tests := []struct {
		p1, p2   Position
		expected float64
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 7},
		{Position{5, 5}, Position{2, 1}, 7},
		{Position{-1, -1}, Position{1, 1}, 4},
	}

	for _, tt := range tests {
		got := tt.p1.Distance(tt.p2)
		if got != tt.expected {
			t.Errorf("Distance(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.expected)
		}
	}
}

func TestPositionEqual(t *testing.T) {
	a := Position{X: 3, Y: 9}
	if !a.Equal(Position{X: 3, Y: 9}) {
		t.Error("Equal positions not detected as equal")
	}
	if a.Equal(Position{X: 3, Y: 10}) {
		t.Error("Different positions detected as equal")
	}
}
