package doc

import (
	"testing"

	"github.com/dshills/blockdrag/internal/geom"
)

// Default layout geometry for testDoc:
//
//	alpha    (40,  40, 600, 24)
//	beta     (40,  76, 600, 24)
//	set      (40, 112, 600, 24)
//	  col A  (40, 112, 300, 24)  gamma (40, 112, 300, 24)
//	  col B  (340,112, 300, 24)  delta (340,112, 300, 24)
//	omega    (40, 148, 600, 24)
func TestRectOf(t *testing.T) {
	m := memForTest()

	tests := []struct {
		pos  Pos
		want geom.Rect
	}{
		{0, geom.Rect{Left: 40, Top: 40, Width: 600, Height: 24}},
		{7, geom.Rect{Left: 40, Top: 76, Width: 600, Height: 24}},
		{13, geom.Rect{Left: 40, Top: 112, Width: 600, Height: 24}},
		{14, geom.Rect{Left: 40, Top: 112, Width: 300, Height: 24}},
		{24, geom.Rect{Left: 340, Top: 112, Width: 300, Height: 24}},
		{33, geom.Rect{Left: 40, Top: 148, Width: 600, Height: 24}},
	}

	for _, tt := range tests {
		got, ok := m.RectOf(tt.pos)
		if !ok {
			t.Errorf("RectOf(%d) failed", tt.pos)
			continue
		}
		if got != tt.want {
			t.Errorf("RectOf(%d) = %+v, want %+v", tt.pos, got, tt.want)
		}
	}

	if _, ok := m.RectOf(3); ok {
		t.Error("RectOf inside text succeeded")
	}
}

func TestHitTest(t *testing.T) {
	m := memForTest()

	tests := []struct {
		name string
		x, y float64
		pos  Pos
		ok   bool
	}{
		{"first paragraph", 100, 50, 0, true},
		{"heading", 300, 80, 7, true},
		{"nested left column paragraph", 100, 120, 15, true},
		{"nested right column paragraph", 400, 120, 24, true},
		{"gap between blocks", 100, 105, 0, false},
		{"left margin", 10, 50, 0, false},
		{"below document", 100, 400, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := m.HitTest(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("HitTest(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			}
			if ok && loc.Deepest().Start != tt.pos {
				t.Errorf("HitTest(%v, %v) = %d, want %d", tt.x, tt.y, loc.Deepest().Start, tt.pos)
			}
		})
	}
}

func TestResolveAt(t *testing.T) {
	m := memForTest()

	tests := []struct {
		name string
		x, y float64
		pos  Pos
		ok   bool
	}{
		{"over padding resolves", 10, 50, 0, true},
		{"between blocks snaps to nearest", 100, 105, 7, true},
		{"right column by clamped x", 700, 120, 24, true},
		{"above document fails", 100, 10, 0, false},
		{"far below document fails", 100, 1000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := m.ResolveAt(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("ResolveAt(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			}
			if ok && loc.Deepest().Start != tt.pos {
				t.Errorf("ResolveAt(%v, %v) = %d, want %d", tt.x, tt.y, loc.Deepest().Start, tt.pos)
			}
		})
	}
}

func TestForbiddenZones(t *testing.T) {
	m := memForTest()

	if got := m.ForbiddenZones(); got != nil {
		t.Errorf("zones without pagination = %v, want nil", got)
	}

	m.SetPaginated(true)
	zones := m.ForbiddenZones()
	if len(zones) == 0 {
		t.Fatal("no zones with pagination on")
	}
	if zones[0].Top != 840 || zones[0].Bottom != 900 {
		t.Errorf("first zone = %+v, want {840 900}", zones[0])
	}
}

func TestZoomFactor(t *testing.T) {
	m := memForTest()
	if got := m.ZoomFactor(); got != 1.0 {
		t.Errorf("default zoom = %v, want 1.0", got)
	}
	m.SetZoom(1.25)
	if got := m.ZoomFactor(); got != 1.25 {
		t.Errorf("zoom = %v, want 1.25", got)
	}
}

func TestRectOfTracksEdits(t *testing.T) {
	m := memForTest()

	if _, err := m.Apply(NewTx(DeleteNode{At: 0})); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// The heading moved to position 0 and to the top of the flow.
	got, ok := m.RectOf(0)
	if !ok {
		t.Fatal("RectOf(0) failed after edit")
	}
	if got.Top != 40 {
		t.Errorf("heading top = %v, want 40", got.Top)
	}
}
