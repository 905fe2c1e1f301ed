// Package hover tracks the block under an idle pointer and publishes
// its indicator geometry. The tracker runs only outside drags and
// armed long-presses; the owning handle gates calls on gesture phase
// and keyboard focus.
package hover

import (
	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/geom"
	"github.com/dshills/blockdrag/internal/resolve"
	"github.com/dshills/blockdrag/internal/state"
)

// Tracker resolves hover geometry against the live surface. It holds
// no positional state of its own; every move is answered fresh so an
// edit between moves can never leave a stale rect on screen.
type Tracker struct {
	surface doc.Surface
	store   *state.Store
}

// NewTracker creates a tracker publishing into the store.
func NewTracker(surface doc.Surface, store *state.Store) *Tracker {
	return &Tracker{surface: surface, store: store}
}

// Move handles a display-space pointer move. The pointer resolves to
// its drag unit by exact hit-testing first, with the lenient
// coordinate lookup as the padding fallback. A pointer in a forbidden
// zone, or over nothing resolvable, hides the indicator.
func (t *Tracker) Move(x, y float64) {
	zoom := t.surface.ZoomFactor()
	lx, ly := x/zoom, y/zoom
	zones := t.surface.ForbiddenZones()

	if geom.InZone(zones, ly) {
		t.Leave()
		return
	}

	loc, ok := t.surface.HitTest(lx, ly)
	if !ok {
		loc, ok = t.surface.ResolveAt(lx, ly)
	}
	if !ok {
		t.Leave()
		return
	}
	unit, ok := resolve.UnitAt(loc)
	if !ok {
		t.Leave()
		return
	}
	rect, ok := t.surface.RectOf(unit.Pos)
	if !ok {
		// Stale between resolve and geometry; skip the frame.
		return
	}

	// A block straddling a page boundary shows only the slice around
	// the pointer.
	rect, ok = geom.ClipToSlice(rect, ly, zones)
	if !ok {
		t.Leave()
		return
	}

	r := rect.Scale(zoom)
	paginated := t.surface.Paginated()
	t.store.UpdateIndicator(func(ind *state.Indicator) {
		ind.Visible = true
		ind.Top = r.Top
		ind.Height = r.Height
		ind.BlockLeft = r.Left
		ind.BlockWidth = r.Width
		ind.PaginationEnabled = paginated
	})
}

// Leave hides the indicator, e.g. when the pointer exits the surface.
func (t *Tracker) Leave() {
	t.store.HideIndicator()
}

// RectForSelection returns the display-space indicator rect for a
// selected block, clipped around the block's center rather than a
// pointer. Used when selection, not hover, drives the indicator.
func (t *Tracker) RectForSelection(pos doc.Pos) (geom.Rect, bool) {
	rect, ok := t.surface.RectOf(pos)
	if !ok {
		return geom.Rect{}, false
	}
	rect, ok = geom.ClipToSlice(rect, rect.CenterY(), t.surface.ForbiddenZones())
	if !ok {
		return geom.Rect{}, false
	}
	return rect.Scale(t.surface.ZoomFactor()), true
}
