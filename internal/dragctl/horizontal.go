package dragctl

import (
	"math"

	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/geom"
	"github.com/dshills/blockdrag/internal/resolve"
	"github.com/dshills/blockdrag/internal/state"
)

// markerWidth is the layout-space width of the column-insertion marker.
const markerWidth = 4

// horizontalTarget computes the active horizontal drop target for a
// layout-space pointer, or nil. The target is always judged against
// the top-level block under the pointer: an edge-zone hit wraps an
// ordinary block into columns or inserts at the near edge of a column
// set with room; failing that, a column set's divider gaps accept an
// indexed insertion within tolerance.
func horizontalTarget(s doc.Surface, cfg Config, sourcePos doc.Pos, x, y float64) *state.HorizontalDrop {
	loc, ok := s.HitTest(x, y)
	if !ok {
		loc, ok = s.ResolveAt(x, y)
	}
	if !ok {
		return nil
	}
	top, ok := resolve.TopLevelAt(loc)
	if !ok {
		return nil
	}

	// The drag source cannot target itself, nor the set it sits in.
	if sourcePos >= top.Pos && sourcePos < top.Pos+doc.Pos(top.Node.Size()) {
		return nil
	}

	rect, ok := s.RectOf(top.Pos)
	if !ok {
		return nil
	}

	isSet := top.Node.Kind == doc.KindColumnSet
	if isSet && top.Node.ChildCount() >= cfg.MaxColumns {
		return nil
	}

	switch {
	case x <= rect.Left+cfg.EdgeZone:
		idx := -1
		if isSet {
			idx = 0
		}
		return &state.HorizontalDrop{
			Side:        state.SideLeft,
			TargetPos:   top.Pos,
			Rect:        geom.Rect{Left: rect.Left - markerWidth/2, Top: rect.Top, Width: markerWidth, Height: rect.Height},
			ColumnIndex: idx,
		}
	case x >= rect.Right()-cfg.EdgeZone:
		idx := -1
		if isSet {
			idx = top.Node.ChildCount()
		}
		return &state.HorizontalDrop{
			Side:        state.SideRight,
			TargetPos:   top.Pos,
			Rect:        geom.Rect{Left: rect.Right() - markerWidth/2, Top: rect.Top, Width: markerWidth, Height: rect.Height},
			ColumnIndex: idx,
		}
	}

	if !isSet {
		return nil
	}
	return dividerTarget(s, cfg, top, rect, x)
}

// dividerTarget tests the gaps between adjacent columns of a set. A
// pointer within tolerance of a divider inserts a new column at that
// index.
func dividerTarget(s doc.Surface, cfg Config, set resolve.Unit, rect geom.Rect, x float64) *state.HorizontalDrop {
	pos := set.Pos + 1
	var rights []float64
	var lefts []float64
	for _, col := range set.Node.Children {
		if r, ok := s.RectOf(pos); ok {
			lefts = append(lefts, r.Left)
			rights = append(rights, r.Right())
		}
		pos += doc.Pos(col.Size())
	}

	for i := 1; i < len(lefts); i++ {
		gapX := (rights[i-1] + lefts[i]) / 2
		if math.Abs(x-gapX) <= cfg.DividerTolerance {
			return &state.HorizontalDrop{
				Side:        state.SideLeft,
				TargetPos:   set.Pos,
				Rect:        geom.Rect{Left: gapX - markerWidth/2, Top: rect.Top, Width: markerWidth, Height: rect.Height},
				ColumnIndex: i,
				GapX:        gapX,
			}
		}
	}
	return nil
}
