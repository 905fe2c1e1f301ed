// Package dragctl owns the active drag session: it recomputes vertical
// gaps and horizontal edge and divider targets on every pointer move,
// publishes indicator geometry, and hands a drop description to the
// mutation layer on release.
package dragctl

import (
	"math"

	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/geom"
)

// Gap is a candidate vertical insertion boundary inside a container.
// The gap list is recomputed on every drag move and never persisted.
type Gap struct {
	// Pos is the logical insertion boundary: the start of the child
	// following the gap, or the container's content end after the last
	// child.
	Pos doc.Pos

	// Top is the layout-space Y where the gap line renders.
	Top float64

	// Index runs 0..N over a container of N children.
	Index int

	// Page is the page the gap renders on.
	Page int
}

// Gaps builds the insertion boundaries for a container, in order. The
// first gap sits at the first block's top edge; interior gaps at the
// midpoint between consecutive block edges, except that a midpoint
// falling across a page boundary snaps to the following block's top
// edge so the line never renders inside a forbidden zone. An empty
// container contributes a single synthetic gap at its vertical center.
func Gaps(s doc.Surface, container doc.Ancestor) []Gap {
	zones := s.ForbiddenZones()

	if container.Node.ChildCount() == 0 {
		top := 0.0
		if r, ok := s.RectOf(container.Start); ok {
			top = r.CenterY()
		}
		return []Gap{{Pos: container.ContentStart(), Top: top, Page: geom.PageOf(zones, top)}}
	}

	type edge struct {
		pos  doc.Pos
		rect geom.Rect
		ok   bool
	}
	edges := make([]edge, 0, container.Node.ChildCount())
	pos := container.ContentStart()
	for _, child := range container.Node.Children {
		r, ok := s.RectOf(pos)
		edges = append(edges, edge{pos: pos, rect: r, ok: ok})
		pos = pos + doc.Pos(child.Size())
	}

	gaps := make([]Gap, 0, len(edges)+1)
	for i, e := range edges {
		if !e.ok {
			continue
		}
		// A midpoint straddling a page boundary snaps to the following
		// block's top edge instead.
		top := e.rect.Top
		if i > 0 && edges[i-1].ok {
			prevBottom := edges[i-1].rect.Bottom()
			if !geom.CrossesBetween(zones, prevBottom, e.rect.Top) {
				top = (prevBottom + e.rect.Top) / 2
			}
		}
		gaps = append(gaps, Gap{Pos: e.pos, Top: top, Index: len(gaps), Page: geom.PageOf(zones, top)})
	}
	if last := edges[len(edges)-1]; last.ok {
		top := last.rect.Bottom()
		gaps = append(gaps, Gap{Pos: container.ContentEnd(), Top: top, Index: len(gaps), Page: geom.PageOf(zones, top)})
	}
	return gaps
}

// Nearest returns the gap closest to the layout-space Y, skipping gaps
// that sit inside a forbidden zone. Returns false for an empty list.
func Nearest(gaps []Gap, y float64, zones []geom.Zone) (Gap, bool) {
	best := Gap{}
	bestDist := math.Inf(1)
	found := false
	for _, g := range gaps {
		if geom.InZone(zones, g.Top) {
			continue
		}
		d := math.Abs(g.Top - y)
		if d < bestDist {
			best, bestDist, found = g, d, true
		}
	}
	return best, found
}
