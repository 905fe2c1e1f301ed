package doc

import "github.com/dshills/blockdrag/internal/geom"

// Surface is the document-engine boundary the overlay consumes. All
// geometry is in layout space; callers scale by ZoomFactor when
// publishing display geometry and unscale pointer coordinates before
// querying. Geometry queries read the live rendered tree and are
// answered fresh on every call; results must never be cached across
// edits.
type Surface interface {
	// ResolvePos builds the ancestor chain for a logical position.
	ResolvePos(pos Pos) (Loc, bool)

	// HitTest resolves the block under a layout-space point using
	// exact rendered geometry. It fails when the point is over
	// padding or outside every block.
	HitTest(x, y float64) (Loc, bool)

	// ResolveAt is the lenient coordinate-to-position fallback: the
	// horizontal coordinate is clamped into the content, so a pointer
	// over padding still resolves to the nearest block.
	ResolveAt(x, y float64) (Loc, bool)

	// NodeAt returns the node whose open token sits at pos, or nil.
	NodeAt(pos Pos) *Node

	// RectOf returns the rendered layout-space rect of the node at
	// pos. It fails for positions that do not start a node.
	RectOf(pos Pos) (geom.Rect, bool)

	// Apply atomically applies a transaction. On success it returns
	// the position mapping from the old document to the new one; on
	// failure nothing is mutated.
	Apply(tx Tx) (Mapping, error)

	// ZoomFactor returns the current display zoom.
	ZoomFactor() float64

	// Paginated reports whether paginated display is active.
	Paginated() bool

	// ForbiddenZones returns the current pagination gaps, headers,
	// and footers in layout space. Empty when pagination is off.
	ForbiddenZones() []geom.Zone
}
