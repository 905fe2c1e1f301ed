package dragctl

import (
	"sync"

	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/geom"
	"github.com/dshills/blockdrag/internal/resolve"
	"github.com/dshills/blockdrag/internal/state"
)

// Config holds the drop-target thresholds.
type Config struct {
	// EdgeZone is the horizontal band, in layout pixels, inside a
	// block's left or right border that produces a wrap target.
	EdgeZone float64

	// DividerTolerance is the distance from a column divider within
	// which a drag targets an indexed insertion.
	DividerTolerance float64

	// MaxColumns caps a column set's size. Drops against a full set
	// produce no horizontal target.
	MaxColumns int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		EdgeZone:         30,
		DividerTolerance: 8,
		MaxColumns:       4,
	}
}

// Drop describes a released drag for the mutation layer: the snapshot
// of the source plus whichever target was active at release time. A
// non-nil Horizontal wins over the vertical gap.
type Drop struct {
	// SourcePos is the dragged block's position at drag start.
	SourcePos doc.Pos

	// SourceNode is the dragged block's node at drag start.
	SourceNode *doc.Node

	// Horizontal is the layout-space horizontal target, or nil.
	Horizontal *state.HorizontalDrop

	// GapPos is the vertical insertion boundary. Valid when HasGap.
	GapPos doc.Pos

	// HasGap reports whether a vertical gap was resolved during the
	// drag.
	HasGap bool
}

// Controller owns the drag session from begin to release. Every
// pointer move recomputes targets against the live surface; nothing
// geometric is cached across moves.
type Controller struct {
	mu sync.Mutex

	surface doc.Surface
	store   *state.Store
	config  Config

	// horizontal is the layout-space target from the latest move.
	horizontal *state.HorizontalDrop

	gapPos doc.Pos
	hasGap bool
}

// NewController creates a controller over the surface, publishing into
// the store.
func NewController(surface doc.Surface, store *state.Store, config Config) *Controller {
	return &Controller{surface: surface, store: store, config: config}
}

// SetConfig replaces the drop-target thresholds, applied from the
// next pointer move.
func (c *Controller) SetConfig(config Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = config
}

// Config returns the current thresholds.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Begin starts the drag session for a resolved unit: the source is
// snapshotted, the block fades, and native selection is suppressed for
// the whole drag.
func (c *Controller) Begin(unit resolve.Unit) error {
	err := c.store.StartSession(state.Session{
		SourcePos:     unit.Pos,
		SourceNode:    unit.Node,
		DropTargetPos: doc.None,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.horizontal = nil
	c.hasGap = false
	c.mu.Unlock()

	c.store.SetFade(unit.Pos)
	c.store.SetSuppressSelection(true)
	rect, hasRect := c.surface.RectOf(unit.Pos)
	zoom := c.surface.ZoomFactor()
	c.store.UpdateIndicator(func(ind *state.Indicator) {
		ind.IsDragging = true
		ind.IsLongPressing = false
		ind.Visible = hasRect
		if hasRect {
			r := rect.Scale(zoom)
			ind.Top = r.Top
			ind.Height = r.Height
			ind.BlockLeft = r.Left
			ind.BlockWidth = r.Width
		}
		ind.Horizontal = nil
	})
	return nil
}

// Move recomputes targets for a display-space pointer position. A
// pointer inside a forbidden zone hides the indicator without ending
// the session; an unresolvable position skips the frame.
func (c *Controller) Move(x, y float64) {
	sess, ok := c.store.Session()
	if !ok {
		return
	}

	c.mu.Lock()
	cfg := c.config
	c.mu.Unlock()

	zoom := c.surface.ZoomFactor()
	lx, ly := x/zoom, y/zoom
	zones := c.surface.ForbiddenZones()

	if geom.InZone(zones, ly) {
		c.mu.Lock()
		c.horizontal = nil
		c.hasGap = false
		c.mu.Unlock()
		c.store.UpdateIndicator(func(ind *state.Indicator) {
			ind.Visible = false
			ind.Horizontal = nil
		})
		return
	}

	h := horizontalTarget(c.surface, cfg, sess.SourcePos, lx, ly)
	if h != nil && (geom.RectInZone(zones, h.Rect) || geom.Crosses(zones, h.Rect)) {
		// A column marker in or across a forbidden band would render
		// where nothing may; the vertical gap takes over instead.
		h = nil
	}
	if h != nil {
		c.mu.Lock()
		c.horizontal = h
		c.hasGap = false
		c.mu.Unlock()

		display := *h
		display.Rect = h.Rect.Scale(zoom)
		display.GapX = h.GapX * zoom
		c.store.UpdateIndicator(func(ind *state.Indicator) {
			ind.Visible = true
			ind.Horizontal = &display
		})
		return
	}

	loc, ok := c.surface.HitTest(lx, ly)
	if !ok {
		loc, ok = c.surface.ResolveAt(lx, ly)
	}
	if !ok {
		return
	}
	container, ok := resolve.ContainerAt(loc)
	if !ok {
		return
	}
	gap, ok := Nearest(Gaps(c.surface, container), ly, zones)
	if !ok {
		return
	}

	c.mu.Lock()
	c.horizontal = nil
	c.gapPos = gap.Pos
	c.hasGap = true
	c.mu.Unlock()

	c.store.SetDropTarget(gap.Pos)
	width, left := c.lineExtent(loc, container)
	c.store.UpdateIndicator(func(ind *state.Indicator) {
		ind.Visible = true
		ind.Horizontal = nil
		ind.DropIndicatorTop = gap.Top * zoom
		ind.BlockLeft = left * zoom
		ind.BlockWidth = width * zoom
	})
}

// lineExtent returns the drop line's layout-space width and left edge:
// the container's rect for a wrapper, otherwise the hovered top-level
// block's rect.
func (c *Controller) lineExtent(loc doc.Loc, container doc.Ancestor) (width, left float64) {
	if container.Node.Kind.IsWrapper() {
		if r, ok := c.surface.RectOf(container.Start); ok {
			return r.Width, r.Left
		}
	}
	if top, ok := resolve.TopLevelAt(loc); ok {
		if r, ok := c.surface.RectOf(top.Pos); ok {
			return r.Width, r.Left
		}
	}
	return 0, 0
}

// Release ends the session and returns the drop description for the
// mutation layer. Returns false when no session was active. Fade and
// selection suppression are restored either way; the caller decides
// whether an animation keeps the indicator alive.
func (c *Controller) Release() (Drop, bool) {
	sess, ok := c.store.Session()
	if !ok {
		return Drop{}, false
	}

	c.mu.Lock()
	drop := Drop{
		SourcePos:  sess.SourcePos,
		SourceNode: sess.SourceNode,
		Horizontal: c.horizontal,
		GapPos:     c.gapPos,
		HasGap:     c.hasGap,
	}
	c.horizontal = nil
	c.hasGap = false
	c.mu.Unlock()

	c.store.EndSession()
	c.store.SetFade(doc.None)
	c.store.SetSuppressSelection(false)
	c.store.UpdateIndicator(func(ind *state.Indicator) {
		ind.IsDragging = false
		ind.Horizontal = nil
	})
	return drop, true
}

// Cancel discards the session and returns every piece of state to
// baseline in one step.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.horizontal = nil
	c.hasGap = false
	c.mu.Unlock()
	c.store.Reset()
}
