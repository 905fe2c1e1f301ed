package doc

import (
	"fmt"
	"sync"

	"github.com/dshills/blockdrag/internal/geom"
)

// Mem is an in-memory Surface backed by a node tree and the simple
// flow layout in Layout. Tests and the demo harness drive the overlay
// against it; a production host substitutes its own engine.
type Mem struct {
	mu sync.RWMutex

	root      *Node
	layout    Layout
	zoom      float64
	paginated bool

	// cursor is the caret position last requested by a transaction.
	cursor Pos
}

// NewMem creates an in-memory surface over the given document root.
func NewMem(root *Node, layout Layout) *Mem {
	return &Mem{
		root:   root,
		layout: layout,
		zoom:   1.0,
		cursor: None,
	}
}

// Root returns the live document root. Callers must treat it as
// read-only; edits go through Apply.
func (m *Mem) Root() *Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.root
}

// Cursor returns the caret position last requested by a transaction,
// or None.
func (m *Mem) Cursor() Pos {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursor
}

// SetZoom sets the display zoom factor.
func (m *Mem) SetZoom(zoom float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zoom = zoom
}

// SetPaginated toggles paginated display.
func (m *Mem) SetPaginated(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paginated = on
}

// ResolvePos builds the ancestor chain for a logical position.
func (m *Mem) ResolvePos(pos Pos) (Loc, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return resolveIn(m.root, pos)
}

// NodeAt returns the node whose open token sits at pos, or nil.
func (m *Mem) NodeAt(pos Pos) *Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return nodeStartingAt(m.root, pos)
}

// RectOf returns the layout-space rect of the node starting at pos.
func (m *Mem) RectOf(pos Pos) (geom.Rect, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blocks, _ := m.layout.layoutTree(m.root)
	for _, b := range blocks {
		if b.start == pos {
			return b.rect, true
		}
	}
	return geom.Rect{}, false
}

// HitTest resolves the deepest non-wrapper block whose rendered rect
// contains the point. Wrappers and container rects alone do not count
// as hits; a pointer over padding or between blocks fails.
func (m *Mem) HitTest(x, y float64) (Loc, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blocks, _ := m.layout.layoutTree(m.root)
	p := geom.Point{X: x, Y: y}
	best := None
	for _, b := range blocks {
		if b.node.Kind.IsWrapper() {
			continue
		}
		if b.rect.Contains(p) {
			// Later entries are deeper or further down the flow;
			// keep the last match so nested blocks win over their
			// column set.
			best = b.start
		}
	}
	if best == None {
		return Loc{}, false
	}
	return resolveIn(m.root, best)
}

// ResolveAt is the lenient coordinate-to-position fallback: X is
// clamped into the content area and Y snaps to the nearest block in
// the vertical flow. It fails only when Y is outside the document.
func (m *Mem) ResolveAt(x, y float64) (Loc, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blocks, height := m.layout.layoutTree(m.root)
	if len(blocks) == 0 {
		return Loc{}, false
	}
	if y < m.layout.OriginY || y >= m.layout.OriginY+height+m.layout.BlockGap {
		return Loc{}, false
	}

	if x < m.layout.ContentLeft {
		x = m.layout.ContentLeft
	}
	if right := m.layout.ContentLeft + m.layout.ContentWidth - 1; x > right {
		x = right
	}

	best := None
	bestDist := 0.0
	for _, b := range blocks {
		if b.node.Kind.IsWrapper() {
			continue
		}
		// Horizontal miss on a nested block means a different column;
		// only blocks overlapping the clamped X are candidates.
		if x < b.rect.Left || x >= b.rect.Right() {
			continue
		}
		var dist float64
		switch {
		case b.rect.ContainsY(y):
			dist = 0
		case y < b.rect.Top:
			dist = b.rect.Top - y
		default:
			dist = y - b.rect.Bottom()
		}
		// Ties go to the later entry, which is the deeper node when a
		// nested block overlaps its column set.
		if best == None || dist <= bestDist {
			best, bestDist = b.start, dist
		}
	}
	if best == None {
		return Loc{}, false
	}
	return resolveIn(m.root, best)
}

// Apply atomically applies a transaction. Steps run against a deep
// copy; the copy is adopted only when every step succeeds.
func (m *Mem) Apply(tx Tx) (Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(tx.Steps) == 0 {
		return Mapping{}, ErrEmptyTransaction
	}

	working := m.root.Clone()
	mapping := Mapping{spans: make([]span, 0, len(tx.Steps))}
	for i, step := range tx.Steps {
		sp, err := step.apply(working)
		if err != nil {
			return Mapping{}, fmt.Errorf("step %d: %w", i, err)
		}
		if sp != (span{}) {
			mapping.spans = append(mapping.spans, sp)
		}
	}

	m.root = working
	if tx.Cursor != None {
		m.cursor = tx.Cursor
	}
	return mapping, nil
}

// ZoomFactor returns the current display zoom.
func (m *Mem) ZoomFactor() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zoom
}

// Paginated reports whether paginated display is active.
func (m *Mem) Paginated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paginated
}

// ForbiddenZones returns the pagination bands; empty when pagination
// is off.
func (m *Mem) ForbiddenZones() []geom.Zone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.paginated {
		return nil
	}
	_, height := m.layout.layoutTree(m.root)
	return m.layout.zones(height)
}
