package doc

import (
	"math"

	"github.com/dshills/blockdrag/internal/geom"
)

// Layout describes how the in-memory surface renders the tree:
// a single vertical flow of blocks with column sets splitting the
// content width. Real hosts render through their own engine; this
// model exists so geometry queries have honest answers in tests and
// the demo.
type Layout struct {
	// ContentLeft is the X coordinate of the content area.
	ContentLeft float64

	// ContentWidth is the width of the content area.
	ContentWidth float64

	// OriginY is the Y coordinate of the first block.
	OriginY float64

	// LineHeight is the height of one text line.
	LineHeight float64

	// RunesPerLine controls how text length turns into block height.
	RunesPerLine int

	// BlockGap is the vertical gap between sibling blocks.
	BlockGap float64

	// PageHeight is the content height per page when paginated.
	PageHeight float64

	// PageGap is the forbidden band between pages (gap plus header
	// and footer).
	PageGap float64
}

// DefaultLayout returns the layout used by tests and the demo.
func DefaultLayout() Layout {
	return Layout{
		ContentLeft:  40,
		ContentWidth: 600,
		OriginY:      40,
		LineHeight:   24,
		RunesPerLine: 60,
		BlockGap:     12,
		PageHeight:   800,
		PageGap:      60,
	}
}

// blockRect pairs a laid-out node with its start position and rect.
type blockRect struct {
	node  *Node
	start Pos
	rect  geom.Rect
}

// leafHeight returns the rendered height of a non-container block.
func (l Layout) leafHeight(n *Node) float64 {
	if n.Kind == KindTable {
		return 4 * l.LineHeight
	}
	runes := len([]rune(n.Text))
	lines := 1
	if l.RunesPerLine > 0 && runes > 0 {
		lines = int(math.Ceil(float64(runes) / float64(l.RunesPerLine)))
		if lines < 1 {
			lines = 1
		}
	}
	return float64(lines) * l.LineHeight
}

// layoutChildren lays out the children of a container whose open token
// sits at start, stacking them vertically at x with the given width.
// It appends an entry for every laid-out node at every level and
// returns the total content height.
func (l Layout) layoutChildren(container *Node, start Pos, x, y, width float64, out *[]blockRect) float64 {
	childStart := start + 1
	top := y
	for i, child := range container.Children {
		if i > 0 {
			y += l.BlockGap
		}
		h := l.layoutNode(child, childStart, x, y, width, out)
		y += h
		childStart += Pos(child.Size())
	}
	return y - top
}

// layoutNode lays out one node and returns its height.
func (l Layout) layoutNode(n *Node, start Pos, x, y, width float64, out *[]blockRect) float64 {
	switch n.Kind {
	case KindColumnSet:
		return l.layoutColumnSet(n, start, x, y, width, out)
	case KindSection:
		idx := len(*out)
		*out = append(*out, blockRect{})
		h := l.layoutChildren(n, start, x, y, width, out)
		(*out)[idx] = blockRect{node: n, start: start, rect: geom.Rect{Left: x, Top: y, Width: width, Height: h}}
		return h
	default:
		r := geom.Rect{Left: x, Top: y, Width: width, Height: l.leafHeight(n)}
		*out = append(*out, blockRect{node: n, start: start, rect: r})
		return r.Height
	}
}

// layoutColumnSet lays out a column set: columns side by side, each
// column's blocks stacked from the set's top. Every column rect spans
// the full set height so divider zones have a stable geometry.
func (l Layout) layoutColumnSet(n *Node, start Pos, x, y, width float64, out *[]blockRect) float64 {
	setIdx := len(*out)
	*out = append(*out, blockRect{})

	// First pass: column content heights determine the set height.
	height := l.LineHeight
	colStart := start + 1
	colStarts := make([]Pos, len(n.Children))
	for i, col := range n.Children {
		colStarts[i] = colStart
		var scratch []blockRect
		h := l.layoutChildren(col, colStart, 0, 0, 100, &scratch)
		if col.ChildCount() == 0 {
			h = l.LineHeight
		}
		if h > height {
			height = h
		}
		colStart += Pos(col.Size())
	}

	// Second pass: real geometry.
	colX := x
	for i, col := range n.Children {
		w := width / float64(len(n.Children))
		if i < len(n.Widths) {
			w = n.Widths[i] * width
		}
		*out = append(*out, blockRect{
			node:  col,
			start: colStarts[i],
			rect:  geom.Rect{Left: colX, Top: y, Width: w, Height: height},
		})
		l.layoutChildren(col, colStarts[i], colX, y, w, out)
		colX += w
	}

	(*out)[setIdx] = blockRect{
		node:  n,
		start: start,
		rect:  geom.Rect{Left: x, Top: y, Width: width, Height: height},
	}
	return height
}

// layoutTree lays out the whole document and returns every node's
// geometry plus the total content height.
func (l Layout) layoutTree(root *Node) ([]blockRect, float64) {
	var out []blockRect
	h := l.layoutChildren(root, -1, l.ContentLeft, l.OriginY, l.ContentWidth, &out)
	return out, h
}

// zones returns the forbidden bands for a document of the given
// content height.
func (l Layout) zones(contentHeight float64) []geom.Zone {
	if l.PageHeight <= 0 {
		return nil
	}
	var zones []geom.Zone
	bottom := l.OriginY + contentHeight
	for k := 0; ; k++ {
		top := l.OriginY + l.PageHeight + float64(k)*(l.PageHeight+l.PageGap)
		if top >= bottom+l.PageHeight {
			break
		}
		zones = append(zones, geom.Zone{Top: top, Bottom: top + l.PageGap})
	}
	return zones
}
