package doc

import "fmt"

// Step is a single structural edit within a transaction. Each step's
// positions are expressed in the document as it stands when the step
// runs, i.e. after all earlier steps in the same transaction.
type Step interface {
	// apply mutates the working tree and returns the step's position
	// span for the transaction mapping.
	apply(root *Node) (span, error)
}

// span records one step's effect on positions: the range
// [start, oldEnd) was replaced by [start, newEnd).
type span struct {
	start  Pos
	oldEnd Pos
	newEnd Pos
}

// mapPos maps a position through the span. Positions inside a removed
// range are reported as deleted, except the start of an in-place
// replacement, which survives.
func (s span) mapPos(p Pos) (Pos, bool) {
	switch {
	case p < s.start:
		return p, true
	case p >= s.oldEnd:
		return p + (s.newEnd - s.oldEnd), true
	case p == s.start && s.newEnd > s.start:
		return p, true
	default:
		return None, false
	}
}

// Mapping maps positions in the pre-transaction document to positions
// in the post-transaction document. Positions whose content was
// removed map to nothing.
type Mapping struct {
	spans []span
}

// Map returns the mapped position and true, or None and false when
// the position was deleted by the transaction.
func (m Mapping) Map(p Pos) (Pos, bool) {
	for _, s := range m.spans {
		var ok bool
		p, ok = s.mapPos(p)
		if !ok {
			return None, false
		}
	}
	return p, true
}

// Concat returns a mapping equivalent to applying m, then o. Used to
// fold a follow-up transaction's mapping into the primary one.
func (m Mapping) Concat(o Mapping) Mapping {
	spans := make([]span, 0, len(m.spans)+len(o.spans))
	spans = append(spans, m.spans...)
	spans = append(spans, o.spans...)
	return Mapping{spans: spans}
}

// DeleteNode removes the node whose open token sits at At.
type DeleteNode struct {
	At Pos
}

func (st DeleteNode) apply(root *Node) (span, error) {
	parent, start, idx, err := locateNode(root, st.At)
	if err != nil {
		return span{}, fmt.Errorf("delete at %d: %w", st.At, err)
	}
	size := Pos(parent.Children[idx].Size())
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	return span{start: start, oldEnd: start + size, newEnd: start}, nil
}

// InsertNode inserts Node at the insertion boundary At. The boundary
// must be a child start or a container content end; the outermost
// matching boundary wins.
type InsertNode struct {
	At   Pos
	Node *Node
}

func (st InsertNode) apply(root *Node) (span, error) {
	parent, idx, err := locateBoundary(root, st.At)
	if err != nil {
		return span{}, fmt.Errorf("insert at %d: %w", st.At, err)
	}
	children := append(parent.Children[:idx:idx], st.Node)
	parent.Children = append(children, parent.Children[idx:]...)
	return span{start: st.At, oldEnd: st.At, newEnd: st.At + Pos(st.Node.Size())}, nil
}

// ReplaceNode swaps the node at At for Node.
type ReplaceNode struct {
	At   Pos
	Node *Node
}

func (st ReplaceNode) apply(root *Node) (span, error) {
	parent, start, idx, err := locateNode(root, st.At)
	if err != nil {
		return span{}, fmt.Errorf("replace at %d: %w", st.At, err)
	}
	oldSize := Pos(parent.Children[idx].Size())
	parent.Children[idx] = st.Node
	return span{start: start, oldEnd: start + oldSize, newEnd: start + Pos(st.Node.Size())}, nil
}

// SetWidths replaces the column widths of the column set at At.
// Width changes do not move positions.
type SetWidths struct {
	At     Pos
	Widths []float64
}

func (st SetWidths) apply(root *Node) (span, error) {
	parent, _, idx, err := locateNode(root, st.At)
	if err != nil {
		return span{}, fmt.Errorf("set widths at %d: %w", st.At, err)
	}
	node := parent.Children[idx]
	if node.Kind != KindColumnSet {
		return span{}, fmt.Errorf("set widths at %d: %w", st.At, ErrNotColumnSet)
	}
	if len(st.Widths) != len(node.Children) {
		return span{}, fmt.Errorf("set widths at %d: %d widths for %d columns: %w",
			st.At, len(st.Widths), len(node.Children), ErrInvalidPosition)
	}
	node.Widths = append([]float64(nil), st.Widths...)
	return span{}, nil
}

// Tx is an atomic edit: all steps apply or none do. Cursor, when not
// None, is the post-edit caret position the host should adopt.
type Tx struct {
	// Steps are the structural edits, applied in order.
	Steps []Step

	// Cursor is the requested post-edit caret position, or None.
	Cursor Pos
}

// NewTx creates an empty transaction with no caret request.
func NewTx(steps ...Step) Tx {
	return Tx{Steps: steps, Cursor: None}
}

// locateNode finds the parent, start position, and child index of the
// node whose open token sits exactly at pos, preferring the outermost
// match.
func locateNode(root *Node, pos Pos) (parent *Node, start Pos, idx int, err error) {
	loc, ok := resolveIn(root, pos)
	if !ok {
		return nil, None, 0, ErrInvalidPosition
	}
	for depth := 1; depth < len(loc.Chain); depth++ {
		a := loc.Chain[depth]
		if a.Start == pos {
			return loc.Chain[depth-1].Node, a.Start, a.Index, nil
		}
	}
	return nil, None, 0, ErrNodeNotFound
}

// locateBoundary finds the container and child index for an insertion
// at pos. Valid boundaries are a child's open token or a container's
// content end; the outermost match wins.
func locateBoundary(root *Node, pos Pos) (parent *Node, idx int, err error) {
	if pos < 0 || pos > Pos(root.ContentSize()) {
		return nil, 0, ErrInvalidPosition
	}

	node := root
	start := Pos(-1)
	for {
		childStart := start + 1
		var inside *Node
		insideStart := Pos(0)
		for i, child := range node.Children {
			if pos == childStart {
				return node, i, nil
			}
			end := childStart + Pos(child.Size())
			if pos < end {
				inside = child
				insideStart = childStart
				break
			}
			childStart = end
		}
		if inside == nil {
			if pos == childStart {
				// Content end of this container.
				return node, len(node.Children), nil
			}
			return nil, 0, ErrInvalidPosition
		}
		if !inside.Kind.IsContainer() {
			return nil, 0, ErrInvalidPosition
		}
		node = inside
		start = insideStart
	}
}
