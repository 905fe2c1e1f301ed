package doc

// Pos is a flat logical position in the document. Every node occupies
// an open token, its content, and a close token; leaf content counts
// runes. The first top-level block starts at position 0. Deleting a
// node shifts every later position down by the node's extent, which is
// what makes drop-target adjustment and selection mapping arithmetic.
type Pos int

// None marks the absence of a position.
const None Pos = -1

// Ancestor is one level of a resolved position: a node, the position
// of its open token, and its index within its parent.
type Ancestor struct {
	// Node is the node at this level.
	Node *Node

	// Start is the position of the node's open token. The document
	// root uses -1 so that its content starts at position 0.
	Start Pos

	// Index is the node's child index within its parent.
	Index int
}

// ContentStart returns the position of the first child boundary
// inside the node.
func (a Ancestor) ContentStart() Pos {
	return a.Start + 1
}

// ContentEnd returns the position just past the last child boundary
// inside the node.
func (a Ancestor) ContentEnd() Pos {
	return a.Start + 1 + Pos(a.Node.ContentSize())
}

// Loc is a resolved logical position: the position itself plus the
// chain of ancestor nodes from the document root (first entry) down
// to the deepest node containing the position.
type Loc struct {
	// Pos is the resolved position.
	Pos Pos

	// Chain holds the ancestors, root first. Chain[0] is always the
	// document root.
	Chain []Ancestor
}

// Depth returns the nesting depth below the root.
func (l Loc) Depth() int {
	return len(l.Chain) - 1
}

// Deepest returns the innermost ancestor.
func (l Loc) Deepest() Ancestor {
	return l.Chain[len(l.Chain)-1]
}

// At returns the ancestor at the given chain depth; 0 is the root.
func (l Loc) At(depth int) Ancestor {
	return l.Chain[depth]
}

// resolveIn builds the ancestor chain for pos under root. A position
// equal to a child's start counts as inside that child, so block-start
// positions resolve to the block itself. Returns false when pos lies
// outside the document content.
func resolveIn(root *Node, pos Pos) (Loc, bool) {
	if pos < 0 || pos > Pos(root.ContentSize()) {
		return Loc{}, false
	}

	loc := Loc{Pos: pos}
	loc.Chain = append(loc.Chain, Ancestor{Node: root, Start: -1, Index: 0})

	node := root
	start := Pos(-1)
	for node.Kind.IsContainer() {
		childStart := start + 1
		found := false
		for i, child := range node.Children {
			end := childStart + Pos(child.Size())
			if pos >= childStart && pos < end {
				loc.Chain = append(loc.Chain, Ancestor{Node: child, Start: childStart, Index: i})
				node = child
				start = childStart
				found = true
				break
			}
			childStart = end
		}
		if !found {
			break
		}
	}
	return loc, true
}

// childStart returns the open-token position of the i-th child of the
// container whose own open token sits at start.
func childStart(container *Node, start Pos, i int) Pos {
	pos := start + 1
	for j := 0; j < i; j++ {
		pos += Pos(container.Children[j].Size())
	}
	return pos
}

// nodeStartingAt returns the node whose open token sits exactly at pos,
// preferring the outermost such node. Returns nil when no node starts
// there.
func nodeStartingAt(root *Node, pos Pos) *Node {
	loc, ok := resolveIn(root, pos)
	if !ok {
		return nil
	}
	for _, a := range loc.Chain[1:] {
		if a.Start == pos {
			return a.Node
		}
	}
	return nil
}
