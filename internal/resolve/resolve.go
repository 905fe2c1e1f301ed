// Package resolve maps resolved document locations to drag units: the
// deepest blocks a user can pick up and move as a whole.
package resolve

import "github.com/dshills/blockdrag/internal/doc"

// Unit is a draggable block: its logical position, its node, and its
// nesting depth below the document root. Units are resolved fresh on
// every query and never cached across edits.
type Unit struct {
	// Pos is the position of the unit's open token.
	Pos doc.Pos

	// Node is the unit's node in the live tree.
	Node *doc.Node

	// Depth is the unit's depth below the document root.
	Depth int
}

// UnitAt walks a resolved location's ancestor chain from the deepest
// node upward and returns the drag unit there. Atomic kinds win
// immediately; structural wrappers are skipped; otherwise the unit is
// the node whose parent is the document root or a wrapper. Returns
// false when the chain holds no draggable node, e.g. a position at the
// document root with no children.
//
// The walk is O(depth) against the live chain, so callers re-run it on
// every query rather than caching a result that an edit could
// invalidate.
func UnitAt(loc doc.Loc) (Unit, bool) {
	for depth := loc.Depth(); depth >= 1; depth-- {
		a := loc.At(depth)
		if a.Node.Kind.IsAtomic() {
			return Unit{Pos: a.Start, Node: a.Node, Depth: depth}, true
		}
		if a.Node.Kind.IsWrapper() {
			continue
		}
		parent := loc.At(depth - 1)
		if parent.Node.Kind == doc.KindDocument || parent.Node.Kind.IsWrapper() {
			return Unit{Pos: a.Start, Node: a.Node, Depth: depth}, true
		}
	}
	return Unit{}, false
}

// TopLevelAt returns the top-level addressable block at the location:
// the ancestor that is a direct child of the document root. Horizontal
// drop targets are always judged against this block, whatever depth
// the pointer resolved to.
func TopLevelAt(loc doc.Loc) (Unit, bool) {
	if loc.Depth() < 1 {
		return Unit{}, false
	}
	a := loc.At(1)
	return Unit{Pos: a.Start, Node: a.Node, Depth: 1}, true
}

// ContainerAt returns the structural container enclosing the location:
// the nearest wrapper above the location's drag unit, or the document
// root. The second return is the container's ancestor record.
func ContainerAt(loc doc.Loc) (doc.Ancestor, bool) {
	unit, ok := UnitAt(loc)
	if !ok {
		// No unit below; the root itself is the container.
		if loc.Depth() >= 0 && loc.At(0).Node.Kind == doc.KindDocument {
			return loc.At(0), true
		}
		return doc.Ancestor{}, false
	}

	for depth := loc.Depth(); depth >= 0; depth-- {
		a := loc.At(depth)
		if a.Node == unit.Node {
			// The parent level is the unit's container.
			return loc.At(depth - 1), true
		}
	}
	return doc.Ancestor{}, false
}

// ColumnOf returns the column wrapper containing the location's drag
// unit and its parent column set, when the unit sits inside one. Used
// by the mutation engine to clean up a column emptied by extracting
// its last block.
func ColumnOf(loc doc.Loc) (col, set doc.Ancestor, ok bool) {
	for depth := loc.Depth(); depth >= 1; depth-- {
		a := loc.At(depth)
		if a.Node.Kind == doc.KindColumn {
			parent := loc.At(depth - 1)
			if parent.Node.Kind != doc.KindColumnSet {
				return doc.Ancestor{}, doc.Ancestor{}, false
			}
			return a, parent, true
		}
	}
	return doc.Ancestor{}, doc.Ancestor{}, false
}

// BlocksBetween returns the positions of every sibling block between
// a and b inclusive, in document order, within their shared container.
// When the two positions resolve into different containers only b is
// returned, matching the host's behavior of treating a cross-container
// range as a plain click.
func BlocksBetween(s doc.Surface, a, b doc.Pos) []doc.Pos {
	locA, okA := s.ResolvePos(a)
	locB, okB := s.ResolvePos(b)
	if !okA || !okB {
		return nil
	}
	unitA, okA := UnitAt(locA)
	unitB, okB := UnitAt(locB)
	if !okA || !okB {
		return nil
	}
	contA, okA := ContainerAt(locA)
	contB, okB := ContainerAt(locB)
	if !okA || !okB || contA.Node != contB.Node {
		return []doc.Pos{unitB.Pos}
	}

	lo, hi := unitA.Pos, unitB.Pos
	if lo > hi {
		lo, hi = hi, lo
	}

	var out []doc.Pos
	pos := contA.ContentStart()
	for _, child := range contA.Node.Children {
		if pos >= lo && pos <= hi {
			out = append(out, pos)
		}
		pos += doc.Pos(child.Size())
	}
	return out
}
