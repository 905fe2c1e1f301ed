// Package doc defines the document-model boundary the block overlay
// operates against: node kinds, flat logical positions, the Surface
// interface consumed from the host document engine, and atomic edit
// transactions with position mapping.
//
// The overlay never owns the document. It resolves positions, reads
// rendered geometry, and submits transactions; the host applies them
// all-or-nothing. An in-memory Surface implementation lives in
// memdoc.go for tests and the demo harness.
package doc

import "unicode/utf8"

// Kind identifies the structural type of a node.
type Kind uint8

const (
	// KindParagraph is an ordinary text block.
	KindParagraph Kind = iota

	// KindHeading is a heading block.
	KindHeading

	// KindListItem is a list item block.
	KindListItem

	// KindTable is a table block. Tables are atomic drag units: the
	// resolver returns them immediately without walking further out.
	KindTable

	// KindColumnSet holds 2..4 side-by-side columns.
	KindColumnSet

	// KindColumn is one column of a column set. Columns are structural
	// wrappers: traversable, never draggable themselves.
	KindColumn

	// KindSection is a named grouping of blocks. Sections are
	// structural wrappers like columns.
	KindSection

	// KindDocument is the document root. It never appears below the
	// top of an ancestor chain.
	KindDocument
)

// String returns the node kind name.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindTable:
		return "table"
	case KindColumnSet:
		return "column-set"
	case KindColumn:
		return "column"
	case KindSection:
		return "section"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// IsWrapper returns true for structural wrappers: containers that are
// traversable but never drag units.
func (k Kind) IsWrapper() bool {
	return k == KindColumn || k == KindSection
}

// IsAtomic returns true for kinds that are always a drag unit,
// regardless of nesting depth.
func (k Kind) IsAtomic() bool {
	return k == KindTable
}

// IsContainer returns true for kinds whose content is child nodes
// rather than text.
func (k Kind) IsContainer() bool {
	return k == KindColumnSet || k == KindColumn || k == KindSection || k == KindDocument
}

// NewDocument creates a document root holding the given blocks.
func NewDocument(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: children}
}

// Node is a structural document node. Leaf kinds carry Text; container
// kinds carry Children. Column sets additionally carry Widths, one
// fraction per column, summing to 1.0.
type Node struct {
	// Kind is the structural type.
	Kind Kind

	// Text is the content of leaf nodes.
	Text string

	// Children are the content of container nodes.
	Children []*Node

	// Widths are the column width fractions of a column set.
	Widths []float64
}

// NewParagraph creates a paragraph node.
func NewParagraph(text string) *Node {
	return &Node{Kind: KindParagraph, Text: text}
}

// NewHeading creates a heading node.
func NewHeading(text string) *Node {
	return &Node{Kind: KindHeading, Text: text}
}

// NewListItem creates a list item node.
func NewListItem(text string) *Node {
	return &Node{Kind: KindListItem, Text: text}
}

// NewTable creates a table node.
func NewTable(text string) *Node {
	return &Node{Kind: KindTable, Text: text}
}

// NewSection creates a section wrapper around the given blocks.
func NewSection(children ...*Node) *Node {
	return &Node{Kind: KindSection, Children: children}
}

// NewColumn creates a column wrapper around the given blocks.
func NewColumn(children ...*Node) *Node {
	return &Node{Kind: KindColumn, Children: children}
}

// NewColumnSet creates a column set with the given width fractions.
// Nil widths means equal shares, with the last column absorbing the
// rounding remainder so the widths sum to exactly 1.0.
func NewColumnSet(widths []float64, columns ...*Node) *Node {
	if widths == nil {
		widths = EqualWidths(len(columns))
	}
	return &Node{
		Kind:     KindColumnSet,
		Children: columns,
		Widths:   widths,
	}
}

// EqualWidths returns n column width fractions: an equal share each,
// except the last, which absorbs the rounding remainder.
func EqualWidths(n int) []float64 {
	if n <= 0 {
		return nil
	}
	widths := make([]float64, n)
	share := float64(int(10000.0/float64(n))) / 10000.0
	for i := 0; i < n-1; i++ {
		widths[i] = share
	}
	widths[n-1] = 1.0 - share*float64(n-1)
	return widths
}

// Size returns the node's extent in logical positions: an open token,
// the content, and a close token. Leaf content counts runes; container
// content sums child sizes.
func (n *Node) Size() int {
	if n.Kind.IsContainer() {
		size := 2
		for _, c := range n.Children {
			size += c.Size()
		}
		return size
	}
	return 2 + utf8.RuneCountInString(n.Text)
}

// ContentSize returns the extent of the node's content, excluding the
// open and close tokens.
func (n *Node) ContentSize() int {
	return n.Size() - 2
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// IsEmpty returns true for a container with no children or a leaf
// with no text.
func (n *Node) IsEmpty() bool {
	if n.Kind.IsContainer() {
		return len(n.Children) == 0
	}
	return n.Text == ""
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Text: n.Text}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	if n.Widths != nil {
		c.Widths = append([]float64(nil), n.Widths...)
	}
	return c
}
