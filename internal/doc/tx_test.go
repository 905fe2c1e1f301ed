package doc

import (
	"errors"
	"testing"
)

func memForTest() *Mem {
	return NewMem(testDoc(), DefaultLayout())
}

func TestApplyDeleteNode(t *testing.T) {
	m := memForTest()

	mapping, err := m.Apply(NewTx(DeleteNode{At: 7}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	root := m.Root()
	if root.ChildCount() != 3 {
		t.Fatalf("child count = %d, want 3", root.ChildCount())
	}
	if root.Children[1].Kind != KindColumnSet {
		t.Errorf("child 1 = %s, want column-set", root.Children[1].Kind)
	}

	// The heading occupied [7,13): positions after it shift down by 6.
	if p, ok := mapping.Map(13); !ok || p != 7 {
		t.Errorf("Map(13) = %d, %v; want 7, true", p, ok)
	}
	if p, ok := mapping.Map(0); !ok || p != 0 {
		t.Errorf("Map(0) = %d, %v; want 0, true", p, ok)
	}
	if _, ok := mapping.Map(9); ok {
		t.Error("Map(9) inside the deleted heading succeeded")
	}
}

func TestApplyInsertNode(t *testing.T) {
	m := memForTest()

	mapping, err := m.Apply(NewTx(InsertNode{At: 7, Node: NewParagraph("new")}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	root := m.Root()
	if root.ChildCount() != 5 {
		t.Fatalf("child count = %d, want 5", root.ChildCount())
	}
	if root.Children[1].Text != "new" {
		t.Errorf("child 1 text = %q, want \"new\"", root.Children[1].Text)
	}

	// "new" occupies 5 positions; everything at or after 7 moves up.
	if p, ok := mapping.Map(7); !ok || p != 12 {
		t.Errorf("Map(7) = %d, %v; want 12, true", p, ok)
	}
	if p, ok := mapping.Map(33); !ok || p != 38 {
		t.Errorf("Map(33) = %d, %v; want 38, true", p, ok)
	}
}

func TestApplyInsertAtContentEnd(t *testing.T) {
	m := memForTest()

	end := Pos(m.Root().ContentSize())
	if _, err := m.Apply(NewTx(InsertNode{At: end, Node: NewParagraph("tail")})); err != nil {
		t.Fatalf("Apply at content end: %v", err)
	}
	root := m.Root()
	if root.Children[root.ChildCount()-1].Text != "tail" {
		t.Error("appended block is not last")
	}
}

func TestApplyReplaceNode(t *testing.T) {
	m := memForTest()

	set := NewColumnSet(nil,
		NewColumn(NewParagraph("left")),
		NewColumn(NewParagraph("beta")),
	)
	mapping, err := m.Apply(NewTx(ReplaceNode{At: 7, Node: set}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	root := m.Root()
	if root.Children[1].Kind != KindColumnSet {
		t.Fatalf("child 1 = %s, want column-set", root.Children[1].Kind)
	}

	// The replacement start survives the mapping.
	if p, ok := mapping.Map(7); !ok || p != 7 {
		t.Errorf("Map(7) = %d, %v; want 7, true", p, ok)
	}
	// Positions after the old heading shift by the size delta.
	delta := Pos(set.Size() - 6)
	if p, ok := mapping.Map(13); !ok || p != 13+delta {
		t.Errorf("Map(13) = %d, %v; want %d, true", p, ok, 13+delta)
	}
}

func TestApplySetWidths(t *testing.T) {
	m := memForTest()

	widths := []float64{0.7, 0.3}
	if _, err := m.Apply(NewTx(SetWidths{At: 13, Widths: widths})); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	set := m.Root().Children[2]
	if set.Widths[0] != 0.7 || set.Widths[1] != 0.3 {
		t.Errorf("widths = %v, want [0.7 0.3]", set.Widths)
	}

	// Wrong node kind.
	_, err := m.Apply(NewTx(SetWidths{At: 0, Widths: []float64{1.0}}))
	if !errors.Is(err, ErrNotColumnSet) {
		t.Errorf("SetWidths on paragraph error = %v, want ErrNotColumnSet", err)
	}

	// Width count mismatch.
	_, err = m.Apply(NewTx(SetWidths{At: 13, Widths: []float64{1.0}}))
	if err == nil {
		t.Error("SetWidths with wrong count succeeded")
	}
}

func TestApplyAtomicity(t *testing.T) {
	m := memForTest()

	// Second step fails; the first must not be visible afterwards.
	_, err := m.Apply(NewTx(
		DeleteNode{At: 0},
		DeleteNode{At: 999},
	))
	if err == nil {
		t.Fatal("Apply with invalid step succeeded")
	}
	if m.Root().ChildCount() != 4 {
		t.Errorf("failed transaction mutated the document: %d children", m.Root().ChildCount())
	}
	if m.Root().Children[0].Text != "alpha" {
		t.Error("failed transaction deleted a node")
	}
}

func TestApplyEmptyTransaction(t *testing.T) {
	m := memForTest()
	if _, err := m.Apply(NewTx()); !errors.Is(err, ErrEmptyTransaction) {
		t.Errorf("Apply(empty) error = %v, want ErrEmptyTransaction", err)
	}
}

func TestApplyMultiStepSequencing(t *testing.T) {
	m := memForTest()

	// Move "alpha" after "beta" by hand: delete at 0, then insert at
	// the heading's post-delete end (13 - 7 = 6... the heading now
	// spans [0,6), so the boundary after it is 6).
	alpha := m.Root().Children[0].Clone()
	mapping, err := m.Apply(NewTx(
		DeleteNode{At: 0},
		InsertNode{At: 6, Node: alpha},
	))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	root := m.Root()
	if root.Children[0].Kind != KindHeading || root.Children[1].Text != "alpha" {
		t.Errorf("order after move = %s, %q", root.Children[0].Kind, root.Children[1].Text)
	}

	// The heading started at 7 and now starts at 0.
	if p, ok := mapping.Map(7); !ok || p != 0 {
		t.Errorf("Map(7) = %d, %v; want 0, true", p, ok)
	}
}

func TestApplyCursor(t *testing.T) {
	m := memForTest()

	tx := NewTx(DeleteNode{At: 0})
	tx.Cursor = 1
	if _, err := m.Apply(tx); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := m.Cursor(); got != 1 {
		t.Errorf("Cursor() = %d, want 1", got)
	}
}
