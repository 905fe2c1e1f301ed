package selection

import (
	"testing"

	"github.com/dshills/blockdrag/internal/doc"
)

// fiveBlocks lays out five paragraphs of one rune each:
// positions 0, 3, 6, 9, 12.
func fiveBlocks() *doc.Mem {
	root := doc.NewDocument(
		doc.NewParagraph("a"),
		doc.NewParagraph("b"),
		doc.NewParagraph("c"),
		doc.NewParagraph("d"),
		doc.NewParagraph("e"),
	)
	return doc.NewMem(root, doc.DefaultLayout())
}

func positionsEqual(t *testing.T, got, want []doc.Pos) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("positions = %v, want %v", got, want)
		}
	}
}

func TestToggle(t *testing.T) {
	m := NewManager(fiveBlocks())

	m.Toggle(6)
	m.Toggle(0)
	positionsEqual(t, m.Positions(), []doc.Pos{0, 6})
	if m.Anchor() != 0 {
		t.Errorf("anchor = %d, want 0", m.Anchor())
	}

	// Toggle again removes.
	m.Toggle(6)
	positionsEqual(t, m.Positions(), []doc.Pos{0})
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestRangeSelect(t *testing.T) {
	m := NewManager(fiveBlocks())

	m.Toggle(3)  // anchor at 3
	m.Range(12)  // select 3..12
	positionsEqual(t, m.Positions(), []doc.Pos{3, 6, 9, 12})
}

func TestRangeDeselect(t *testing.T) {
	m := NewManager(fiveBlocks())

	m.Toggle(0)
	m.Range(12) // select everything
	positionsEqual(t, m.Positions(), []doc.Pos{0, 3, 6, 9, 12})

	// Anchor is still 0; range-click on a selected block deselects
	// the span 0..6.
	m.Range(6)
	positionsEqual(t, m.Positions(), []doc.Pos{9, 12})
}

func TestRangeWithoutAnchor(t *testing.T) {
	m := NewManager(fiveBlocks())

	m.Range(6)
	positionsEqual(t, m.Positions(), []doc.Pos{6})
	if m.Anchor() != 6 {
		t.Errorf("anchor = %d, want 6", m.Anchor())
	}
}

func TestClear(t *testing.T) {
	m := NewManager(fiveBlocks())

	m.Toggle(0)
	m.Toggle(6)
	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", m.Count())
	}
	if m.Anchor() != doc.None {
		t.Error("anchor survived Clear")
	}
}

func TestRevalidateDropsDeleted(t *testing.T) {
	surface := fiveBlocks()
	m := NewManager(surface)

	// Select blocks b, c, d at 3, 6, 9.
	m.Toggle(3)
	m.Toggle(6)
	m.Toggle(9)

	// Delete block c (positions [6,9); later blocks shift down by 3).
	mapping, err := surface.Apply(doc.NewTx(doc.DeleteNode{At: 6}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	m.Revalidate(mapping)

	positionsEqual(t, m.Positions(), []doc.Pos{3, 6})
	if got := m.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestRevalidateClearsDroppedAnchor(t *testing.T) {
	surface := fiveBlocks()
	m := NewManager(surface)

	m.Toggle(3)
	m.Toggle(6) // anchor at 6

	mapping, err := surface.Apply(doc.NewTx(doc.DeleteNode{At: 6}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	m.Revalidate(mapping)

	if m.Anchor() != doc.None {
		t.Errorf("anchor = %d, want cleared", m.Anchor())
	}
	positionsEqual(t, m.Positions(), []doc.Pos{3})
}

func TestRevalidateKeepsSurvivingAnchor(t *testing.T) {
	surface := fiveBlocks()
	m := NewManager(surface)

	m.Toggle(6)
	m.Toggle(12) // anchor at 12

	mapping, err := surface.Apply(doc.NewTx(doc.DeleteNode{At: 0}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	m.Revalidate(mapping)

	positionsEqual(t, m.Positions(), []doc.Pos{3, 9})
	if m.Anchor() != 9 {
		t.Errorf("anchor = %d, want 9", m.Anchor())
	}
}

func TestRevalidatePersistsAcrossMultipleEdits(t *testing.T) {
	surface := fiveBlocks()
	m := NewManager(surface)

	m.Toggle(3)
	m.Toggle(9)

	mapping, err := surface.Apply(doc.NewTx(doc.DeleteNode{At: 0}))
	if err != nil {
		t.Fatal(err)
	}
	m.Revalidate(mapping)
	positionsEqual(t, m.Positions(), []doc.Pos{0, 6})

	mapping, err = surface.Apply(doc.NewTx(doc.DeleteNode{At: 6}))
	if err != nil {
		t.Fatal(err)
	}
	m.Revalidate(mapping)
	positionsEqual(t, m.Positions(), []doc.Pos{0})
}
