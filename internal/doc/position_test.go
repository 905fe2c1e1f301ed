package doc

import "testing"

// testDoc builds the tree used across the doc package tests.
//
//	0  paragraph "alpha"          [0,7)
//	7  heading   "beta"           [7,13)
//	13 column set                 [13,33)
//	14   column                   [14,23)
//	15     paragraph "gamma"      [15,22)
//	23   column                   [23,32)
//	24     paragraph "delta"      [24,31)
//	33 paragraph "omega"          [33,40)
func testDoc() *Node {
	return NewDocument(
		NewParagraph("alpha"),
		NewHeading("beta"),
		NewColumnSet(nil,
			NewColumn(NewParagraph("gamma")),
			NewColumn(NewParagraph("delta")),
		),
		NewParagraph("omega"),
	)
}

func TestResolveTopLevel(t *testing.T) {
	root := testDoc()

	loc, ok := resolveIn(root, 7)
	if !ok {
		t.Fatal("resolve(7) failed")
	}
	if loc.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", loc.Depth())
	}
	deep := loc.Deepest()
	if deep.Node.Kind != KindHeading || deep.Start != 7 || deep.Index != 1 {
		t.Errorf("deepest = %s at %d index %d, want heading at 7 index 1", deep.Node.Kind, deep.Start, deep.Index)
	}
}

func TestResolveNested(t *testing.T) {
	root := testDoc()

	loc, ok := resolveIn(root, 24)
	if !ok {
		t.Fatal("resolve(24) failed")
	}

	kinds := make([]Kind, 0, len(loc.Chain))
	for _, a := range loc.Chain {
		kinds = append(kinds, a.Node.Kind)
	}
	want := []Kind{KindDocument, KindColumnSet, KindColumn, KindParagraph}
	if len(kinds) != len(want) {
		t.Fatalf("chain kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("chain kinds = %v, want %v", kinds, want)
		}
	}

	deep := loc.Deepest()
	if deep.Start != 24 {
		t.Errorf("deepest start = %d, want 24", deep.Start)
	}
}

func TestResolveInsideText(t *testing.T) {
	root := testDoc()

	// Position 3 is inside "alpha"; the chain still ends at the paragraph.
	loc, ok := resolveIn(root, 3)
	if !ok {
		t.Fatal("resolve(3) failed")
	}
	deep := loc.Deepest()
	if deep.Node.Kind != KindParagraph || deep.Start != 0 {
		t.Errorf("deepest = %s at %d, want paragraph at 0", deep.Node.Kind, deep.Start)
	}
}

func TestResolveOutOfRange(t *testing.T) {
	root := testDoc()

	if _, ok := resolveIn(root, -1); ok {
		t.Error("resolve(-1) succeeded")
	}
	if _, ok := resolveIn(root, Pos(root.ContentSize())+1); ok {
		t.Error("resolve past content end succeeded")
	}
	// The content end itself resolves, with only the root in the chain.
	loc, ok := resolveIn(root, Pos(root.ContentSize()))
	if !ok {
		t.Fatal("resolve at content end failed")
	}
	if loc.Depth() != 0 {
		t.Errorf("Depth() at content end = %d, want 0", loc.Depth())
	}
}

func TestNodeStartingAt(t *testing.T) {
	root := testDoc()

	tests := []struct {
		pos  Pos
		kind Kind
		ok   bool
	}{
		{0, KindParagraph, true},
		{7, KindHeading, true},
		{13, KindColumnSet, true},
		{14, KindColumn, true},
		{15, KindParagraph, true},
		{3, 0, false},  // inside text
		{16, 0, false}, // inside nested text
	}

	for _, tt := range tests {
		n := nodeStartingAt(root, tt.pos)
		if tt.ok {
			if n == nil {
				t.Errorf("nodeStartingAt(%d) = nil, want %s", tt.pos, tt.kind)
			} else if n.Kind != tt.kind {
				t.Errorf("nodeStartingAt(%d) = %s, want %s", tt.pos, n.Kind, tt.kind)
			}
		} else if n != nil {
			t.Errorf("nodeStartingAt(%d) = %s, want nil", tt.pos, n.Kind)
		}
	}
}

func TestChildStart(t *testing.T) {
	root := testDoc()

	if got := childStart(root, -1, 2); got != 13 {
		t.Errorf("childStart(root, 2) = %d, want 13", got)
	}
	set := root.Children[2]
	if got := childStart(set, 13, 1); got != 23 {
		t.Errorf("childStart(set, 1) = %d, want 23", got)
	}
}
