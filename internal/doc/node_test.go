package doc

import (
	"math"
	"testing"
)

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		kind      Kind
		wrapper   bool
		atomic    bool
		container bool
	}{
		{KindParagraph, false, false, false},
		{KindHeading, false, false, false},
		{KindListItem, false, false, false},
		{KindTable, false, true, false},
		{KindColumnSet, false, false, true},
		{KindColumn, true, false, true},
		{KindSection, true, false, true},
		{KindDocument, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsWrapper(); got != tt.wrapper {
				t.Errorf("IsWrapper() = %v, want %v", got, tt.wrapper)
			}
			if got := tt.kind.IsAtomic(); got != tt.atomic {
				t.Errorf("IsAtomic() = %v, want %v", got, tt.atomic)
			}
			if got := tt.kind.IsContainer(); got != tt.container {
				t.Errorf("IsContainer() = %v, want %v", got, tt.container)
			}
		})
	}
}

func TestNodeSize(t *testing.T) {
	para := NewParagraph("hello") // 2 + 5
	if got := para.Size(); got != 7 {
		t.Errorf("paragraph Size() = %d, want 7", got)
	}

	empty := NewParagraph("")
	if got := empty.Size(); got != 2 {
		t.Errorf("empty paragraph Size() = %d, want 2", got)
	}

	col := NewColumn(para) // 2 + 7
	if got := col.Size(); got != 9 {
		t.Errorf("column Size() = %d, want 9", got)
	}

	set := NewColumnSet(nil, col, NewColumn(empty)) // 2 + 9 + 4
	if got := set.Size(); got != 15 {
		t.Errorf("column set Size() = %d, want 15", got)
	}

	if got := set.ContentSize(); got != 13 {
		t.Errorf("column set ContentSize() = %d, want 13", got)
	}
}

func TestEqualWidths(t *testing.T) {
	for n := 1; n <= 4; n++ {
		widths := EqualWidths(n)
		if len(widths) != n {
			t.Fatalf("EqualWidths(%d) returned %d widths", n, len(widths))
		}
		sum := 0.0
		for _, w := range widths {
			sum += w
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("EqualWidths(%d) sums to %v, want 1.0", n, sum)
		}
	}

	if EqualWidths(0) != nil {
		t.Error("EqualWidths(0) != nil")
	}

	// Three columns: the last absorbs the rounding remainder.
	widths := EqualWidths(3)
	if widths[0] != widths[1] {
		t.Errorf("first two widths differ: %v vs %v", widths[0], widths[1])
	}
	if widths[2] <= widths[0] {
		t.Errorf("last width %v does not absorb the remainder over %v", widths[2], widths[0])
	}
}

func TestNewColumnSetWidths(t *testing.T) {
	defaulted := NewColumnSet(nil,
		NewColumn(NewParagraph("a")),
		NewColumn(NewParagraph("b")),
		NewColumn(NewParagraph("c")),
	)
	want := EqualWidths(3)
	if len(defaulted.Widths) != 3 {
		t.Fatalf("nil widths produced %d fractions, want 3", len(defaulted.Widths))
	}
	for i, w := range defaulted.Widths {
		if w != want[i] {
			t.Errorf("Widths[%d] = %v, want %v", i, w, want[i])
		}
	}

	explicit := NewColumnSet([]float64{0.7, 0.3},
		NewColumn(NewParagraph("a")),
		NewColumn(NewParagraph("b")),
	)
	if explicit.Widths[0] != 0.7 || explicit.Widths[1] != 0.3 {
		t.Errorf("explicit widths = %v, want [0.7 0.3]", explicit.Widths)
	}
}

func TestNodeClone(t *testing.T) {
	set := NewColumnSet(nil,
		NewColumn(NewParagraph("a")),
		NewColumn(NewParagraph("b")),
	)

	clone := set.Clone()
	if clone == set {
		t.Fatal("Clone returned the same pointer")
	}
	clone.Children[0].Children[0].Text = "changed"
	if set.Children[0].Children[0].Text != "a" {
		t.Error("mutating the clone changed the original")
	}
	clone.Widths[0] = 0.9
	if set.Widths[0] == 0.9 {
		t.Error("mutating cloned widths changed the original")
	}
}

func TestNodeIsEmpty(t *testing.T) {
	if !NewParagraph("").IsEmpty() {
		t.Error("empty paragraph not reported empty")
	}
	if NewParagraph("x").IsEmpty() {
		t.Error("non-empty paragraph reported empty")
	}
	if !NewColumn().IsEmpty() {
		t.Error("empty column not reported empty")
	}
	if NewColumn(NewParagraph("")).IsEmpty() {
		t.Error("column with a child reported empty")
	}
}
