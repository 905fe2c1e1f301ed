// Package mutate turns a released drag into document edits: a plain
// vertical move, a wrap of two blocks into a new column set, or an
// indexed column insertion into an existing set. The primary edit is
// one atomic transaction; the follow-up cleanup of an emptied source
// column is a second transaction whose failure never disturbs the
// primary edit.
package mutate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/dragctl"
	"github.com/dshills/blockdrag/internal/resolve"
	"github.com/dshills/blockdrag/internal/state"
)

// Engine applies drop edits against a surface.
type Engine struct {
	surface    doc.Surface
	maxColumns int
	log        *zap.Logger
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(surface doc.Surface, maxColumns int, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{surface: surface, maxColumns: maxColumns, log: log}
}

// Result reports a committed drop.
type Result struct {
	// Applied reports whether any edit was made. A drop over the
	// source's own position, or against a full column set, applies
	// nothing and is not an error.
	Applied bool

	// Landing is the moved block's position in the post-edit document.
	Landing doc.Pos

	// Vertical reports a plain move, the case that runs the drop
	// animation.
	Vertical bool

	// Mapping maps pre-drop positions to the final document, covering
	// the primary edit and any cleanup.
	Mapping doc.Mapping
}

// Commit applies the edit a drop describes. A drop with no target
// applies nothing. An unresolvable source or target abandons the whole
// move with no mutation.
func (e *Engine) Commit(drop dragctl.Drop) (Result, error) {
	src := e.surface.NodeAt(drop.SourcePos)
	if src == nil {
		return Result{}, fmt.Errorf("commit drop: source at %d: %w", drop.SourcePos, doc.ErrNodeNotFound)
	}

	colPos, setPos, inColumn := e.sourceColumn(drop.SourcePos)

	var res Result
	var err error
	switch {
	case drop.Horizontal != nil:
		res, err = e.commitHorizontal(drop, src)
	case drop.HasGap:
		res, err = e.commitVertical(drop, src)
	default:
		return Result{}, nil
	}
	if err != nil || !res.Applied {
		return res, err
	}

	if inColumn {
		res = e.cleanupSourceColumn(res, colPos, setPos)
	}
	return res, nil
}

// commitHorizontal dispatches between wrapping a plain block and
// inserting into an existing set.
func (e *Engine) commitHorizontal(drop dragctl.Drop, src *doc.Node) (Result, error) {
	h := drop.Horizontal
	target := e.surface.NodeAt(h.TargetPos)
	if target == nil {
		return Result{}, fmt.Errorf("commit drop: target at %d: %w", h.TargetPos, doc.ErrNodeNotFound)
	}
	if target.Kind == doc.KindColumnSet {
		return e.insertColumn(drop, target, src)
	}
	return e.wrapColumns(drop, target, src)
}

// wrapColumns replaces an ordinary target block with a two-column set
// holding the source and the target, ordered per the recorded side.
func (e *Engine) wrapColumns(drop dragctl.Drop, target, src *doc.Node) (Result, error) {
	h := drop.Horizontal
	srcSize := doc.Pos(src.Size())

	var set *doc.Node
	if h.Side == state.SideLeft {
		set = doc.NewColumnSet(doc.EqualWidths(2), doc.NewColumn(src.Clone()), doc.NewColumn(target.Clone()))
	} else {
		set = doc.NewColumnSet(doc.EqualWidths(2), doc.NewColumn(target.Clone()), doc.NewColumn(src.Clone()))
	}

	// The source deletion runs first; a target past the source shifts
	// down by the deleted extent.
	tpos := h.TargetPos
	if tpos > drop.SourcePos {
		tpos -= srcSize
	}
	tx := doc.NewTx(
		doc.DeleteNode{At: drop.SourcePos},
		doc.ReplaceNode{At: tpos, Node: set},
	)
	tx.Cursor = tpos

	mapping, err := e.surface.Apply(tx)
	if err != nil {
		return Result{}, fmt.Errorf("wrap into columns: %w", err)
	}
	return Result{Applied: true, Landing: tpos, Mapping: mapping}, nil
}

// insertColumn inserts the source as a new column at the recorded
// index, then rebalances widths. A set at capacity applies nothing.
func (e *Engine) insertColumn(drop dragctl.Drop, set *doc.Node, src *doc.Node) (Result, error) {
	h := drop.Horizontal
	count := set.ChildCount()
	if count >= e.maxColumns {
		e.log.Debug("column insert skipped, set at capacity",
			zap.Int("columns", count), zap.Int("cap", e.maxColumns))
		return Result{}, nil
	}

	idx := h.ColumnIndex
	if idx < 0 {
		if h.Side == state.SideLeft {
			idx = 0
		} else {
			idx = count
		}
	}
	if idx > count {
		idx = count
	}

	srcSize := doc.Pos(src.Size())
	setPos := h.TargetPos
	if setPos > drop.SourcePos {
		setPos -= srcSize
	}
	insertAt := setPos + 1
	for i := 0; i < idx; i++ {
		insertAt += doc.Pos(set.Children[i].Size())
	}

	tx := doc.NewTx(
		doc.DeleteNode{At: drop.SourcePos},
		doc.InsertNode{At: insertAt, Node: doc.NewColumn(src.Clone())},
		doc.SetWidths{At: setPos, Widths: doc.EqualWidths(count + 1)},
	)
	tx.Cursor = insertAt + 1

	mapping, err := e.surface.Apply(tx)
	if err != nil {
		return Result{}, fmt.Errorf("insert column: %w", err)
	}
	return Result{Applied: true, Landing: insertAt + 1, Mapping: mapping}, nil
}

// commitVertical moves the source to the gap boundary. A gap touching
// the source's own extent is a no-op rather than an error.
func (e *Engine) commitVertical(drop dragctl.Drop, src *doc.Node) (Result, error) {
	srcSize := doc.Pos(src.Size())
	g := drop.GapPos
	if g >= drop.SourcePos && g <= drop.SourcePos+srcSize {
		return Result{}, nil
	}

	adj := g
	if g > drop.SourcePos {
		adj -= srcSize
	}
	tx := doc.NewTx(
		doc.DeleteNode{At: drop.SourcePos},
		doc.InsertNode{At: adj, Node: src.Clone()},
	)
	tx.Cursor = adj

	mapping, err := e.surface.Apply(tx)
	if err != nil {
		return Result{}, fmt.Errorf("move block: %w", err)
	}
	return Result{Applied: true, Landing: adj, Vertical: true, Mapping: mapping}, nil
}

// sourceColumn records, before any edit, the column and column set
// enclosing the source position.
func (e *Engine) sourceColumn(pos doc.Pos) (colPos, setPos doc.Pos, ok bool) {
	loc, found := e.surface.ResolvePos(pos)
	if !found {
		return doc.None, doc.None, false
	}
	col, set, found := resolve.ColumnOf(loc)
	if !found {
		return doc.None, doc.None, false
	}
	return col.Start, set.Start, true
}

// cleanupSourceColumn removes a source column emptied by the primary
// edit: the column alone when at least two non-empty columns remain,
// otherwise the whole set unwraps into its parent. Any failure here
// leaves the primary edit intact.
func (e *Engine) cleanupSourceColumn(res Result, colPos, setPos doc.Pos) Result {
	newColPos, ok := res.Mapping.Map(colPos)
	if !ok {
		return res
	}
	newSetPos, ok := res.Mapping.Map(setPos)
	if !ok {
		return res
	}
	col := e.surface.NodeAt(newColPos)
	set := e.surface.NodeAt(newSetPos)
	if col == nil || col.Kind != doc.KindColumn || col.ChildCount() > 0 {
		return res
	}
	if set == nil || set.Kind != doc.KindColumnSet {
		e.log.Debug("column cleanup skipped, set not found", zap.Int("pos", int(newSetPos)))
		return res
	}

	nonEmpty := 0
	for _, c := range set.Children {
		if c != col && c.ChildCount() > 0 {
			nonEmpty++
		}
	}

	var tx doc.Tx
	if nonEmpty >= 2 {
		tx = doc.NewTx(
			doc.DeleteNode{At: newColPos},
			doc.SetWidths{At: newSetPos, Widths: doc.EqualWidths(set.ChildCount() - 1)},
		)
	} else {
		// Unwrap the whole set, hoisting the surviving blocks in
		// order. An entirely empty set leaves one empty paragraph.
		var blocks []*doc.Node
		for _, c := range set.Children {
			for _, b := range c.Children {
				blocks = append(blocks, b.Clone())
			}
		}
		if len(blocks) == 0 {
			blocks = append(blocks, doc.NewParagraph(""))
		}
		steps := []doc.Step{doc.DeleteNode{At: newSetPos}}
		at := newSetPos
		for _, b := range blocks {
			steps = append(steps, doc.InsertNode{At: at, Node: b})
			at += doc.Pos(b.Size())
		}
		tx = doc.NewTx(steps...)
	}

	cleanup, err := e.surface.Apply(tx)
	if err != nil {
		e.log.Debug("column cleanup abandoned", zap.Error(err))
		return res
	}
	res.Mapping = res.Mapping.Concat(cleanup)
	if landed, ok := cleanup.Map(res.Landing); ok {
		res.Landing = landed
	}
	return res
}
