// Package main is a terminal playground for the block overlay. It
// renders an in-memory document as rows of cells, feeds mouse and key
// events through an attached handle, and draws whatever the indicator
// state says. Hold the left button on a block to pick it up; drop it
// on a gap to reorder, or on another block's edge to build columns.
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockdrag"
	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/input/key"
	"github.com/dshills/blockdrag/internal/input/pointer"
	"github.com/dshills/blockdrag/internal/state"
)

func main() {
	os.Exit(run())
}

func run() int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	d := newDemo(screen)
	d.run()
	return 0
}

// cellLayout sizes the document in terminal cells: one line per text
// row, one blank row between blocks.
func cellLayout() doc.Layout {
	return doc.Layout{
		ContentLeft:  4,
		ContentWidth: 52,
		OriginY:      2,
		LineHeight:   1,
		RunesPerLine: 52,
		BlockGap:     1,
	}
}

type demo struct {
	screen  tcell.Screen
	surface *doc.Mem
	ctrl    *blockdrag.Controller
	handle  *blockdrag.Handle

	mu        sync.Mutex
	indicator state.Indicator
	selected  []doc.Pos

	// buttonDown tracks the previous mouse state so tcell's button
	// mask turns into down/move/up events.
	buttonDown bool
}

func newDemo(screen tcell.Screen) *demo {
	surface := doc.NewMem(doc.NewDocument(
		doc.NewHeading("Block overlay demo"),
		doc.NewParagraph("Hold the left button on a block to pick it up."),
		doc.NewParagraph("Drop on a gap to reorder it."),
		doc.NewParagraph("Drop on a block edge to build columns."),
		doc.NewParagraph("Ctrl-click selects blocks. Escape cancels."),
	), cellLayout())

	d := &demo{screen: screen, surface: surface}
	d.ctrl = blockdrag.NewController(surface)
	d.ctrl.SubscribeIndicator(func(ind state.Indicator) {
		d.mu.Lock()
		d.indicator = ind
		d.mu.Unlock()
	})
	d.ctrl.SubscribeSelection(func(ps []doc.Pos) {
		d.mu.Lock()
		d.selected = ps
		d.mu.Unlock()
	})
	d.handle = d.ctrl.Attach()
	return d
}

func (d *demo) run() {
	defer d.handle.Close()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !d.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			d.handle.Tick(now)
			d.draw()
		}
	}
}

func (d *demo) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		code := key.CodeOther
		if ev.Key() == tcell.KeyEscape {
			code = key.CodeEscape
		}
		d.handle.Key(key.Event{Code: code, Modifiers: modifiers(ev.Modifiers())})
	case *tcell.EventMouse:
		d.mouse(ev)
	}
	return true
}

func (d *demo) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	pe := pointer.Event{
		Position:  pointer.Position{X: float64(x), Y: float64(y)},
		Button:    pointer.ButtonPrimary,
		Modifiers: modifiers(ev.Modifiers()),
		Timestamp: time.Now(),
	}
	switch {
	case pressed && !d.buttonDown:
		pe.Action = pointer.ActionDown
	case !pressed && d.buttonDown:
		pe.Action = pointer.ActionUp
	default:
		pe.Action = pointer.ActionMove
		pe.Button = pointer.ButtonNone
	}
	d.buttonDown = pressed
	d.handle.Pointer(pe)
}

func modifiers(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModCtrl != 0 {
		out |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= key.ModAlt
	}
	if m&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if m&tcell.ModMeta != 0 {
		out |= key.ModMeta
	}
	return out
}

func (d *demo) draw() {
	d.mu.Lock()
	ind := d.indicator
	selected := append([]doc.Pos(nil), d.selected...)
	d.mu.Unlock()

	s := d.screen
	s.Clear()

	d.drawBlocks(d.surface.Root(), doc.Pos(-1), selected)

	style := tcell.StyleDefault.Foreground(tcell.ColorAqua)
	if ind.Visible && !ind.IsDragging {
		// Hover bar along the block's left edge.
		for y := int(ind.Top); y < int(ind.Top+ind.Height); y++ {
			s.SetContent(int(ind.BlockLeft)-2, y, '▎', nil, style)
		}
	}
	if ind.IsDragging {
		if ind.Horizontal != nil {
			r := ind.Horizontal.Rect
			for y := int(r.Top); y < int(r.Top+r.Height); y++ {
				s.SetContent(int(r.Left), y, '│', nil, style.Bold(true))
			}
		} else {
			for x := int(ind.BlockLeft); x < int(ind.BlockLeft+ind.BlockWidth); x++ {
				s.SetContent(x, int(ind.DropIndicatorTop), '─', nil, style.Bold(true))
			}
		}
	}
	if ind.IsAnimating {
		for x := int(ind.BlockLeft); x < int(ind.BlockLeft+ind.BlockWidth); x++ {
			s.SetContent(x, int(ind.Top), '═', nil, style)
		}
	}

	s.Show()
}

// drawBlocks walks the tree, painting each leaf's text at its rect.
func (d *demo) drawBlocks(n *doc.Node, start doc.Pos, selected []doc.Pos) {
	childStart := start + 1
	for _, child := range n.Children {
		if child.Kind.IsContainer() {
			d.drawBlocks(child, childStart, selected)
		} else {
			d.drawLeaf(child, childStart, selected)
		}
		childStart += doc.Pos(child.Size())
	}
}

func (d *demo) drawLeaf(n *doc.Node, pos doc.Pos, selected []doc.Pos) {
	rect, ok := d.surface.RectOf(pos)
	if !ok {
		return
	}
	style := tcell.StyleDefault
	if n.Kind == doc.KindHeading {
		style = style.Bold(true)
	}
	for _, sel := range selected {
		if sel == pos {
			style = style.Reverse(true)
		}
	}
	if d.ctrl.FadePos() == pos {
		style = style.Dim(true)
	}

	x, y := int(rect.Left), int(rect.Top)
	maxX := int(rect.Left + rect.Width)
	for _, r := range n.Text {
		if x >= maxX {
			x = int(rect.Left)
			y++
		}
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

