// Package blockdrag is a block manipulation overlay for structured
// document editors: hover indication, long-press drag-to-reorder,
// drag-into-columns, and multi-block selection, driven entirely by
// discrete state that a rendering layer subscribes to.
//
// A Controller binds to one document surface. The host attaches a
// binding and feeds it pointer and key events plus a periodic tick;
// the controller resolves geometry against the live surface, mutates
// the document through atomic transactions, and publishes indicator
// and selection state. Rendering and interpolation stay entirely on
// the host's side.
package blockdrag

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/blockdrag/internal/anim"
	"github.com/dshills/blockdrag/internal/config"
	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/dragctl"
	"github.com/dshills/blockdrag/internal/gesture"
	"github.com/dshills/blockdrag/internal/hover"
	"github.com/dshills/blockdrag/internal/input/key"
	"github.com/dshills/blockdrag/internal/input/pointer"
	"github.com/dshills/blockdrag/internal/mutate"
	"github.com/dshills/blockdrag/internal/resolve"
	"github.com/dshills/blockdrag/internal/selection"
	"github.com/dshills/blockdrag/internal/state"
)

// Controller owns the overlay for one document surface. It is
// constructed per editor instance; nothing is shared across documents.
type Controller struct {
	mu sync.Mutex

	surface doc.Surface
	store   *state.Store
	log     *zap.Logger

	detector  *gesture.Detector
	hover     *hover.Tracker
	drag      *dragctl.Controller
	engine    *mutate.Engine
	sequencer *anim.Sequencer
	selection *selection.Manager

	settings config.Settings
	multiMod key.Modifier
	rangeMod key.Modifier
	manager  *config.Manager

	// activeID identifies the one binding whose events are processed.
	activeID  uuid.UUID
	hasActive bool

	// keyboardMode is set while the user is typing; hover updates are
	// ignored until the next pointer press.
	keyboardMode bool
}

// NewController creates a controller over the surface.
func NewController(surface doc.Surface, opts ...Option) *Controller {
	c := &Controller{
		surface:  surface,
		store:    state.NewStore(),
		log:      zap.NewNop(),
		settings: config.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.manager != nil {
		c.settings = c.manager.Settings()
	}

	c.detector = gesture.NewDetector(c.settings.GestureConfig())
	c.hover = hover.NewTracker(surface, c.store)
	c.drag = dragctl.NewController(surface, c.store, c.settings.DropConfig())
	c.engine = mutate.NewEngine(surface, c.settings.Drop.MaxColumns, c.log)
	c.sequencer = anim.NewSequencer(c.store, c.settings.AnimConfig())
	c.selection = selection.NewManager(surface)
	c.multiMod, c.rangeMod, _ = c.settings.Modifiers()

	if c.manager != nil {
		c.manager.OnChange(c.ApplySettings)
	}
	return c
}

// ApplySettings reconfigures the running components. Settings with an
// unparsable modifier binding keep the previous bindings.
func (c *Controller) ApplySettings(s config.Settings) {
	c.mu.Lock()
	c.settings = s
	if multi, rng, err := s.Modifiers(); err == nil {
		c.multiMod, c.rangeMod = multi, rng
	} else {
		c.log.Debug("keeping previous modifier bindings", zap.Error(err))
	}
	c.engine = mutate.NewEngine(c.surface, s.Drop.MaxColumns, c.log)
	c.mu.Unlock()

	c.detector.SetConfig(s.GestureConfig())
	c.drag.SetConfig(s.DropConfig())
	c.sequencer.SetConfig(s.AnimConfig())
}

// Attach creates a new binding and makes it the active one. Earlier
// bindings keep their handles but every event through them becomes a
// no-op; any interaction they had in flight is cancelled.
func (c *Controller) Attach() *Handle {
	c.mu.Lock()
	had := c.hasActive
	c.activeID = uuid.New()
	c.hasActive = true
	id := c.activeID
	c.mu.Unlock()

	if had {
		c.cancelAll()
	}
	return &Handle{id: id, ctrl: c}
}

// Detach invalidates a binding. Detaching the active binding cancels
// any interaction in flight; detaching a stale one does nothing.
func (c *Controller) Detach(h *Handle) {
	if h == nil {
		return
	}
	c.mu.Lock()
	active := c.hasActive && c.activeID == h.id
	if active {
		c.hasActive = false
	}
	c.mu.Unlock()

	if active {
		c.cancelAll()
	}
}

func (c *Controller) isActive(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasActive && c.activeID == id
}

// Enable turns the overlay on or off. Disabling cancels any
// interaction in flight.
func (c *Controller) Enable(on bool) {
	if !on {
		c.cancelAll()
	}
	c.store.SetEnabled(on)
}

// IsEnabled reports whether the overlay is enabled.
func (c *Controller) IsEnabled() bool {
	return c.store.Enabled()
}

// SubscribeIndicator registers a renderer callback for indicator
// changes and returns an unsubscribe func.
func (c *Controller) SubscribeIndicator(fn func(state.Indicator)) func() {
	return c.store.SubscribeIndicator(fn)
}

// SubscribeSelection registers a callback for selection changes.
func (c *Controller) SubscribeSelection(fn func([]doc.Pos)) func() {
	return c.store.SubscribeSelection(fn)
}

// SubscribeEnabled registers a callback for enable state changes.
func (c *Controller) SubscribeEnabled(fn func(bool)) func() {
	return c.store.SubscribeEnabled(fn)
}

// SelectedPositions returns the selected block positions in document
// order.
func (c *Controller) SelectedPositions() []doc.Pos {
	return c.selection.Positions()
}

// SelectionCount returns the number of selected blocks.
func (c *Controller) SelectionCount() int {
	return c.selection.Count()
}

// Indicator returns the current indicator snapshot.
func (c *Controller) Indicator() state.Indicator {
	return c.store.Indicator()
}

// FadePos returns the position of the block a renderer should draw
// faded during a drag, or doc.None when nothing is dragged.
func (c *Controller) FadePos() doc.Pos {
	return c.store.FadePos()
}

// Snapshot returns a consistent copy of all overlay state for a
// renderer that polls instead of subscribing.
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Revalidate drops selected positions invalidated by an external edit
// and remaps the rest, then republishes the selection. The host calls
// this with the mapping of any edit the overlay did not make itself.
func (c *Controller) Revalidate(mapping doc.Mapping) {
	c.selection.Revalidate(mapping)
	c.store.NotifySelection(c.selection.Positions())
}

// cancelAll is the total cancellation path: gesture, drag session,
// animation, fade, and suppression flags all return to baseline in
// one step.
func (c *Controller) cancelAll() {
	c.detector.Cancel()
	c.sequencer.Cancel()
	c.drag.Cancel()
}

// unitAtDisplay resolves the drag unit under a display-space point.
func (c *Controller) unitAtDisplay(x, y float64) (resolve.Unit, bool) {
	zoom := c.surface.ZoomFactor()
	lx, ly := x/zoom, y/zoom
	loc, ok := c.surface.HitTest(lx, ly)
	if !ok {
		loc, ok = c.surface.ResolveAt(lx, ly)
	}
	if !ok {
		return resolve.Unit{}, false
	}
	return resolve.UnitAt(loc)
}

func (c *Controller) pointerDown(ev pointer.Event) {
	if !c.store.Enabled() {
		return
	}
	c.mu.Lock()
	c.keyboardMode = false
	multi, rng := c.multiMod, c.rangeMod
	c.mu.Unlock()

	c.publishCommandHeld(ev.Modifiers.Has(multi))

	if ev.Button != pointer.ButtonPrimary {
		return
	}

	if ev.Modifiers.Has(multi) {
		unit, ok := c.unitAtDisplay(ev.Position.X, ev.Position.Y)
		if !ok {
			return
		}
		if ev.Modifiers.Has(rng) {
			c.selection.Range(unit.Pos)
		} else {
			c.selection.Toggle(unit.Pos)
		}
		c.store.NotifySelection(c.selection.Positions())

		// The clicked block drives the indicator while it stays
		// selected; a deselecting toggle hides it.
		if !c.selection.Contains(unit.Pos) {
			c.hover.Leave()
			return
		}
		if r, ok := c.hover.RectForSelection(unit.Pos); ok {
			c.store.UpdateIndicator(func(ind *state.Indicator) {
				ind.Visible = true
				ind.Top = r.Top
				ind.Height = r.Height
				ind.BlockLeft = r.Left
				ind.BlockWidth = r.Width
			})
		}
		return
	}

	if ev.Modifiers.IsEmpty() {
		// A plain click clears the whole selection.
		if c.selection.Count() > 0 {
			c.selection.Clear()
			c.store.NotifySelection(nil)
		}
		if c.store.Dragging() {
			return
		}
		// Arm only over a draggable block.
		if _, ok := c.unitAtDisplay(ev.Position.X, ev.Position.Y); !ok {
			return
		}
		if c.detector.Down(ev) {
			c.store.SetSuppressSelection(true)
			c.store.UpdateIndicator(func(ind *state.Indicator) {
				ind.IsLongPressing = true
			})
		}
	}
}

func (c *Controller) pointerMove(ev pointer.Event) {
	if !c.store.Enabled() {
		return
	}

	if c.store.Dragging() {
		c.drag.Move(ev.Position.X, ev.Position.Y)
		return
	}

	if c.detector.Move(ev) {
		// The press drifted too far and cancelled.
		c.store.SetSuppressSelection(false)
		c.store.UpdateIndicator(func(ind *state.Indicator) {
			ind.IsLongPressing = false
		})
	}
	if c.detector.Phase() != gesture.PhaseIdle {
		return
	}

	c.mu.Lock()
	typing := c.keyboardMode
	c.mu.Unlock()
	if typing {
		return
	}
	c.hover.Move(ev.Position.X, ev.Position.Y)
}

func (c *Controller) pointerUp(ev pointer.Event) {
	if !c.store.Enabled() {
		return
	}

	if c.store.Dragging() {
		c.detector.Release()
		drop, ok := c.drag.Release()
		if !ok {
			return
		}
		c.commit(drop, ev.Timestamp)
		return
	}

	if c.detector.Arming() {
		c.detector.Up()
		c.store.SetSuppressSelection(false)
		c.store.UpdateIndicator(func(ind *state.Indicator) {
			ind.IsLongPressing = false
		})
	}
}

// commit applies a released drop and, for a plain move, starts the
// landing animation.
func (c *Controller) commit(drop dragctl.Drop, now time.Time) {
	c.mu.Lock()
	engine := c.engine
	c.mu.Unlock()

	res, err := engine.Commit(drop)
	if err != nil {
		c.log.Debug("drop abandoned", zap.Error(err))
		c.store.HideIndicator()
		return
	}
	if !res.Applied {
		c.store.HideIndicator()
		return
	}

	c.selection.Revalidate(res.Mapping)
	c.store.NotifySelection(c.selection.Positions())

	if !res.Vertical {
		c.store.HideIndicator()
		return
	}
	block, ok := c.surface.RectOf(res.Landing)
	if !ok {
		c.store.HideIndicator()
		return
	}
	zoom := c.surface.ZoomFactor()
	line := block
	line.Height = 0
	c.sequencer.Start(now, line.Scale(zoom), block.Scale(zoom))
}

func (c *Controller) keyEvent(ev key.Event) {
	if !c.store.Enabled() {
		return
	}
	c.mu.Lock()
	multi := c.multiMod
	c.mu.Unlock()

	c.publishCommandHeld(ev.Modifiers.Has(multi))

	if ev.IsEscape() {
		c.cancelAll()
		return
	}
	if !ev.IsModifierOnly() {
		c.mu.Lock()
		c.keyboardMode = true
		c.mu.Unlock()
		c.hover.Leave()
	}
}

func (c *Controller) tick(now time.Time) {
	if c.detector.Tick(now) {
		start := c.detector.StartPos()
		unit, ok := c.unitAtDisplay(start.X, start.Y)
		if !ok {
			// The block vanished while the press was armed.
			c.detector.Release()
			c.store.SetSuppressSelection(false)
			c.store.UpdateIndicator(func(ind *state.Indicator) {
				ind.IsLongPressing = false
			})
			return
		}
		if err := c.drag.Begin(unit); err != nil {
			c.log.Debug("drag not started", zap.Error(err))
			c.detector.Release()
		}
	}
	c.sequencer.Tick(now)
}

func (c *Controller) publishCommandHeld(held bool) {
	c.store.UpdateIndicator(func(ind *state.Indicator) {
		ind.CommandHeld = held
	})
}
