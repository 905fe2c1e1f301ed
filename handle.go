package blockdrag

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/blockdrag/internal/input/key"
	"github.com/dshills/blockdrag/internal/input/pointer"
)

// Handle is the capability a binding holds for feeding events into
// the controller. Only the most recently attached handle is live;
// events through any earlier handle are dropped silently. This is how
// a host that re-binds the overlay during reloads guarantees exactly
// one binding acts at a time.
type Handle struct {
	id   uuid.UUID
	ctrl *Controller
}

// ID returns the binding's identifier.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Active reports whether this handle is the live binding.
func (h *Handle) Active() bool {
	return h.ctrl.isActive(h.id)
}

// Pointer feeds a pointer event, dispatched by its action.
func (h *Handle) Pointer(ev pointer.Event) {
	if !h.guard("pointer") {
		return
	}
	switch ev.Action {
	case pointer.ActionDown:
		h.ctrl.pointerDown(ev)
	case pointer.ActionMove:
		h.ctrl.pointerMove(ev)
	case pointer.ActionUp:
		h.ctrl.pointerUp(ev)
	}
}

// PointerDown feeds a press.
func (h *Handle) PointerDown(ev pointer.Event) {
	if h.guard("pointer down") {
		h.ctrl.pointerDown(ev)
	}
}

// PointerMove feeds a move.
func (h *Handle) PointerMove(ev pointer.Event) {
	if h.guard("pointer move") {
		h.ctrl.pointerMove(ev)
	}
}

// PointerUp feeds a release.
func (h *Handle) PointerUp(ev pointer.Event) {
	if h.guard("pointer up") {
		h.ctrl.pointerUp(ev)
	}
}

// PointerLeave reports the pointer leaving the surface.
func (h *Handle) PointerLeave() {
	if h.guard("pointer leave") {
		h.ctrl.hover.Leave()
	}
}

// Key feeds a key event. Escape cancels any interaction in flight.
func (h *Handle) Key(ev key.Event) {
	if h.guard("key") {
		h.ctrl.keyEvent(ev)
	}
}

// Tick advances the long-press timer and the drop animation. Hosts
// call this from their frame loop with the current time.
func (h *Handle) Tick(now time.Time) {
	if h.guard("tick") {
		h.ctrl.tick(now)
	}
}

// Close detaches the handle.
func (h *Handle) Close() {
	h.ctrl.Detach(h)
}

// guard reports whether the handle is live, logging stray traffic at
// debug level only.
func (h *Handle) guard(what string) bool {
	if h.ctrl.isActive(h.id) {
		return true
	}
	h.ctrl.log.Debug("event on inactive binding",
		zap.String("event", what),
		zap.String("handle", h.id.String()))
	return false
}
