// Package state holds the single mutable state container for the
// block overlay: indicator geometry, the drag session, suppression
// flags, and synchronous subscriptions for a rendering layer.
//
// The store is written only by the overlay; renderers read snapshots
// through subscriptions and never mutate them back. Notification is
// synchronous, in the caller's goroutine, and fires only when the
// published value actually changed.
package state

import (
	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/geom"
)

// AnimationPhase is the current phase of the drop animation.
type AnimationPhase uint8

const (
	// AnimNone means no drop animation is running.
	AnimNone AnimationPhase = iota
	// AnimShrinking is the first phase: the landing line collapses to
	// a dot.
	AnimShrinking
	// AnimGrowing is the second phase: a vertical indicator grows to
	// the landed block's height.
	AnimGrowing
)

// String returns the phase name.
func (p AnimationPhase) String() string {
	switch p {
	case AnimShrinking:
		return "shrinking"
	case AnimGrowing:
		return "growing"
	default:
		return "none"
	}
}

// Side identifies the left or right edge of a horizontal drop target.
type Side uint8

const (
	// SideLeft targets the left edge.
	SideLeft Side = iota
	// SideRight targets the right edge.
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// HorizontalDrop describes an active horizontal drop target: a
// wrap-into-columns edge or a divider gap inside an existing set.
type HorizontalDrop struct {
	// Side is the targeted edge.
	Side Side

	// TargetPos is the top-level block being targeted.
	TargetPos doc.Pos

	// Rect is the display-space rect of the column-insertion marker.
	Rect geom.Rect

	// ColumnIndex is the insertion index inside an existing column
	// set, or -1 for an edge-zone wrap.
	ColumnIndex int

	// GapX is the display-space X of the divider being targeted, or 0
	// for an edge-zone wrap.
	GapX float64
}

// Indicator is the renderer's single source of truth: everything it
// draws is derived from this, never hand-authored.
type Indicator struct {
	// Visible reports whether the block indicator is shown at all.
	Visible bool

	// Top and Height are the display-space vertical extent of the
	// hovered block, clipped to the current page slice.
	Top    float64
	Height float64

	// BlockLeft and BlockWidth are the display-space horizontal extent
	// of the hovered block.
	BlockLeft  float64
	BlockWidth float64

	// CommandHeld reports whether the multi-select modifier is held.
	CommandHeld bool

	// IsLongPressing reports an armed long-press timer.
	IsLongPressing bool

	// IsDragging reports an active drag session.
	IsDragging bool

	// DropIndicatorTop is the display-space Y of the drop line while
	// dragging with a vertical target.
	DropIndicatorTop float64

	// IsAnimating reports a running drop animation.
	IsAnimating bool

	// DropAnimation is the current animation phase.
	DropAnimation AnimationPhase

	// PaginationEnabled mirrors the surface's pagination mode.
	PaginationEnabled bool

	// Horizontal is the active horizontal drop target, or nil.
	Horizontal *HorizontalDrop
}

// equal compares two indicator snapshots, including the horizontal
// target.
func (i Indicator) equal(o Indicator) bool {
	if i.Horizontal == nil != (o.Horizontal == nil) {
		return false
	}
	if i.Horizontal != nil && *i.Horizontal != *o.Horizontal {
		return false
	}
	a, b := i, o
	a.Horizontal, b.Horizontal = nil, nil
	return a == b
}

// Session is the active drag session. Exactly one may exist at a time.
type Session struct {
	// SourcePos is the dragged block's position at drag start.
	SourcePos doc.Pos

	// SourceNode is the dragged block's node at drag start.
	SourceNode *doc.Node

	// DropTargetPos is the current vertical insertion position.
	DropTargetPos doc.Pos
}
