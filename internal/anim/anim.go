// Package anim drives the post-drop indicator animation as a small
// finite state machine: none, shrinking, growing, none.
//
// The sequencer never touches pixels. It publishes discrete phases
// with target end-values through the state store; the renderer owns
// the actual interpolation. Phases advance on an explicit Tick with
// the current time, so tests run the whole sequence with a synthetic
// clock.
package anim

import (
	"sync"
	"time"

	"github.com/dshills/blockdrag/internal/geom"
	"github.com/dshills/blockdrag/internal/state"
)

// Config holds the phase durations.
type Config struct {
	// ShrinkDuration is how long the landing line collapses toward a
	// dot before the grow phase starts.
	ShrinkDuration time.Duration

	// GrowDuration is how long the vertical indicator grows to the
	// landed block's height before the animation settles.
	GrowDuration time.Duration
}

// DefaultConfig returns the standard settle delays.
func DefaultConfig() Config {
	return Config{
		ShrinkDuration: 200 * time.Millisecond,
		GrowDuration:   250 * time.Millisecond,
	}
}

// Sequencer runs the drop animation state machine.
type Sequencer struct {
	mu sync.Mutex

	store  *state.Store
	config Config

	phase      state.AnimationPhase
	phaseStart time.Time

	// line is the drop line at the landing position, the shrink
	// phase's starting geometry.
	line geom.Rect

	// block is the landed block's rect, the grow phase's target.
	block geom.Rect
}

// NewSequencer creates an idle sequencer publishing into the store.
func NewSequencer(store *state.Store, config Config) *Sequencer {
	return &Sequencer{store: store, config: config}
}

// SetConfig replaces the phase durations.
func (s *Sequencer) SetConfig(config Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

// Active reports a running animation.
func (s *Sequencer) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase != state.AnimNone
}

// Start enters the shrinking phase for a completed plain move. The
// line rect is the indicator at the landing position; the block rect
// is the landed block's true geometry, published as the grow target.
// The caret stays suppressed until the sequence settles.
func (s *Sequencer) Start(now time.Time, line, block geom.Rect) {
	s.mu.Lock()
	s.phase = state.AnimShrinking
	s.phaseStart = now
	s.line = line
	s.block = block
	s.mu.Unlock()

	s.store.SetSuppressCaret(true)
	s.store.UpdateIndicator(func(ind *state.Indicator) {
		ind.Visible = true
		ind.IsAnimating = true
		ind.DropAnimation = state.AnimShrinking
		ind.DropIndicatorTop = line.Top
		ind.BlockLeft = line.Left
		ind.BlockWidth = line.Width
		ind.Top = line.Top
		ind.Height = 0
		ind.Horizontal = nil
	})
}

// Tick advances the machine. Returns true when the phase changed.
func (s *Sequencer) Tick(now time.Time) bool {
	s.mu.Lock()
	switch s.phase {
	case state.AnimShrinking:
		if now.Sub(s.phaseStart) < s.config.ShrinkDuration {
			s.mu.Unlock()
			return false
		}
		s.phase = state.AnimGrowing
		s.phaseStart = now
		block := s.block
		s.mu.Unlock()

		// Publish the landed block's true height; the renderer grows
		// toward it from minimal.
		s.store.UpdateIndicator(func(ind *state.Indicator) {
			ind.DropAnimation = state.AnimGrowing
			ind.Top = block.Top
			ind.Height = block.Height
			ind.BlockLeft = block.Left
			ind.BlockWidth = block.Width
		})
		return true

	case state.AnimGrowing:
		if now.Sub(s.phaseStart) < s.config.GrowDuration {
			s.mu.Unlock()
			return false
		}
		s.phase = state.AnimNone
		s.mu.Unlock()

		s.store.SetSuppressCaret(false)
		s.store.UpdateIndicator(func(ind *state.Indicator) {
			ind.IsAnimating = false
			ind.DropAnimation = state.AnimNone
		})
		return true

	default:
		s.mu.Unlock()
		return false
	}
}

// Cancel aborts a running animation and releases the caret in one
// step.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	wasActive := s.phase != state.AnimNone
	s.phase = state.AnimNone
	s.mu.Unlock()

	if !wasActive {
		return
	}
	s.store.SetSuppressCaret(false)
	s.store.UpdateIndicator(func(ind *state.Indicator) {
		ind.IsAnimating = false
		ind.DropAnimation = state.AnimNone
		ind.Visible = false
	})
}
