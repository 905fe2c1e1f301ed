// Package config loads and watches the overlay's settings: gesture
// thresholds, drop-target zones, selection modifier bindings, and
// animation timing. Settings live in a single TOML file; a missing
// file means defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/blockdrag/internal/anim"
	"github.com/dshills/blockdrag/internal/dragctl"
	"github.com/dshills/blockdrag/internal/gesture"
	"github.com/dshills/blockdrag/internal/input/key"
)

// ErrInvalidSetting indicates a setting outside its valid range.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings is the full configuration tree.
type Settings struct {
	// Gesture controls long-press detection.
	Gesture GestureSettings `toml:"gesture"`

	// Drop controls drop-target zones.
	Drop DropSettings `toml:"drop"`

	// Selection binds the selection modifiers.
	Selection SelectionSettings `toml:"selection"`

	// Animation controls the drop animation timing.
	Animation AnimationSettings `toml:"animation"`
}

// GestureSettings controls long-press detection.
type GestureSettings struct {
	// PressDurationMS is the long-press duration in milliseconds.
	PressDurationMS int `toml:"press_duration_ms"`

	// MoveThreshold is the movement, in display pixels, that cancels
	// an armed press.
	MoveThreshold float64 `toml:"move_threshold"`
}

// DropSettings controls drop-target zones.
type DropSettings struct {
	// EdgeZone is the width of the left and right wrap zones.
	EdgeZone float64 `toml:"edge_zone"`

	// DividerTolerance is the capture distance around a column
	// divider.
	DividerTolerance float64 `toml:"divider_tolerance"`

	// MaxColumns caps a column set's size.
	MaxColumns int `toml:"max_columns"`
}

// SelectionSettings binds the selection modifiers. The multi-select
// and range bindings are configurable because host platforms disagree
// on which modifier means "add to selection".
type SelectionSettings struct {
	// MultiSelectModifier toggles a single block, e.g. "ctrl" or
	// "meta".
	MultiSelectModifier string `toml:"multi_select_modifier"`

	// RangeModifier, held together with the multi-select modifier,
	// selects the range from the anchor.
	RangeModifier string `toml:"range_modifier"`
}

// AnimationSettings controls the drop animation timing.
type AnimationSettings struct {
	// ShrinkMS is the shrink phase duration in milliseconds.
	ShrinkMS int `toml:"shrink_ms"`

	// GrowMS is the grow phase duration in milliseconds.
	GrowMS int `toml:"grow_ms"`
}

// Default returns the standard settings.
func Default() Settings {
	return Settings{
		Gesture: GestureSettings{
			PressDurationMS: 400,
			MoveThreshold:   10,
		},
		Drop: DropSettings{
			EdgeZone:         30,
			DividerTolerance: 8,
			MaxColumns:       4,
		},
		Selection: SelectionSettings{
			MultiSelectModifier: "ctrl",
			RangeModifier:       "alt",
		},
		Animation: AnimationSettings{
			ShrinkMS: 200,
			GrowMS:   250,
		},
	}
}

// Load reads settings from a TOML file, applying the file's values
// over the defaults. A missing file returns defaults without error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Default(), err
	}
	return s, nil
}

// Validate checks every setting's range and the modifier bindings.
func (s Settings) Validate() error {
	if s.Gesture.PressDurationMS <= 0 {
		return fmt.Errorf("gesture.press_duration_ms %d: %w", s.Gesture.PressDurationMS, ErrInvalidSetting)
	}
	if s.Gesture.MoveThreshold <= 0 {
		return fmt.Errorf("gesture.move_threshold %v: %w", s.Gesture.MoveThreshold, ErrInvalidSetting)
	}
	if s.Drop.EdgeZone <= 0 {
		return fmt.Errorf("drop.edge_zone %v: %w", s.Drop.EdgeZone, ErrInvalidSetting)
	}
	if s.Drop.DividerTolerance < 0 {
		return fmt.Errorf("drop.divider_tolerance %v: %w", s.Drop.DividerTolerance, ErrInvalidSetting)
	}
	if s.Drop.MaxColumns < 2 {
		return fmt.Errorf("drop.max_columns %d: %w", s.Drop.MaxColumns, ErrInvalidSetting)
	}
	if _, err := key.ParseModifier(s.Selection.MultiSelectModifier); err != nil {
		return fmt.Errorf("selection.multi_select_modifier: %w", err)
	}
	if _, err := key.ParseModifier(s.Selection.RangeModifier); err != nil {
		return fmt.Errorf("selection.range_modifier: %w", err)
	}
	if s.Animation.ShrinkMS < 0 || s.Animation.GrowMS < 0 {
		return fmt.Errorf("animation durations: %w", ErrInvalidSetting)
	}
	return nil
}

// GestureConfig converts to the detector's configuration.
func (s Settings) GestureConfig() gesture.Config {
	return gesture.Config{
		PressDuration: time.Duration(s.Gesture.PressDurationMS) * time.Millisecond,
		MoveThreshold: s.Gesture.MoveThreshold,
	}
}

// DropConfig converts to the drag controller's configuration.
func (s Settings) DropConfig() dragctl.Config {
	return dragctl.Config{
		EdgeZone:         s.Drop.EdgeZone,
		DividerTolerance: s.Drop.DividerTolerance,
		MaxColumns:       s.Drop.MaxColumns,
	}
}

// AnimConfig converts to the sequencer's configuration.
func (s Settings) AnimConfig() anim.Config {
	return anim.Config{
		ShrinkDuration: time.Duration(s.Animation.ShrinkMS) * time.Millisecond,
		GrowDuration:   time.Duration(s.Animation.GrowMS) * time.Millisecond,
	}
}

// Modifiers returns the parsed selection modifier bindings. Validate
// guarantees these parse for loaded settings.
func (s Settings) Modifiers() (multi, rng key.Modifier, err error) {
	multi, err = key.ParseModifier(s.Selection.MultiSelectModifier)
	if err != nil {
		return 0, 0, err
	}
	rng, err = key.ParseModifier(s.Selection.RangeModifier)
	if err != nil {
		return 0, 0, err
	}
	return multi, rng, nil
}
