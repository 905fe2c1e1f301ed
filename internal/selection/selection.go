// Package selection manages the multi-block selection: an ordered set
// of logical block positions with a range anchor, revalidated against
// the live tree after every document edit.
package selection

import (
	"sort"
	"sync"

	"github.com/dshills/blockdrag/internal/doc"
	"github.com/dshills/blockdrag/internal/resolve"
)

// Manager owns the selection set. It persists across drags and hover
// changes; only an explicit deselect gesture or a plain click outside
// all blocks clears it.
type Manager struct {
	mu sync.RWMutex

	surface doc.Surface

	// positions is kept sorted in document order.
	positions []doc.Pos

	// anchor is the last toggled position, or doc.None.
	anchor doc.Pos
}

// NewManager creates an empty selection over the given surface.
func NewManager(surface doc.Surface) *Manager {
	return &Manager{surface: surface, anchor: doc.None}
}

// Toggle adds or removes a single block position and moves the anchor
// to it.
func (m *Manager) Toggle(pos doc.Pos) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(pos); i >= 0 {
		m.positions = append(m.positions[:i], m.positions[i+1:]...)
	} else {
		m.positions = append(m.positions, pos)
		sort.Slice(m.positions, func(a, b int) bool { return m.positions[a] < m.positions[b] })
	}
	m.anchor = pos
}

// Range selects or deselects every block between the anchor and pos
// inclusive: deselects when the clicked block is already selected,
// selects otherwise. Without an anchor it degrades to Toggle.
func (m *Manager) Range(pos doc.Pos) {
	m.mu.Lock()
	if m.anchor == doc.None {
		m.mu.Unlock()
		m.Toggle(pos)
		return
	}
	anchor := m.anchor
	deselect := m.indexOf(pos) >= 0
	m.mu.Unlock()

	span := resolve.BlocksBetween(m.surface, anchor, pos)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range span {
		i := m.indexOf(p)
		if deselect && i >= 0 {
			m.positions = append(m.positions[:i], m.positions[i+1:]...)
		}
		if !deselect && i < 0 {
			m.positions = append(m.positions, p)
		}
	}
	sort.Slice(m.positions, func(a, b int) bool { return m.positions[a] < m.positions[b] })
}

// Clear empties the selection and drops the anchor.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = nil
	m.anchor = doc.None
}

// Contains reports whether the block position is selected.
func (m *Manager) Contains(pos doc.Pos) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexOf(pos) >= 0
}

// Positions returns the selected positions in document order.
func (m *Manager) Positions() []doc.Pos {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]doc.Pos(nil), m.positions...)
}

// Count returns the number of selected blocks.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.positions)
}

// Anchor returns the range anchor, or doc.None.
func (m *Manager) Anchor() doc.Pos {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.anchor
}

// Revalidate maps every selected position through a document edit and
// drops, silently, the ones whose blocks no longer exist. The anchor
// is cleared when it was among the dropped set.
func (m *Manager) Revalidate(mapping doc.Mapping) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.positions[:0]
	for _, p := range m.positions {
		mapped, ok := m.remapLocked(mapping, p)
		if !ok {
			continue
		}
		kept = append(kept, mapped)
	}
	m.positions = kept

	if m.anchor != doc.None {
		if mapped, ok := m.remapLocked(mapping, m.anchor); ok {
			m.anchor = mapped
		} else {
			m.anchor = doc.None
		}
	}
}

// remapLocked maps a position through the edit and confirms it still
// starts a drag unit in the current tree.
func (m *Manager) remapLocked(mapping doc.Mapping, p doc.Pos) (doc.Pos, bool) {
	mapped, ok := mapping.Map(p)
	if !ok {
		return doc.None, false
	}
	loc, ok := m.surface.ResolvePos(mapped)
	if !ok {
		return doc.None, false
	}
	unit, ok := resolve.UnitAt(loc)
	if !ok || unit.Pos != mapped {
		return doc.None, false
	}
	return mapped, true
}

// indexOf returns the index of pos in the sorted set, or -1.
func (m *Manager) indexOf(pos doc.Pos) int {
	for i, p := range m.positions {
		if p == pos {
			return i
		}
	}
	return -1
}
