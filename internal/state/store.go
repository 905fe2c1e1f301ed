package state

import (
	"errors"
	"sync"

	"github.com/dshills/blockdrag/internal/doc"
)

// ErrSessionActive indicates an attempt to start a drag while one is
// already running. Single-session is an invariant, not a race to win.
var ErrSessionActive = errors.New("drag session already active")

// Store is the observable state container. All mutation goes through
// its methods; subscribers receive synchronous snapshots after the
// store's lock is released.
type Store struct {
	mu sync.RWMutex

	indicator Indicator
	session   *Session
	enabled   bool

	// suppressCaret is held through the drop animation.
	suppressCaret bool

	// suppressSelection disables native text selection while a
	// long-press is armed or a drag is active.
	suppressSelection bool

	// fadePos is the source block shown faded during a drag, or None.
	fadePos doc.Pos

	nextSubID     int
	indicatorSubs map[int]func(Indicator)
	selectionSubs map[int]func([]doc.Pos)
	enabledSubs   map[int]func(bool)
}

// NewStore creates an enabled store with a hidden indicator.
func NewStore() *Store {
	return &Store{
		enabled:       true,
		fadePos:       doc.None,
		indicatorSubs: make(map[int]func(Indicator)),
		selectionSubs: make(map[int]func([]doc.Pos)),
		enabledSubs:   make(map[int]func(bool)),
	}
}

// Indicator returns the current indicator snapshot.
func (s *Store) Indicator() Indicator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneIndicatorLocked()
}

func (s *Store) cloneIndicatorLocked() Indicator {
	ind := s.indicator
	if ind.Horizontal != nil {
		h := *ind.Horizontal
		ind.Horizontal = &h
	}
	return ind
}

// SetIndicator publishes a new indicator state. Subscribers are
// notified only when the state actually changed.
func (s *Store) SetIndicator(ind Indicator) {
	s.mu.Lock()
	if s.indicator.equal(ind) {
		s.mu.Unlock()
		return
	}
	s.indicator = ind
	snapshot := s.cloneIndicatorLocked()
	subs := make([]func(Indicator), 0, len(s.indicatorSubs))
	for _, fn := range s.indicatorSubs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// UpdateIndicator applies fn to a copy of the current indicator and
// publishes the result.
func (s *Store) UpdateIndicator(fn func(*Indicator)) {
	s.mu.RLock()
	ind := s.cloneIndicatorLocked()
	s.mu.RUnlock()
	fn(&ind)
	s.SetIndicator(ind)
}

// HideIndicator clears the visible indicator geometry, leaving drag
// and animation flags untouched.
func (s *Store) HideIndicator() {
	s.UpdateIndicator(func(ind *Indicator) {
		ind.Visible = false
		ind.Horizontal = nil
	})
}

// StartSession begins the drag session. Starting while one is active
// is impossible by construction upstream; the error is a backstop.
func (s *Store) StartSession(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return ErrSessionActive
	}
	snapshot := sess
	s.session = &snapshot
	return nil
}

// Session returns a snapshot of the active session, or false.
func (s *Store) Session() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// SetDropTarget updates the active session's vertical insertion
// position. No-op without a session.
func (s *Store) SetDropTarget(pos doc.Pos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.DropTargetPos = pos
	}
}

// EndSession discards the active session.
func (s *Store) EndSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Dragging reports an active session.
func (s *Store) Dragging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// SetFade marks the drag source block as faded, or clears the fade
// with doc.None. This is a state flag for the renderer, not a DOM
// mutation.
func (s *Store) SetFade(pos doc.Pos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fadePos = pos
}

// FadePos returns the faded block position, or doc.None.
func (s *Store) FadePos() doc.Pos {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fadePos
}

// SetSuppressSelection toggles native-selection suppression.
func (s *Store) SetSuppressSelection(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressSelection = on
}

// SuppressSelection reports native-selection suppression.
func (s *Store) SuppressSelection() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppressSelection
}

// SetSuppressCaret toggles caret suppression for the drop animation.
func (s *Store) SetSuppressCaret(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressCaret = on
}

// SuppressCaret reports caret suppression.
func (s *Store) SuppressCaret() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppressCaret
}

// SetEnabled toggles the overlay and notifies enabled subscribers on
// change.
func (s *Store) SetEnabled(on bool) {
	s.mu.Lock()
	if s.enabled == on {
		s.mu.Unlock()
		return
	}
	s.enabled = on
	subs := make([]func(bool), 0, len(s.enabledSubs))
	for _, fn := range s.enabledSubs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(on)
	}
}

// Enabled reports whether the overlay is enabled.
func (s *Store) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// NotifySelection publishes the current selection to subscribers.
func (s *Store) NotifySelection(positions []doc.Pos) {
	s.mu.RLock()
	subs := make([]func([]doc.Pos), 0, len(s.selectionSubs))
	for _, fn := range s.selectionSubs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(append([]doc.Pos(nil), positions...))
	}
}

// SubscribeIndicator registers a renderer callback for indicator
// changes and returns an unsubscribe func.
func (s *Store) SubscribeIndicator(fn func(Indicator)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.indicatorSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.indicatorSubs, id)
	}
}

// SubscribeSelection registers a callback for selection changes and
// returns an unsubscribe func.
func (s *Store) SubscribeSelection(fn func([]doc.Pos)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.selectionSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.selectionSubs, id)
	}
}

// SubscribeEnabled registers a callback for enable/disable changes
// and returns an unsubscribe func.
func (s *Store) SubscribeEnabled(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.enabledSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.enabledSubs, id)
	}
}

// Snapshot is an immutable renderer-facing copy of the whole store.
type Snapshot struct {
	// Indicator is the indicator state at snapshot time.
	Indicator Indicator

	// Session is the drag session at snapshot time. Valid when Dragging.
	Session Session

	// Dragging reports whether a session was active.
	Dragging bool

	// FadePos is the faded source block, or doc.None.
	FadePos doc.Pos

	// SuppressSelection reports native-selection suppression.
	SuppressSelection bool

	// SuppressCaret reports caret suppression.
	SuppressCaret bool

	// Enabled reports whether the overlay is enabled.
	Enabled bool
}

// Snapshot returns a consistent copy of all store state under one lock
// acquisition.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Indicator:         s.cloneIndicatorLocked(),
		FadePos:           s.fadePos,
		SuppressSelection: s.suppressSelection,
		SuppressCaret:     s.suppressCaret,
		Enabled:           s.enabled,
	}
	if s.session != nil {
		snap.Session = *s.session
		snap.Dragging = true
	}
	return snap
}

// Reset returns every piece of state to baseline in one step: session,
// fade, suppression flags, and indicator. Cancellation is total;
// partial cancellation is a defect.
func (s *Store) Reset() {
	s.mu.Lock()
	s.session = nil
	s.fadePos = doc.None
	s.suppressCaret = false
	s.suppressSelection = false
	changed := !s.indicator.equal(Indicator{PaginationEnabled: s.indicator.PaginationEnabled})
	s.indicator = Indicator{PaginationEnabled: s.indicator.PaginationEnabled}
	var subs []func(Indicator)
	var snapshot Indicator
	if changed {
		snapshot = s.cloneIndicatorLocked()
		subs = make([]func(Indicator), 0, len(s.indicatorSubs))
		for _, fn := range s.indicatorSubs {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
