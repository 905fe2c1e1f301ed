package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Manager holds the live settings for one overlay instance and
// reloads them when the file changes on disk. Change handlers run
// with a settings snapshot; they never see a half-written reload.
type Manager struct {
	mu sync.RWMutex

	path     string
	settings Settings
	handlers []func(Settings)

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	// debounce folds the rapid event bursts editors produce on save
	// into one reload.
	debounce time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDebounce sets the reload debounce window.
func WithDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d >= 0 {
			m.debounce = d
		}
	}
}

// NewManager loads the file and returns a manager. A missing file is
// not an error; the manager starts with defaults and picks the file
// up if it appears while watching.
func NewManager(path string, opts ...ManagerOption) (*Manager, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		path:     path,
		settings: s,
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Settings returns the current settings snapshot.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// OnChange registers a handler called after every successful reload
// that changed the settings.
func (m *Manager) OnChange(fn func(Settings)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, fn)
}

// Reload re-reads the file. An invalid file keeps the previous
// settings and returns the error; handlers fire only on a successful
// change.
func (m *Manager) Reload() error {
	s, err := Load(m.path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if s == m.settings {
		m.mu.Unlock()
		return nil
	}
	m.settings = s
	handlers := make([]func(Settings), len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	for _, fn := range handlers {
		fn(s)
	}
	return nil
}

// Watch starts watching the file's directory for changes. Watching
// the directory rather than the file survives the rename-replace
// dance most editors do on save.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(m.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(m.path), err)
	}
	m.watcher = w
	m.done = make(chan struct{})

	m.wg.Add(1)
	go m.watchLoop(w, m.done)
	return nil
}

func (m *Manager) watchLoop(w *fsnotify.Watcher, done chan struct{}) {
	defer m.wg.Done()

	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(m.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(m.debounce)
		case _, ok := <-w.Errors:
			if !ok {
				return
			}
		case <-pending:
			pending = nil
			// Reload errors keep the previous settings; the next
			// write gets another chance.
			_ = m.Reload()
		case <-done:
			return
		}
	}
}

// Close stops watching. The manager remains usable for reads.
func (m *Manager) Close() error {
	m.mu.Lock()
	w := m.watcher
	done := m.done
	m.watcher = nil
	m.done = nil
	m.mu.Unlock()

	if w == nil {
		return nil
	}
	close(done)
	err := w.Close()
	m.wg.Wait()
	return err
}
