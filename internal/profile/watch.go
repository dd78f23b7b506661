package profile

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Watcher polls a catalog's data directory and invalidates the cached
// templates when any *.json file changes, appears, or disappears. Polling
// avoids a platform notification dependency for what is a read-mostly
// directory edited by hand.
type Watcher struct {
	catalog  *Catalog
	interval time.Duration
	stopCh   chan struct{}
	onChange func()

	lastState map[string]time.Time
}

// NewWatcher creates a watcher over the catalog's directory. The interval
// bounds how stale the cached catalog can get after an external edit.
func NewWatcher(catalog *Catalog, interval time.Duration) *Watcher {
	return &Watcher{
		catalog:   catalog,
		interval:  interval,
		stopCh:    make(chan struct{}),
		lastState: snapshotDir(catalog.Dir()),
	}
}

// OnChange sets a callback invoked after an invalidation. It runs on the
// watcher goroutine; UI callers must marshal to their own thread.
func (w *Watcher) OnChange(callback func()) {
	w.onChange = callback
}

// Start begins polling in a background goroutine.
func (w *Watcher) Start() {
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop stops the polling goroutine.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) watchLoop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.checkForChange() {
				w.catalog.Invalidate()
				if w.onChange != nil {
					w.onChange()
				}
			}
		}
	}
}

// checkForChange compares the current directory snapshot with the previous
// one and records the new snapshot.
func (w *Watcher) checkForChange() bool {
	current := snapshotDir(w.catalog.Dir())

	changed := len(current) != len(w.lastState)
	if !changed {
		for name, mtime := range current {
			if prev, ok := w.lastState[name]; !ok || !prev.Equal(mtime) {
				changed = true
				break
			}
		}
	}

	w.lastState = current
	return changed
}

// snapshotDir records the modification time of every template file.
func snapshotDir(dir string) map[string]time.Time {
	state := make(map[string]time.Time)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return state
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		state[e.Name()] = info.ModTime()
	}
	return state
}
