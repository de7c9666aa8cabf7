// Package watch notices when another process rewrites save files.
//
// The codec assumes single-writer access: the editor must not commit while
// the game itself is rewriting the file. watch cannot enforce that, but it
// gives the caller the signal needed to drop or reopen a stale document.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event reports an external write to a matching save file.
type Event struct {
	Path string
}

// Watcher observes one directory for writes to files matching any of its
// glob patterns.
type Watcher struct {
	dir      string
	patterns []string
	fsw      *fsnotify.Watcher
}

// New configures a watcher for dir. Patterns are filepath.Match globs
// applied to the base name; no patterns means every file matches.
func New(dir string, patterns ...string) *Watcher {
	return &Watcher{dir: dir, patterns: patterns}
}

// Start begins watching and sends an Event per external write on events.
// The channel is closed when the watcher stops.
func (w *Watcher) Start(events chan<- Event) error {
	if w.fsw != nil {
		return fmt.Errorf("watch: already started")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.fsw = fsw

	go func() {
		defer close(events)
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if w.matches(ev.Name) {
						events <- Event{Path: ev.Name}
					}
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
				// Errors are advisory; keep watching.
			}
		}
	}()
	return nil
}

// Stop ends the watch. The events channel closes once the internal
// goroutine drains.
func (w *Watcher) Stop() error {
	if w.fsw == nil {
		return nil
	}
	err := w.fsw.Close()
	w.fsw = nil
	return err
}

func (w *Watcher) matches(path string) bool {
	if len(w.patterns) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pat := range w.patterns {
		if ok, err := filepath.Match(pat, base); err == nil && ok {
			return true
		}
	}
	return false
}
