package scenes

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/milk9111/gridpath/logger"
)

const watchDebounce = 100 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reports scene and script files that changed on disk. Editors
// often write a file several times in a row; those bursts arrive as one
// event. Both channels are closed once the watcher stops.
type Watcher struct {
	Events <-chan string
	Errors <-chan error

	fs     *fsnotify.Watcher
	events chan string
	errs   chan error
	done   chan struct{}
	stop   sync.Once
	seen   map[string]time.Time
}

// NewWatcher watches each of dirs (not recursively).
func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	events := make(chan string, 16)
	errs := make(chan error, 1)
	w := &Watcher{
		Events: events,
		Errors: errs,
		fs:     fs,
		events: events,
		errs:   errs,
		done:   make(chan struct{}),
		seen:   make(map[string]time.Time),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.events)
	defer close(w.errs)

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.accept(ev, time.Now()) {
				continue
			}
			select {
			case w.events <- ev.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
				// reader is behind; the pending error is enough
				logger.Log.WithError(err).Debug("scenes: dropped watcher error")
			}
		}
	}
}

// accept filters out chmod-only events, unrelated files and repeats of a
// file inside the debounce window.
func (w *Watcher) accept(ev fsnotify.Event, now time.Time) bool {
	if ev.Op&relevantOps == 0 {
		return false
	}
	if !isSceneFile(ev.Name) && !isScriptFile(ev.Name) {
		return false
	}
	if last, ok := w.seen[ev.Name]; ok && now.Sub(last) < watchDebounce {
		return false
	}
	w.seen[ev.Name] = now
	return true
}

func isSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
