// Package watchdog is the generic periodic file-watch primitive. It detects
// changes to one file, either by polling its modification state at a fixed
// delay or by subscribing to filesystem events on the parent directory, and
// invokes a change handler. Failures in the handler are logged, never fatal
// to the loop.
package watchdog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/atomic"

	"github.com/nextpkg/plugconf/slogs"
)

// Mode selects how the watchdog detects changes.
type Mode int

const (
	// Poll compares the file's modification state on a fixed-delay ticker.
	Poll Mode = iota
	// Event subscribes to filesystem notifications on the file's parent
	// directory, which survives editors replacing the file atomically.
	Event
)

// OnChange handles one detected change of the watched file.
type OnChange func(path string) error

// fileState is the last-seen modification state of the watched file.
type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (s fileState) equal(o fileState) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

// Watchdog watches one file and runs the change handler on each detected
// change. The zero value is not usable; construct with New.
type Watchdog struct {
	path     string
	delay    time.Duration
	mode     Mode
	onChange OnChange

	running  atomic.Bool
	stopChan chan struct{}
	group    *threading.RoutineGroup

	mu   sync.Mutex
	last fileState

	fw *fsnotify.Watcher
}

// New creates a watchdog for the given file. The delay is only used in Poll
// mode.
func New(path string, delay time.Duration, mode Mode, onChange OnChange) (*Watchdog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if onChange == nil {
		return nil, fmt.Errorf("watchdog: nil change handler for %s", abs)
	}
	if delay <= 0 {
		return nil, fmt.Errorf("watchdog: non-positive delay for %s", abs)
	}

	return &Watchdog{
		path:     abs,
		delay:    delay,
		mode:     mode,
		onChange: onChange,
	}, nil
}

// Start begins watching on one background goroutine. The first check runs
// synchronously, so an already-existing file triggers the handler before
// Start returns. Starting a running watchdog is a no-op.
func (w *Watchdog) Start() error {
	if !w.running.CompareAndSwap(false, true) {
		return nil
	}

	w.stopChan = make(chan struct{})
	w.group = threading.NewRoutineGroup()

	w.check()

	if w.mode == Event {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			w.running.Store(false)
			return err
		}
		if err = fw.Add(filepath.Dir(w.path)); err != nil {
			fw.Close()
			w.running.Store(false)
			return err
		}
		w.fw = fw
		w.group.RunSafe(w.eventLoop)
	} else {
		w.group.RunSafe(w.pollLoop)
	}

	slogs.Debug("Watchdog started", "file", w.path, "mode", w.mode, "delay", w.delay)
	return nil
}

// Stop signals the watch goroutine and joins it. Stopping a stopped
// watchdog is a no-op.
func (w *Watchdog) Stop() {
	if !w.running.CompareAndSwap(true, false) {
		return
	}

	close(w.stopChan)
	w.group.Wait()

	if w.fw != nil {
		if err := w.fw.Close(); err != nil {
			slogs.Warn("Watchdog failed to close fsnotify watcher", "file", w.path, "error", err)
		}
		w.fw = nil
	}

	slogs.Debug("Watchdog stopped", "file", w.path)
}

// IsRunning reports whether the watchdog is currently watching.
func (w *Watchdog) IsRunning() bool {
	return w.running.Load()
}

func (w *Watchdog) pollLoop() {
	ticker := time.NewTicker(w.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopChan:
			return
		}
	}
}

func (w *Watchdog) eventLoop() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if w.isTargetEvent(event) {
				w.check()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slogs.Warn("Watchdog event error", "file", w.path, "error", err)
		case <-w.stopChan:
			return
		}
	}
}

// isTargetEvent filters directory events down to mutations of the watched
// file, including a rename or create landing on its path.
func (w *Watchdog) isTargetEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}

	eventPath, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if eventPath == w.path {
		return true
	}

	// An atomic save renames a temp file onto the target; the event names
	// the temp file, but the target's state has changed.
	if event.Has(fsnotify.Rename) || event.Has(fsnotify.Create) {
		if _, err := os.Stat(w.path); err == nil {
			return true
		}
	}

	return false
}

// check compares the file's current state against the last-seen state and
// runs the change handler when they differ. Handler failures are logged and
// do not stop the watch.
func (w *Watchdog) check() {
	st := w.stat()

	w.mu.Lock()
	changed := !st.equal(w.last)
	w.last = st
	w.mu.Unlock()

	if !changed {
		return
	}

	if !st.exists {
		slogs.Warn("Watched file does not exist", "file", w.path)
		return
	}

	slogs.Info("Watched file changed", "file", w.path)

	if err := w.onChange(w.path); err != nil {
		slogs.Error("Watchdog change handler failed", "file", w.path, "error", err)
	}
}

func (w *Watchdog) stat() fileState {
	fi, err := os.Stat(w.path)
	if err != nil {
		return fileState{}
	}
	return fileState{
		exists:  true,
		size:    fi.Size(),
		modTime: fi.ModTime(),
	}
}
