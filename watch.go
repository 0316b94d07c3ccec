package plugconf

import (
	"time"

	"github.com/nextpkg/plugconf/document"
	"github.com/nextpkg/plugconf/internal/watchdog"
	"github.com/nextpkg/plugconf/repository"
)

// DefaultWatchDelay is the polling delay used by ConfigureAndWatch when none
// is given.
const DefaultWatchDelay = 60 * time.Second

type (
	// WatchOption customizes ConfigureAndWatch.
	WatchOption func(*watchOptions)

	watchOptions struct {
		delay time.Duration
		mode  watchdog.Mode
		repo  repository.Repository
	}
)

// WithWatchDelay sets the polling delay.
func WithWatchDelay(delay time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.delay = delay
	}
}

// WithEventDriven switches the watch from polling to filesystem
// notifications on the file's parent directory.
func WithEventDriven() WatchOption {
	return func(o *watchOptions) {
		o.mode = watchdog.Event
	}
}

// WithRepository pins the repository every triggered pass configures. By
// default each pass targets whatever the process default repository is at
// trigger time.
func WithRepository(repo repository.Repository) WatchOption {
	return func(o *watchOptions) {
		o.repo = repo
	}
}

// Watcher re-runs full configuration from a file whenever it changes.
type Watcher struct {
	wd *watchdog.Watchdog
}

// ConfigureAndWatch watches the named configuration file and runs a full
// configuration pass with a fresh configurator on every detected change. An
// existing file is configured once, synchronously, before this returns.
// A malformed file at watch time is logged and does not stop the watch.
// Stop the returned Watcher to end watching.
func ConfigureAndWatch(path string, opts ...WatchOption) (*Watcher, error) {
	o := watchOptions{
		delay: DefaultWatchDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}

	wd, err := watchdog.New(path, o.delay, o.mode, func(p string) error {
		root, err := document.ParseFile(p)
		if err != nil {
			return NewParseError(p, "failed to parse configuration file", err)
		}

		NewConfigurator().Configure(root, o.repo)
		return nil
	})
	if err != nil {
		return nil, NewWatchError(path, "failed to create watchdog", err)
	}

	if err = wd.Start(); err != nil {
		return nil, NewWatchError(path, "failed to start watchdog", err)
	}

	return &Watcher{wd: wd}, nil
}

// Stop ends the watch and joins the background goroutine.
func (w *Watcher) Stop() {
	w.wd.Stop()
}

// IsRunning reports whether the watch is active.
func (w *Watcher) IsRunning() bool {
	return w.wd.IsRunning()
}
