// Package repository hosts the logger repositories a configuration pass is
// applied to: named slog loggers with adjustable levels, a repository-wide
// threshold, and optionally a plugin registry.
package repository

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/nextpkg/plugconf/plugin"
)

type (
	// Repository is the base capability of any logger repository.
	Repository interface {
		// Name returns the repository's name.
		Name() string
		// Logger returns the named logger, creating it on first use.
		Logger(name string) *slog.Logger
		// SetLoggerLevel adjusts the named logger's minimum level.
		SetLoggerLevel(name string, level slog.Level)
		// SetThreshold sets the repository-wide minimum level. It applies
		// on top of per-logger levels.
		SetThreshold(level slog.Level)
		// Threshold returns the repository-wide minimum level.
		Threshold() slog.Level
	}

	// Host is the extended capability a repository must expose to take part
	// in plugin configuration. A repository that does not implement Host
	// silently opts out of plugin processing.
	Host interface {
		Repository
		// Plugins returns the repository's plugin registry.
		Plugins() *plugin.Registry
	}
)

// loggerSet carries the logger bookkeeping shared by all repository kinds.
type loggerSet struct {
	name      string
	mu        sync.Mutex
	handler   slog.Handler
	threshold slog.LevelVar
	levels    map[string]*slog.LevelVar
	loggers   map[string]*slog.Logger
}

func newLoggerSet(name string, handler slog.Handler) *loggerSet {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}

	ls := &loggerSet{
		name:    name,
		handler: handler,
		levels:  make(map[string]*slog.LevelVar),
		loggers: make(map[string]*slog.Logger),
	}
	ls.threshold.Set(slog.LevelDebug)
	return ls
}

func (ls *loggerSet) Name() string {
	return ls.name
}

func (ls *loggerSet) Logger(name string) *slog.Logger {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if l, ok := ls.loggers[name]; ok {
		return l
	}

	l := slog.New(&leveledHandler{
		inner:     ls.handler,
		threshold: &ls.threshold,
		level:     ls.levelVar(name),
	}).With("logger", name)

	ls.loggers[name] = l
	return l
}

func (ls *loggerSet) SetLoggerLevel(name string, level slog.Level) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.levelVar(name).Set(level)
}

// levelVar returns the named logger's level var, creating it at Info.
// Callers must hold mu.
func (ls *loggerSet) levelVar(name string) *slog.LevelVar {
	lv, ok := ls.levels[name]
	if !ok {
		lv = new(slog.LevelVar)
		lv.Set(slog.LevelInfo)
		ls.levels[name] = lv
	}
	return lv
}

func (ls *loggerSet) SetThreshold(level slog.Level) {
	ls.threshold.Set(level)
}

func (ls *loggerSet) Threshold() slog.Level {
	return ls.threshold.Level()
}

// leveledHandler gates records on both the owning logger's level and the
// repository-wide threshold before delegating to the shared handler.
type leveledHandler struct {
	inner     slog.Handler
	threshold *slog.LevelVar
	level     *slog.LevelVar
}

func (h *leveledHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.threshold.Level() || level < h.level.Level() {
		return false
	}
	return h.inner.Enabled(ctx, level)
}

func (h *leveledHandler) Handle(ctx context.Context, rec slog.Record) error {
	return h.inner.Handle(ctx, rec)
}

func (h *leveledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &leveledHandler{
		inner:     h.inner.WithAttrs(attrs),
		threshold: h.threshold,
		level:     h.level,
	}
}

func (h *leveledHandler) WithGroup(name string) slog.Handler {
	return &leveledHandler{
		inner:     h.inner.WithGroup(name),
		threshold: h.threshold,
		level:     h.level,
	}
}

// LoggerRepository is the standard repository: named loggers plus a plugin
// registry. It satisfies Host.
type LoggerRepository struct {
	*loggerSet
	plugins *plugin.Registry
}

// Option customizes a repository at construction time.
type Option func(*options)

type options struct {
	handler slog.Handler
}

// WithHandler sets the slog.Handler backing every logger in the repository.
func WithHandler(h slog.Handler) Option {
	return func(o *options) {
		o.handler = h
	}
}

// New creates a plugin-capable logger repository.
func New(name string, opts ...Option) *LoggerRepository {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &LoggerRepository{
		loggerSet: newLoggerSet(name, o.handler),
		plugins:   plugin.NewRegistry(),
	}
}

// Plugins returns the repository's plugin registry.
func (r *LoggerRepository) Plugins() *plugin.Registry {
	return r.plugins
}

// Basic is a plain repository without plugin support. Configuring plugins
// against it is a silent no-op.
type Basic struct {
	*loggerSet
}

// NewBasic creates a repository that does not host plugins.
func NewBasic(name string, opts ...Option) *Basic {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Basic{
		loggerSet: newLoggerSet(name, o.handler),
	}
}
