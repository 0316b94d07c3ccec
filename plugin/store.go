package plugin

import (
	"errors"
	"sync"

	"github.com/nextpkg/plugconf/slogs"
)

// Registry is the repository-scoped store of built plugin instances, in
// insertion order. Names are not deduplicated: registering two plugins under
// the same name keeps both, and Find returns the most recently added.
type Registry struct {
	mu      sync.RWMutex
	entries []Plugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make([]Plugin, 0),
	}
}

// Add appends a plugin to the registry under its current name.
func (r *Registry) Add(p Plugin) {
	if p == nil {
		return
	}

	r.mu.Lock()
	r.entries = append(r.entries, p)
	r.mu.Unlock()

	slogs.Debug("Plugin registered", "plugin", p.Name())
}

// NameExists reports whether any registered plugin carries the given name.
func (r *Registry) NameExists(name string) bool {
	return r.Find(name) != nil
}

// Find returns the most recently registered plugin with the given name,
// or nil.
func (r *Registry) Find(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Name() == name {
			return r.entries[i]
		}
	}
	return nil
}

// All returns the registered plugins in insertion order.
func (r *Registry) All() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// StopAll shuts down every registered plugin, clearing its active state.
// Failures are logged and collected; a failing plugin does not prevent the
// rest from stopping.
func (r *Registry) StopAll() error {
	var errs []error
	for _, p := range r.All() {
		if err := p.Shutdown(); err != nil {
			slogs.Error("Plugin shutdown failed", "plugin", p.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		slogs.Debug("Plugin stopped", "plugin", p.Name())
	}
	return errors.Join(errs...)
}

// OfType returns every registered plugin assignable to T, in insertion
// order.
func OfType[T Plugin](r *Registry) []T {
	var out []T
	for _, p := range r.All() {
		if t, ok := p.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
