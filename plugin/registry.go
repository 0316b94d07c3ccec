package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nextpkg/plugconf/ce"
	"github.com/nextpkg/plugconf/defaults"
	"github.com/nextpkg/plugconf/slogs"
)

// Factory constructs a fresh plugin instance with default construction only;
// parameters are bound afterwards by the configurator.
type Factory func() Plugin

var (
	// globalTable holds the singleton constructor table.
	globalTable     *constructorTable
	globalTableOnce sync.Once
)

type constructorTable struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func getConstructorTable() *constructorTable {
	globalTableOnce.Do(func() {
		globalTable = &constructorTable{
			factories: make(map[string]Factory),
		}
	})
	return globalTable
}

// Register adds a plugin type to the global constructor table under the
// given type name. The Factory signature ties the type to the Plugin
// capability at registration time, so no per-use conformance check is
// needed.
//
// Register panics on an empty type name, a nil factory, or a duplicate
// registration, since all three indicate a programming error at package
// init time.
func Register(typeName string, factory Factory) {
	if typeName == "" {
		panic("plugin: Register with empty type name")
	}
	if factory == nil {
		panic(fmt.Sprintf("plugin: Register %s with nil factory", typeName))
	}

	table := getConstructorTable()
	table.mu.Lock()
	defer table.mu.Unlock()

	if _, exists := table.factories[typeName]; exists {
		panic(fmt.Sprintf("plugin type is registered, type=%s", typeName))
	}

	table.factories[typeName] = factory

	slogs.Info("Plugin type registered", "plugin_type", typeName)
}

// Unregister removes a plugin type from the constructor table.
func Unregister(typeName string) {
	table := getConstructorTable()
	table.mu.Lock()
	defer table.mu.Unlock()

	delete(table.factories, typeName)
	slogs.Info("Plugin type unregistered", "plugin_type", typeName)
}

// New constructs a fresh instance of the named plugin type and applies its
// `default` struct tags. Unknown type names are construction failures.
func New(typeName string) (Plugin, error) {
	table := getConstructorTable()
	table.mu.RLock()
	factory, exists := table.factories[typeName]
	table.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ce.ErrUnknownPluginType, typeName)
	}

	p := factory()
	if p == nil {
		return nil, fmt.Errorf("%w: factory for %s returned nil", ce.ErrUnknownPluginType, typeName)
	}

	if err := defaults.SetDefaults(p); err != nil {
		return nil, fmt.Errorf("apply defaults for %s: %w", typeName, err)
	}

	return p, nil
}

// Types returns the registered plugin type names, sorted.
func Types() []string {
	table := getConstructorTable()
	table.mu.RLock()
	defer table.mu.RUnlock()

	types := make([]string, 0, len(table.factories))
	for typeName := range table.factories {
		types = append(types, typeName)
	}
	sort.Strings(types)
	return types
}
