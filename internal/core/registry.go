package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]CollectionDefinition)
	registryMu sync.RWMutex
)

// Register adds a collection definition to the registry.
// Panics if a collection with the same key is already registered.
func Register(def CollectionDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Info.Key == "" {
		panic("collection key is required")
	}
	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("collection already registered: %s", def.Info.Key))
	}
	if def.Info.Label == "" {
		def.Info.Label = def.Info.Key
	}
	def.Messages = def.Messages.withDefaults()

	registry[def.Info.Key] = def
}

// Get returns a collection definition by key.
// Returns false if not found.
func Get(key string) (CollectionDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered collection definitions.
// Sorted by group then by key for consistent ordering.
func All() []CollectionDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]CollectionDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Count returns the number of registered collections.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered collections.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]CollectionDefinition)
}
