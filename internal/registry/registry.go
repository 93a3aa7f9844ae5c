// Package registry provides a global registry of setup factories.
// Built-in presets register themselves in init() functions, allowing the front ends
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/evosim/internal/setups"
)

// Factory builds a fresh copy of a setup.
type Factory func() (setups.Setup, error)

// Info contains metadata about a registered setup.
type Info struct {
	ID          string
	Title       string
	Description string
	Tutorial    bool
}

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a setup factory to the registry.
// Typically called from an init() function.
// Panics if the ID is already registered or the factory cannot build its setup.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: setup %q already registered", id))
	}

	// Build once to capture the metadata and fail early on broken presets
	s, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: setup %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = Info{
		ID:          id,
		Title:       s.Title(),
		Description: s.Description,
		Tutorial:    s.IsTutorial(),
	}
}

// List returns information about all registered setups, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds a new setup by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (setups.Setup, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return setups.Setup{}, fmt.Errorf("registry: unknown setup %q", id)
	}
	s, err := f()
	if err != nil {
		return setups.Setup{}, fmt.Errorf("registry: setup %q: %w", id, err)
	}
	if s.ID == "" {
		s.ID = id
	}
	return s, nil
}

// Exists checks if a setup with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
