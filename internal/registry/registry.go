// Package registry provides a global registry of pressure models.
// Built-in models register themselves in init(); additional models can be
// registered by ID so the CLI, the TUI and the API discover them without
// hardcoded switches.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// ModelInfo contains metadata about a registered pressure model.
type ModelInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Factory is a function that returns a pressure model.
type Factory func() engine.PressureModel

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	order     []string
	mu        sync.RWMutex
)

func init() {
	for _, m := range engine.Models {
		Register(m.ID(), func() engine.PressureModel { return m })
	}
}

// Register adds a pressure model factory to the registry.
// Panics if a model with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: model %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
	order = append(order, id)
}

// List returns all registered models in registration order.
func List() []ModelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModelInfo, 0, len(order))
	for _, id := range order {
		result = append(result, ModelInfo{ID: id, Title: titles[id]})
	}
	return result
}

// IDs returns the registered model IDs sorted alphabetically.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create returns the model registered under id. Built-in aliases accepted
// by engine.ParseModel resolve too.
func Create(id string) (engine.PressureModel, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()
	if ok {
		return f(), nil
	}

	if m, err := engine.ParseModel(id); err == nil {
		return m, nil
	}
	return nil, fmt.Errorf("registry: %w: %q", engine.ErrUnknownModel, id)
}

// Exists checks if a model with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Next returns the ID registered after id, wrapping around. Unknown IDs
// yield the first registered model.
func Next(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if len(order) == 0 {
		return id
	}
	for i, candidate := range order {
		if candidate == id {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
