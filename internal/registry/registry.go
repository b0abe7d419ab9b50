// Package registry provides a global registry of arena variants.
// Variants register themselves in init() functions, allowing the platform
// to discover and build rounds without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pong/internal/arena"
)

// Info describes a registered variant.
type Info struct {
	ID    string // Used on the command line and in match history
	Title string // Human-readable name for menus

	// Axes lists every input axis the variant's rounds read, in the
	// order controls should be shown.
	Axes []arena.AxisID
}

// Factory builds a fresh round for a variant from a validated config.
type Factory func(cfg arena.Config) (*arena.Round, error)

type entry struct {
	info    Info
	factory Factory
}

var (
	variants = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Typically called from a variant's init() function.
// Panics if the ID is empty or already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: variant registered without an ID")
	}
	if _, exists := variants[info.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", info.ID))
	}

	variants[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered variants, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(variants))
	for _, e := range variants {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the info for a registered variant.
func Lookup(id string) (Info, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := variants[id]
	if !ok {
		return Info{}, fmt.Errorf("registry: unknown variant %q", id)
	}
	return e.info, nil
}

// Create builds a new round of the given variant.
func Create(id string, cfg arena.Config) (*arena.Round, error) {
	mu.RLock()
	e, ok := variants[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}

	r, err := e.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot build %q: %w", id, err)
	}
	return r, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
