package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/dof/effect"
)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first that opens wins).
	backendPriority = []string{BackendHAL, BackendCPU}
)

// Register registers a graph factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens the named backend.
func Open(name string) (effect.Graph, func(), error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	g, closeFn, err := factory()
	if err != nil {
		return nil, nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	if closeFn == nil {
		closeFn = func() {}
	}
	return g, closeFn, nil
}

// OpenDefault opens the best available backend by priority, falling back
// to any registered backend. It also returns the chosen name.
func OpenDefault() (effect.Graph, func(), string, error) {
	var lastErr error
	for _, name := range backendPriority {
		if !IsRegistered(name) {
			continue
		}
		g, closeFn, err := Open(name)
		if err == nil {
			return g, closeFn, name, nil
		}
		lastErr = err
	}

	for _, name := range Available() {
		g, closeFn, err := Open(name)
		if err == nil {
			return g, closeFn, name, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = ErrBackendNotAvailable
	}
	return nil, nil, "", lastErr
}
