package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ratchetworks/ratchet"
)

// Registry manages the workflow factories available to a host application,
// keyed by workflow name. Use it when one process serves several workflow
// types.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]*ratchet.Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]*ratchet.Factory),
	}
}

// Register adds a factory under its definition's name.
// If a factory with the same name exists, it is overwritten.
func (r *Registry) Register(factory *ratchet.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[factory.Definition().Name] = factory
}

// Get looks up a factory by workflow name.
// Returns an error if the workflow is not registered.
func (r *Registry) Get(name string) (*ratchet.Factory, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("workflow not registered: %s", name)
	}
	return factory, nil
}

// Names returns the registered workflow names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
