package search

import (
	"fmt"

	"NewsAnalyst/internal/ports"
)

// Registry keeps a mapping from backend names to their implementations.
// Backends are selected by configuration, never by call-site branching.
type Registry struct {
	backends map[string]ports.SearchBackend
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: map[string]ports.SearchBackend{}}
}

// Register adds or replaces a backend implementation.
func (r *Registry) Register(backend ports.SearchBackend) {
	if r.backends == nil {
		r.backends = map[string]ports.SearchBackend{}
	}
	r.backends[backend.Name()] = backend
}

// Resolve returns a backend by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.SearchBackend, error) {
	if backend, ok := r.backends[name]; ok {
		return backend, nil
	}
	return nil, fmt.Errorf("search backend %s is not registered", name)
}
