package registry

import (
	"sort"
	"sync"

	"github.com/aretw0/arbor"
)

// Registry holds named machines so transport adapters (HTTP, MCP) can
// host several automata side by side.
type Registry struct {
	mu       sync.RWMutex
	machines map[string]*arbor.Machine
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		machines: make(map[string]*arbor.Machine),
	}
}

// Register adds a machine to the registry.
// If a machine with the same name exists, it is overwritten.
func (r *Registry) Register(name string, m *arbor.Machine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machines[name] = m
}

// Get looks up a machine by name.
func (r *Registry) Get(name string) (*arbor.Machine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.machines[name]
	return m, ok
}

// Remove deletes a machine from the registry.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, name)
}

// Names returns the registered machine names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.machines))
	for name := range r.machines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
