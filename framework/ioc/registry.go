package ioc

import (
	"slices"
	"sync"
)

// registry maps bean names to their descriptors. Scan writes it, GetBean
// reads it.
type registry struct {
	mu   sync.RWMutex
	defs map[string]*Descriptor
}

func newRegistry() *registry {
	return &registry{defs: make(map[string]*Descriptor)}
}

// put stores d under name and returns the descriptor it replaced, if any.
func (r *registry) put(name string, d *Descriptor) (replaced *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	replaced = r.defs[name]
	r.defs[name] = d
	return replaced
}

func (r *registry) get(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// names returns the registered bean names, sorted.
func (r *registry) names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	r.mu.RUnlock()

	slices.Sort(out)
	return out
}
