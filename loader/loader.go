// Package loader provides pluggable configuration loaders and the built-in
// file-backed default source.
//
// A Loader supplies one additional configuration source. Loaders are made
// known through an explicit Registry rather than runtime discovery; the
// registry is consulted afresh on every reload, so registering or
// deregistering a loader between reloads changes the assembled
// configuration without any further call.
package loader

import (
	"reflect"
	"sync"

	"github.com/dshills/confstack/source"
)

// Loader supplies an additional configuration source.
// Implementations must be safe to call repeatedly: Configuration is invoked
// on every reload.
type Loader interface {
	Configuration() (source.Configuration, error)
}

// Func adapts a function to the Loader interface.
type Func func() (source.Configuration, error)

// Configuration implements Loader.
func (f Func) Configuration() (source.Configuration, error) {
	return f()
}

// Registry holds the set of registered loaders in registration order.
// Registration order determines source precedence during assembly.
type Registry struct {
	mu      sync.RWMutex
	loaders []Loader
}

// NewRegistry creates a registry seeded with the given loaders.
func NewRegistry(loaders ...Loader) *Registry {
	return &Registry{
		loaders: append([]Loader(nil), loaders...),
	}
}

// Register appends a loader at the lowest precedence position.
func (r *Registry) Register(l Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders = append(r.loaders, l)
}

// Deregister removes a loader by identity.
// Returns true if the loader was found and removed. Loaders backed by
// uncomparable types (such as Func) cannot be deregistered.
func (r *Registry) Deregister(l Loader) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.loaders {
		if sameLoader(existing, l) {
			r.loaders = append(r.loaders[:i], r.loaders[i+1:]...)
			return true
		}
	}
	return false
}

// sameLoader compares loaders by interface identity, guarding against
// uncomparable dynamic types.
func sameLoader(a, b Loader) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Loaders returns a copy of the registered loaders in registration order.
func (r *Registry) Loaders() []Loader {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Loader, len(r.loaders))
	copy(result, r.loaders)
	return result
}

// Len returns the number of registered loaders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loaders)
}
