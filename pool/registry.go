package pool

import (
	"golang.org/x/sync/syncmap"
)

// Registry maps element types to their pools. A pool for type T is created
// on first use and shared by all callers requesting T from the same registry.
//
// A nil *Registry is valid: acquiring from it degrades to plain construction,
// releasing to it is a no-op.
type Registry struct {
	pools syncmap.Map // typed nil pointer *T -> *Pool[T]
}

var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Reset drops every pool of the registry, together with all pooled items.
// Pools already handed out by For keep working but are no longer reachable
// through r.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	r.pools.Range(func(k, _ any) bool {
		r.pools.Delete(k)
		return true
	})
}

// For returns the pool for element type T, creating it if necessary.
// It returns nil for a nil registry.
func For[T any](r *Registry) *Pool[T] {
	if r == nil {
		return nil
	}
	var key *T
	if p, ok := r.pools.Load(key); ok {
		return p.(*Pool[T])
	}
	p, loaded := r.pools.LoadOrStore(key, New[T](nil))
	if !loaded {
		tracer().Debugf("pool: created pool for %T", key)
	}
	return p.(*Pool[T])
}

func lookup[T any](r *Registry) *Pool[T] {
	if r == nil {
		return nil
	}
	var key *T
	if p, ok := r.pools.Load(key); ok {
		return p.(*Pool[T])
	}
	return nil
}

// Acquire returns a pooled instance of T from r, or calls factory.
func Acquire[T any](r *Registry, factory func() T) T {
	return For[T](r).Acquire(factory)
}

// Release returns item to the pool for T in r, resetting it if it implements
// Resetter.
func Release[T any](r *Registry, item T) {
	For[T](r).Release(item)
}

// Resize trims or tops up the pool for T in r to n items.
func Resize[T any](r *Registry, n int, factory func() T) {
	For[T](r).Resize(n, factory)
}

// Prepopulate manufactures n fresh instances of T into r.
func Prepopulate[T any](r *Registry, n int, factory func() T) {
	For[T](r).Prepopulate(n, factory)
}

// Clear drops all pooled instances of T in r.
func Clear[T any](r *Registry) {
	lookup[T](r).Clear()
}

// Count reports the number of pooled instances of T in r. It does not create
// a pool for T.
func Count[T any](r *Registry) int {
	return lookup[T](r).Count()
}
