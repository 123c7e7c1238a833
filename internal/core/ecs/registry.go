package ecs

import (
	"fmt"
	"reflect"
)

// Registry owns one pool per component type and supports bulk cleanup on
// entity destroy.
type Registry struct {
	pools    map[reflect.Type]Store
	order    []Store
	capacity int
}

// NewRegistry creates an empty registry. capacity is the initial size of every
// pool it creates lazily.
func NewRegistry(capacity int) *Registry {
	return &Registry{
		pools:    make(map[reflect.Type]Store, 16),
		order:    make([]Store, 0, 16),
		capacity: capacity,
	}
}

func (r *Registry) Contains(t reflect.Type) bool {
	_, ok := r.pools[t]
	return ok
}

func (r *Registry) Get(t reflect.Type) (Store, bool) {
	s, ok := r.pools[t]
	return s, ok
}

// Add registers a pool. A second pool for the same type is rejected.
func (r *Registry) Add(s Store) error {
	if r.Contains(s.Type()) {
		return fmt.Errorf("%w: %s", ErrDuplicatePoolType, s.Type())
	}
	r.pools[s.Type()] = s
	r.order = append(r.order, s)
	return nil
}

// RemoveAll clears the given entity from every pool that holds it and reports
// how many components were removed. removed, when not nil, is called with each
// pool right after the entity left it.
func (r *Registry) RemoveAll(id EntityID, removed func(Store)) int {
	n := 0
	for _, s := range r.order {
		if !s.Has(id) || s.Remove(id) != nil {
			continue
		}
		if removed != nil {
			removed(s)
		}
		n++
	}
	return n
}

// Stores returns the registered pools in registration order.
func (r *Registry) Stores() []Store {
	return append([]Store(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// Reset empties every pool but keeps them registered.
func (r *Registry) Reset() {
	for _, s := range r.order {
		s.Reset()
	}
}

// Register creates and registers the pool for T.
func Register[T any](r *Registry) (*Pool[T], error) {
	p := NewPool[T](r.capacity)
	if err := r.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// PoolOf returns the typed pool for T if one has been registered.
func PoolOf[T any](r *Registry) (*Pool[T], bool) {
	s, ok := r.pools[TypeOf[T]()]
	if !ok {
		return nil, false
	}
	p, ok := s.(*Pool[T])
	return p, ok
}

// Ensure returns the pool for T, creating it on first use.
func Ensure[T any](r *Registry) *Pool[T] {
	if p, ok := PoolOf[T](r); ok {
		return p
	}
	p, err := Register[T](r)
	if err != nil {
		// Contains was false a moment ago; only a foreign Store registered
		// under T's key can get here.
		panic(err)
	}
	return p
}
