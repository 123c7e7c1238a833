package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// Store is the type-erased view of a Pool that the Registry keeps. It covers
// only what can be done without knowing the component type.
type Store interface {
	Type() reflect.Type
	Has(id EntityID) bool
	Remove(id EntityID) error
	Len() int
	// Clone copies the value held by from into a new entry for to.
	Clone(from, to EntityID) error
	Reset()
}

// Pool is a sparse set holding every component of type T in one dense slice.
// sparse maps entity -> slot and ids maps slot -> entity; the two always form
// a bijection over the live entries.
//
// Pointers returned by Add, Get and All are valid until the next Add or Remove
// on the same pool.
type Pool[T any] struct {
	typ    reflect.Type
	dense  []T
	ids    []EntityID
	sparse map[EntityID]int
}

func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{
		typ:    TypeOf[T](),
		dense:  make([]T, 0, capacity),
		ids:    make([]EntityID, 0, capacity),
		sparse: make(map[EntityID]int, capacity),
	}
}

func (p *Pool[T]) Type() reflect.Type { return p.typ }

func (p *Pool[T]) Len() int { return len(p.dense) }

func (p *Pool[T]) Has(id EntityID) bool {
	_, ok := p.sparse[id]
	return ok
}

// Add stores v for id.
func (p *Pool[T]) Add(id EntityID, v T) (*T, error) {
	if p.Has(id) {
		return nil, p.wrap(ErrDuplicateComponent, id)
	}
	p.sparse[id] = len(p.dense)
	p.dense = append(p.dense, v)
	p.ids = append(p.ids, id)
	return &p.dense[len(p.dense)-1], nil
}

// AddWith appends a zero T for id and lets init fill it in place.
func (p *Pool[T]) AddWith(id EntityID, init func(*T)) (*T, error) {
	var zero T
	c, err := p.Add(id, zero)
	if err != nil {
		return nil, err
	}
	if init != nil {
		init(c)
	}
	return c, nil
}

func (p *Pool[T]) Get(id EntityID) (*T, error) {
	slot, ok := p.sparse[id]
	if !ok {
		return nil, p.wrap(ErrMissingComponent, id)
	}
	return &p.dense[slot], nil
}

func (p *Pool[T]) Lookup(id EntityID) (*T, bool) {
	slot, ok := p.sparse[id]
	if !ok {
		return nil, false
	}
	return &p.dense[slot], true
}

// Remove deletes id's component by moving the last entry into its slot.
// Dense order is not preserved.
func (p *Pool[T]) Remove(id EntityID) error {
	slot, ok := p.sparse[id]
	if !ok {
		return p.wrap(ErrMissingComponent, id)
	}
	last := len(p.dense) - 1
	if slot != last {
		moved := p.ids[last]
		p.dense[slot] = p.dense[last]
		p.ids[slot] = moved
		p.sparse[moved] = slot
	}
	var zero T
	p.dense[last] = zero
	p.dense = p.dense[:last]
	p.ids = p.ids[:last]
	delete(p.sparse, id)
	return nil
}

func (p *Pool[T]) Clone(from, to EntityID) error {
	src, err := p.Get(from)
	if err != nil {
		return err
	}
	_, err = p.Add(to, *src)
	return err
}

func (p *Pool[T]) Reset() {
	clear(p.dense)
	p.dense = p.dense[:0]
	p.ids = p.ids[:0]
	clear(p.sparse)
}

// All yields every (entity, component) pair in dense order. The sequence can
// be ranged over any number of times; mutating the pool mid-range is not
// supported.
func (p *Pool[T]) All() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		for i := range p.dense {
			if !yield(p.ids[i], &p.dense[i]) {
				return
			}
		}
	}
}

func (p *Pool[T]) Each(fn func(EntityID, *T)) {
	for i := range p.dense {
		fn(p.ids[i], &p.dense[i])
	}
}

// Values exposes the dense slice directly for tight loops.
func (p *Pool[T]) Values() []T { return p.dense }

// IDs exposes the slot -> entity back-map, parallel to Values.
func (p *Pool[T]) IDs() []EntityID { return p.ids }

func (p *Pool[T]) wrap(err error, id EntityID) error {
	return fmt.Errorf("%w: entity %d in pool %s", err, id, p.typ)
}

// TypeOf returns the registry key for component type T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

var _ Store = (*Pool[struct{}])(nil)
