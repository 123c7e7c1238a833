package scene

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/corgi/engine/internal/core/ecs"
	"github.com/corgi/engine/internal/core/event"
)

// AddComponent attaches v to e, creating the pool for T on first use. If e
// already has a T, a warning is logged and the existing component is returned
// unchanged.
//
// The returned pointer is valid until the next add or remove on T's pool.
func AddComponent[T any](e *Entity, v T) *T {
	s := mustLive(e)
	p := ecs.Ensure[T](s.pools)
	if c, ok := p.Lookup(e.id); ok {
		s.warnDuplicate(e, p.Type())
		return c
	}
	c, err := p.Add(e.id, v)
	if err != nil {
		panic(err)
	}
	event.Emit(s.events, event.ComponentAdded{EntityID: e.id, Component: p.Type()})
	return c
}

// AddComponentWith is AddComponent for callers that build the value in place.
// init is not called when e already has a T.
func AddComponentWith[T any](e *Entity, init func(*T)) *T {
	s := mustLive(e)
	p := ecs.Ensure[T](s.pools)
	if c, ok := p.Lookup(e.id); ok {
		s.warnDuplicate(e, p.Type())
		return c
	}
	c, err := p.AddWith(e.id, init)
	if err != nil {
		panic(err)
	}
	event.Emit(s.events, event.ComponentAdded{EntityID: e.id, Component: p.Type()})
	return c
}

func HasComponent[T any](e *Entity) bool {
	return HasComponentType(e, ecs.TypeOf[T]())
}

func HasComponentType(e *Entity, t reflect.Type) bool {
	if e == nil || !e.Alive() {
		return false
	}
	s, ok := e.scene.pools.Get(t)
	if !ok {
		return false
	}
	return s.Has(e.id)
}

// GetComponent returns e's T. It panics if e has none; use HasComponent or
// LookupComponent where absence is expected.
func GetComponent[T any](e *Entity) *T {
	s := mustLive(e)
	p, ok := ecs.PoolOf[T](s.pools)
	if !ok {
		panic(fmt.Errorf("entity %d: %w: no pool for %s", e.id, ecs.ErrMissingComponent, ecs.TypeOf[T]()))
	}
	c, err := p.Get(e.id)
	if err != nil {
		panic(err)
	}
	return c
}

func LookupComponent[T any](e *Entity) (*T, bool) {
	if e == nil || !e.Alive() {
		return nil, false
	}
	p, ok := ecs.PoolOf[T](e.scene.pools)
	if !ok {
		return nil, false
	}
	return p.Lookup(e.id)
}

// RemoveComponent detaches e's T. Missing pools or components are ignored.
func RemoveComponent[T any](e *Entity) {
	RemoveComponentType(e, ecs.TypeOf[T]())
}

func RemoveComponentType(e *Entity, t reflect.Type) {
	if !HasComponentType(e, t) {
		return
	}
	s := e.scene
	store, _ := s.pools.Get(t)
	if err := store.Remove(e.id); err != nil {
		panic(err)
	}
	event.Emit(s.events, event.ComponentRemoved{EntityID: e.id, Component: t})
}

// CopyComponents copies every component src has and dst lacks onto dst, and
// returns how many were copied. Values are copied shallowly: pointers, slices
// and maps inside a component end up shared.
func CopyComponents(dst, src *Entity) int {
	s := mustLive(dst)
	if mustLive(src) != s {
		panic(fmt.Errorf("copy from entity %d: %w", src.id, ErrForeignEntity))
	}
	n := 0
	for _, store := range s.pools.Stores() {
		if !store.Has(src.id) || store.Has(dst.id) {
			continue
		}
		if err := store.Clone(src.id, dst.id); err != nil {
			panic(err)
		}
		event.Emit(s.events, event.ComponentAdded{EntityID: dst.id, Component: store.Type()})
		n++
	}
	return n
}

func mustLive(e *Entity) *Scene {
	if e == nil {
		panic(fmt.Errorf("nil entity: %w", ErrDetached))
	}
	if e.scene == nil {
		panic(fmt.Errorf("entity %d: %w", e.id, ErrDetached))
	}
	return e.scene
}

func (s *Scene) warnDuplicate(e *Entity, t reflect.Type) {
	s.log.Warn("entity already has a component of this type",
		zap.Uint64("entity", uint64(e.id)),
		zap.String("name", e.name),
		zap.Stringer("component", t),
	)
}
