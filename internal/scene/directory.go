package scene

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/corgi/engine/internal/core/ecs"
	"github.com/corgi/engine/internal/core/event"
	"github.com/corgi/engine/internal/core/tree"
)

// Directory stores the entities of one scene. It combines the hierarchy tree,
// which owns the entities, with an id index for O(1) lookup.
type Directory struct {
	scene       *Scene
	tree        *tree.Tree[*Entity]
	byID        map[ecs.EntityID]*Entity
	ids         *ecs.EntityPool
	defaultName string
}

func newDirectory(s *Scene, capacity int, defaultName string) *Directory {
	return &Directory{
		scene:       s,
		tree:        tree.New[*Entity](capacity),
		byID:        make(map[ecs.EntityID]*Entity, capacity),
		ids:         ecs.NewEntityPool(),
		defaultName: defaultName,
	}
}

// Len returns the number of live entities.
func (d *Directory) Len() int { return len(d.byID) }

// Emplace creates a root-level entity. Names need not be unique.
func (d *Directory) Emplace(name string) *Entity {
	e := d.newEntity(name)
	d.attach(e, nil)
	return e
}

// EmplaceChild creates an entity as the last child of parent.
func (d *Directory) EmplaceChild(parent *Entity, name string) (*Entity, error) {
	if err := d.check(parent); err != nil {
		return nil, err
	}
	e := d.newEntity(name)
	d.attach(e, parent)
	return e, nil
}

// EmplaceCopy creates a root-level entity with src's name, tags, layer and
// enabled flag. Components are not copied; see CopyComponents. A nil src is a
// programmer error and panics with ErrDetached.
func (d *Directory) EmplaceCopy(src *Entity) *Entity {
	mustSource(src)
	e := d.newEntity("")
	e.copyMetadata(src)
	d.attach(e, nil)
	return e
}

// EmplaceMove creates a root-level entity that takes over src's metadata.
// src keeps its id, place in the tree and components; its name falls back to
// the default entity name and its tags are dropped. A nil src panics with
// ErrDetached.
func (d *Directory) EmplaceMove(src *Entity) *Entity {
	mustSource(src)
	e := d.newEntity("")
	e.copyMetadata(src)
	src.name = d.defaultName
	src.tags = nil
	d.attach(e, nil)
	return e
}

func mustSource(src *Entity) {
	if src == nil {
		panic(fmt.Errorf("emplace from nil entity: %w", ErrDetached))
	}
}

func (d *Directory) newEntity(name string) *Entity {
	if name == "" {
		name = d.defaultName
	}
	e := &Entity{
		id:      d.ids.Create(),
		enabled: true,
		scene:   d.scene,
	}
	e.SetName(name)
	return e
}

func (d *Directory) attach(e *Entity, parent *Entity) {
	pnode := tree.Nil
	if parent != nil {
		pnode = parent.node
	}
	node, err := d.tree.Emplace(pnode, e)
	if err != nil {
		// parent was checked by the caller
		panic(err)
	}
	e.node = node
	e.depth = d.tree.Depth(node)
	d.byID[e.id] = e

	d.scene.log.Debug("entity created",
		zap.Uint64("entity", uint64(e.id)),
		zap.String("name", e.name),
		zap.Int("depth", e.depth),
	)
	event.Emit(d.scene.events, event.EntityCreated{EntityID: e.id, Name: e.name})
}

// Lookup returns the live entity with the given id.
func (d *Directory) Lookup(id ecs.EntityID) (*Entity, bool) {
	e, ok := d.byID[id]
	return e, ok
}

// Find returns the first entity named name in pre-order. With duplicate names
// the one reached first wins.
func (d *Directory) Find(name string) (*Entity, bool) {
	name = norm.NFC.String(name)
	node, ok := d.tree.Find(func(e *Entity) bool { return e.name == name })
	if !ok {
		return nil, false
	}
	e, _ := d.tree.Value(node)
	return e, true
}

// FindByTag returns every entity carrying tag, in pre-order.
func (d *Directory) FindByTag(tag string) []*Entity {
	var out []*Entity
	for _, e := range d.tree.All() {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// All yields every entity in pre-order: parents before children, siblings in
// creation order.
func (d *Directory) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range d.tree.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// Walk calls fn for every entity in pre-order until fn returns false.
func (d *Directory) Walk(fn func(*Entity) bool) {
	d.tree.Walk(func(_ tree.NodeID, e *Entity) bool { return fn(e) })
}

// Roots returns the root-level entities in creation order.
func (d *Directory) Roots() []*Entity {
	return d.resolve(d.tree.Roots())
}

// Children returns e's direct children in creation order.
func (d *Directory) Children(e *Entity) []*Entity {
	if d.check(e) != nil {
		return nil
	}
	return d.resolve(d.tree.Children(e.node))
}

// Parent returns e's parent; root-level and destroyed entities have none.
func (d *Directory) Parent(e *Entity) (*Entity, bool) {
	if d.check(e) != nil {
		return nil, false
	}
	pnode, _ := d.tree.Parent(e.node)
	if pnode.IsNil() {
		return nil, false
	}
	return d.tree.Value(pnode)
}

func (d *Directory) resolve(nodes []tree.NodeID) []*Entity {
	out := make([]*Entity, 0, len(nodes))
	for _, n := range nodes {
		if e, ok := d.tree.Value(n); ok {
			out = append(out, e)
		}
	}
	return out
}

// SetParent moves e, with its subtree, under parent, or to the root level when
// parent is nil. Depths of the moved entities are updated.
func (d *Directory) SetParent(e, parent *Entity) error {
	if err := d.check(e); err != nil {
		return err
	}
	pnode := tree.Nil
	if parent != nil {
		if err := d.check(parent); err != nil {
			return err
		}
		pnode = parent.node
	}
	if err := d.tree.Move(e.node, pnode); err != nil {
		return fmt.Errorf("reparent entity %d: %w", e.id, err)
	}
	for node, moved := range d.tree.Subtree(e.node) {
		moved.depth = d.tree.Depth(node)
	}
	return nil
}

// SetEnabledTree sets the enabled flag on e and every descendant.
func (d *Directory) SetEnabledTree(e *Entity, enabled bool) error {
	if err := d.check(e); err != nil {
		return err
	}
	for _, sub := range d.tree.Subtree(e.node) {
		sub.enabled = enabled
	}
	return nil
}

// Destroy removes e and its whole subtree. Every removed entity leaves the id
// index and loses all of its components before Destroy returns.
func (d *Directory) Destroy(e *Entity) error {
	if err := d.check(e); err != nil {
		return err
	}
	var removed []*Entity
	if _, err := d.tree.Remove(e.node, func(_ tree.NodeID, r *Entity) {
		removed = append(removed, r)
	}); err != nil {
		return fmt.Errorf("destroy entity %d: %w", e.id, err)
	}
	for _, r := range removed {
		d.evict(r)
	}
	return nil
}

func (d *Directory) evict(e *Entity) {
	comps := d.scene.pools.RemoveAll(e.id, func(s ecs.Store) {
		event.Emit(d.scene.events, event.ComponentRemoved{EntityID: e.id, Component: s.Type()})
	})
	delete(d.byID, e.id)

	d.scene.log.Debug("entity destroyed",
		zap.Uint64("entity", uint64(e.id)),
		zap.String("name", e.name),
		zap.Int("components", comps),
	)
	event.Emit(d.scene.events, event.EntityDestroyed{EntityID: e.id, Name: e.name})

	e.scene = nil
	e.node = tree.Nil
}

func (d *Directory) check(e *Entity) error {
	if e == nil || e.scene == nil {
		return ErrDetached
	}
	if e.scene != d.scene {
		return fmt.Errorf("entity %d: %w", e.id, ErrForeignEntity)
	}
	return nil
}
