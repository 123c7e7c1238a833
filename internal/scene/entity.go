package scene

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/corgi/engine/internal/core/ecs"
	"github.com/corgi/engine/internal/core/tree"
)

// Layer groups entities for consumers such as renderers and physics.
type Layer uint8

// Entity is the identity and metadata of one scene object. It holds no
// component data: components live in the scene's pools, keyed by ID.
//
// An *Entity stays valid until it is destroyed; afterwards Alive reports false
// and Scene returns nil.
type Entity struct {
	id      ecs.EntityID
	name    string
	tags    []string
	layer   Layer
	enabled bool
	depth   int
	node    tree.NodeID
	scene   *Scene
}

func (e *Entity) ID() ecs.EntityID { return e.id }

func (e *Entity) Name() string { return e.name }

// SetName stores n in Unicode NFC so that Find matches names regardless of how
// they were composed.
func (e *Entity) SetName(n string) { e.name = norm.NFC.String(n) }

// Tags returns the entity's tags in insertion order. The slice is shared.
func (e *Entity) Tags() []string { return e.tags }

// AddTag appends tag unless the entity already carries it. Tags are stored in
// NFC like names, and every tag lookup normalizes its argument the same way.
func (e *Entity) AddTag(tag string) {
	tag = norm.NFC.String(tag)
	if !slices.Contains(e.tags, tag) {
		e.tags = append(e.tags, tag)
	}
}

func (e *Entity) RemoveTag(tag string) {
	if i := slices.Index(e.tags, norm.NFC.String(tag)); i >= 0 {
		e.tags = slices.Delete(e.tags, i, i+1)
	}
}

func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.tags, norm.NFC.String(tag))
}

func (e *Entity) Layer() Layer         { return e.layer }
func (e *Entity) SetLayer(layer Layer) { e.layer = layer }

// Enabled reports whether systems should process the entity.
func (e *Entity) Enabled() bool     { return e.enabled }
func (e *Entity) SetEnabled(v bool) { e.enabled = v }
func (e *Entity) Enable()           { e.enabled = true }
func (e *Entity) Disable()          { e.enabled = false }

// Depth is the distance from the root level; root-level entities have depth 0.
func (e *Entity) Depth() int { return e.depth }

// Scene returns the owning scene, or nil once the entity is destroyed.
func (e *Entity) Scene() *Scene { return e.scene }

func (e *Entity) Alive() bool { return e.scene != nil }

// copyMetadata copies everything but identity from src.
func (e *Entity) copyMetadata(src *Entity) {
	e.name = src.name
	e.tags = slices.Clone(src.tags)
	e.layer = src.layer
	e.enabled = src.enabled
}
