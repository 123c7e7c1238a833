package event

import (
	"reflect"

	"github.com/corgi/engine/internal/core/ecs"
)

// Lifecycle events emitted by a scene.

type EntityCreated struct {
	EntityID ecs.EntityID
	Name     string
}

// EntityDestroyed is emitted once per entity of a destroyed subtree.
type EntityDestroyed struct {
	EntityID ecs.EntityID
	Name     string
}

type ComponentAdded struct {
	EntityID  ecs.EntityID
	Component reflect.Type
}

type ComponentRemoved struct {
	EntityID  ecs.EntityID
	Component reflect.Type
}
