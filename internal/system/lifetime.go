package system

import (
	"time"

	"github.com/corgi/engine/internal/component"
	"github.com/corgi/engine/internal/core/ecs"
	coresys "github.com/corgi/engine/internal/core/system"
	"github.com/corgi/engine/internal/scene"
)

// LifetimeSystem ticks down Lifetime components and queues expired entities
// for destruction. Destruction is deferred to the cleanup phase because the
// pool is being iterated here.
// Phase 2 (PostUpdate).
type LifetimeSystem struct {
	scene *scene.Scene
}

func NewLifetimeSystem(s *scene.Scene) *LifetimeSystem {
	return &LifetimeSystem{scene: s}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(dt time.Duration) {
	pool, ok := ecs.PoolOf[component.Lifetime](s.scene.Pools())
	if !ok {
		return
	}
	dir := s.scene.Entities()
	for id, l := range pool.All() {
		l.Remaining -= dt.Seconds()
		if l.Remaining > 0 {
			continue
		}
		if e, ok := dir.Lookup(id); ok {
			s.scene.MarkForDestruction(e)
		}
	}
}
