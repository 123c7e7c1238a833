package system

import (
	"time"

	"github.com/corgi/engine/internal/component"
	"github.com/corgi/engine/internal/core/ecs"
	coresys "github.com/corgi/engine/internal/core/system"
	"github.com/corgi/engine/internal/scene"
)

// MovementSystem integrates Velocity into Position for every enabled entity.
// Phase 1 (Update).
type MovementSystem struct {
	scene *scene.Scene
}

func NewMovementSystem(s *scene.Scene) *MovementSystem {
	return &MovementSystem{scene: s}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	pos, ok := ecs.PoolOf[component.Position](s.scene.Pools())
	if !ok {
		return
	}
	vel, ok := ecs.PoolOf[component.Velocity](s.scene.Pools())
	if !ok {
		return
	}
	sec := dt.Seconds()
	dir := s.scene.Entities()
	ecs.Each2(pos, vel, func(id ecs.EntityID, p *component.Position, v *component.Velocity) {
		if e, ok := dir.Lookup(id); !ok || !e.Enabled() {
			return
		}
		p.X += v.DX * sec
		p.Y += v.DY * sec
	})
}
