// Package scene ties the storage core together: a Scene owns the entity
// directory, the component pools, the system runner and the event bus.
// Nothing in a scene is safe for concurrent use; all calls are expected on the
// goroutine that drives the tick loop.
package scene

import (
	"time"

	"go.uber.org/zap"

	"github.com/corgi/engine/internal/config"
	"github.com/corgi/engine/internal/core/ecs"
	"github.com/corgi/engine/internal/core/event"
	"github.com/corgi/engine/internal/core/system"
)

type Scene struct {
	name         string
	log          *zap.Logger
	pools        *ecs.Registry
	entities     *Directory
	systems      *system.Runner
	events       *event.Bus
	destroyQueue []*Entity
	elapsed      time.Duration
}

// New creates an empty scene. A nil log discards output.
func New(cfg config.SceneConfig, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("scene").With(zap.String("scene", cfg.Name))
	s := &Scene{
		name:         cfg.Name,
		log:          log,
		pools:        ecs.NewRegistry(cfg.PoolCapacity),
		systems:      system.NewRunner(log),
		events:       event.NewBus(),
		destroyQueue: make([]*Entity, 0, 64),
	}
	name := cfg.DefaultEntityName
	if name == "" {
		name = "Unnamed"
	}
	s.entities = newDirectory(s, cfg.EntityCapacity, name)
	s.systems.Register(&dispatchSystem{bus: s.events})
	s.systems.Register(&cleanupSystem{scene: s})
	return s
}

func (s *Scene) Name() string            { return s.name }
func (s *Scene) Logger() *zap.Logger     { return s.log }
func (s *Scene) Pools() *ecs.Registry    { return s.pools }
func (s *Scene) Entities() *Directory    { return s.entities }
func (s *Scene) Systems() *system.Runner { return s.systems }
func (s *Scene) Events() *event.Bus      { return s.events }
func (s *Scene) Elapsed() time.Duration  { return s.elapsed }

// Register adds a system to the scene's runner.
func (s *Scene) Register(sys system.System) { s.systems.Register(sys) }

// BeforeUpdate runs the pre-update phase.
func (s *Scene) BeforeUpdate(dt time.Duration) error {
	return s.systems.TickPhase(system.PhasePreUpdate, dt)
}

// Update runs the update phase and records dt as the last frame time.
func (s *Scene) Update(dt time.Duration) error {
	s.elapsed = dt
	return s.systems.TickPhase(system.PhaseUpdate, dt)
}

// AfterUpdate runs the post-update phase.
func (s *Scene) AfterUpdate(dt time.Duration) error {
	return s.systems.TickPhase(system.PhasePostUpdate, dt)
}

// Tick runs one full frame: pre-update (which dispatches last frame's
// events), update, post-update and cleanup. A failing system stops the frame
// and its error is returned; queued destructions then wait for the next
// successful cleanup.
func (s *Scene) Tick(dt time.Duration) error {
	s.elapsed = dt
	return s.systems.Tick(dt)
}

// MarkForDestruction queues e for destruction at the end of the tick. Systems
// use it instead of Destroy while pools are being iterated.
func (s *Scene) MarkForDestruction(e *Entity) {
	if e == nil || e.scene != s {
		return
	}
	s.destroyQueue = append(s.destroyQueue, e)
}

// FlushDestroyQueue destroys every queued entity and returns how many queued
// entries were still alive. Entities already removed with an ancestor are
// skipped.
func (s *Scene) FlushDestroyQueue() int {
	n := 0
	for i, e := range s.destroyQueue {
		if e.Alive() && s.entities.Destroy(e) == nil {
			n++
		}
		s.destroyQueue[i] = nil
	}
	s.destroyQueue = s.destroyQueue[:0]
	return n
}

// Close destroys every entity and empties all pools. The scene stays usable.
func (s *Scene) Close() {
	for _, root := range s.entities.Roots() {
		_ = s.entities.Destroy(root)
	}
	s.destroyQueue = s.destroyQueue[:0]
	s.pools.Reset()
}

