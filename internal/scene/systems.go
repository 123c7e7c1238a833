package scene

import (
	"time"

	"github.com/corgi/engine/internal/core/event"
	"github.com/corgi/engine/internal/core/system"
)

// dispatchSystem delivers the previous tick's events. It is registered before
// any user system, so it runs first in the pre-update phase.
type dispatchSystem struct {
	bus *event.Bus
}

func (s *dispatchSystem) Phase() system.Phase { return system.PhasePreUpdate }

func (s *dispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// cleanupSystem flushes the deferred entity destruction queue at tick end.
type cleanupSystem struct {
	scene *Scene
}

func (s *cleanupSystem) Phase() system.Phase { return system.PhaseCleanup }

func (s *cleanupSystem) Update(_ time.Duration) {
	s.scene.FlushDestroyQueue()
}
