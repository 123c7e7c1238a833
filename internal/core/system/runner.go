package system

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// ErrTickAborted wraps a panic raised by a system. The rest of the tick is
// skipped once it is returned.
var ErrTickAborted = errors.New("tick aborted")

// Runner executes systems in phase order each tick.
type Runner struct {
	systems []System
	sorted  bool
	log     *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		systems: make([]System, 0, 16),
		log:     log,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Len() int { return len(r.systems) }

// Tick runs every phase in order and stops at the first failing system.
func (r *Runner) Tick(dt time.Duration) error {
	r.ensureSorted()
	for _, s := range r.systems {
		if err := r.run(s, dt); err != nil {
			return err
		}
	}
	return nil
}

// TickPhase runs only the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) error {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() != phase {
			continue
		}
		if err := r.run(s, dt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) run(s System, dt time.Duration) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %s system %T: %v", ErrTickAborted, s.Phase(), s, v)
			r.log.Error("system failed",
				zap.Stringer("phase", s.Phase()),
				zap.String("system", fmt.Sprintf("%T", s)),
				zap.Any("panic", v),
			)
		}
	}()
	s.Update(dt)
	return nil
}

// ensureSorted orders systems by phase, keeping registration order within a
// phase.
func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
