package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: dispatch last tick's events, prepare state
	PhaseUpdate                  // 1: game logic
	PhasePostUpdate              // 2: follow-up work that reads this tick's results
	PhaseCleanup                 // 3: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every per-tick system implements. Systems read and
// write component pools directly and must not destroy entities while another
// system iterates the affected pools; use the scene's destroy queue instead.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Func adapts a plain function into a System.
type Func struct {
	P  Phase
	Fn func(dt time.Duration)
}

func (f Func) Phase() Phase            { return f.P }
func (f Func) Update(dt time.Duration) { f.Fn(dt) }
