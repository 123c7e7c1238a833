package ecs

// EntityID identifies an entity within one scene. IDs are issued in increasing
// order starting at 0 and are never reused while the issuing pool is alive.
type EntityID uint64

// EntityPool issues entity ids for a single scene. It replaces any
// process-wide counter: two scenes never share a pool. Liveness is tracked by
// the owner of the ids, not here.
type EntityPool struct {
	next EntityID
}

func NewEntityPool() *EntityPool {
	return &EntityPool{}
}

// Create issues a fresh id.
func (p *EntityPool) Create() EntityID {
	id := p.next
	p.next++
	return id
}
