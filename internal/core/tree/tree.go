// Package tree implements an owning forest stored in an arena. Nodes are
// addressed by generational NodeID handles rather than pointers, so parent
// links survive arena growth and a handle to a removed node is detected
// instead of aliasing whatever reuses its slot.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrDetached = errors.New("node detached")
	ErrCycle    = errors.New("node cannot be moved under its own subtree")
)

// NodeID encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. Generations start at 1, so the zero NodeID never names a
// live node.
type NodeID uint64

// Nil is the absent node; as a parent it means the root level.
const Nil NodeID = 0

func newNodeID(index uint32, generation uint32) NodeID {
	return NodeID(uint64(generation)<<32 | uint64(index))
}

func (id NodeID) Index() uint32      { return uint32(id) }
func (id NodeID) Generation() uint32 { return uint32(id >> 32) }
func (id NodeID) IsNil() bool        { return id == Nil }

type node[T any] struct {
	value      T
	parent     NodeID
	children   []NodeID
	depth      int
	generation uint32
	live       bool
}

// Tree is a forest of T values. Root-level nodes belong to the tree itself;
// every other node belongs to its parent, and removing a node removes its
// whole subtree.
type Tree[T any] struct {
	nodes []node[T]
	free  []uint32
	roots []NodeID
	count int
}

func New[T any](capacity int) *Tree[T] {
	return &Tree[T]{
		nodes: make([]node[T], 0, capacity),
		free:  make([]uint32, 0, capacity/4),
	}
}

// Len returns the number of attached nodes.
func (t *Tree[T]) Len() int { return t.count }

// Valid reports whether id names an attached node.
func (t *Tree[T]) Valid(id NodeID) bool {
	_, ok := t.node(id)
	return ok
}

func (t *Tree[T]) node(id NodeID) (*node[T], bool) {
	idx := id.Index()
	if id.IsNil() || int(idx) >= len(t.nodes) {
		return nil, false
	}
	n := &t.nodes[idx]
	if !n.live || n.generation != id.Generation() {
		return nil, false
	}
	return n, true
}

// Emplace attaches v as the last child of parent, or at the root level when
// parent is Nil.
func (t *Tree[T]) Emplace(parent NodeID, v T) (NodeID, error) {
	depth := 0
	if !parent.IsNil() {
		p, ok := t.node(parent)
		if !ok {
			return Nil, fmt.Errorf("emplace under %d: %w", parent, ErrDetached)
		}
		depth = p.depth + 1
	}

	var idx uint32
	if len(t.free) > 0 {
		idx = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
	} else {
		idx = uint32(len(t.nodes))
		t.nodes = append(t.nodes, node[T]{})
	}
	n := &t.nodes[idx]
	n.generation++
	if n.generation == 0 {
		// generation 0 at index 0 would encode Nil
		n.generation = 1
	}
	n.value = v
	n.parent = parent
	n.children = n.children[:0]
	n.depth = depth
	n.live = true

	id := newNodeID(idx, n.generation)
	if parent.IsNil() {
		t.roots = append(t.roots, id)
	} else {
		p, _ := t.node(parent)
		p.children = append(p.children, id)
	}
	t.count++
	return id, nil
}

// Value returns the payload of id.
func (t *Tree[T]) Value(id NodeID) (T, bool) {
	n, ok := t.node(id)
	if !ok {
		var zero T
		return zero, false
	}
	return n.value, true
}

func (t *Tree[T]) Set(id NodeID, v T) error {
	n, ok := t.node(id)
	if !ok {
		return fmt.Errorf("set %d: %w", id, ErrDetached)
	}
	n.value = v
	return nil
}

// Parent returns the parent of id; root-level nodes report Nil, true.
func (t *Tree[T]) Parent(id NodeID) (NodeID, bool) {
	n, ok := t.node(id)
	if !ok {
		return Nil, false
	}
	return n.parent, true
}

// Children returns a copy of id's child list in insertion order.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	n, ok := t.node(id)
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// Roots returns a copy of the root-level nodes in insertion order.
func (t *Tree[T]) Roots() []NodeID {
	return slices.Clone(t.roots)
}

// Depth is 0 for root-level nodes and -1 for detached ones.
func (t *Tree[T]) Depth(id NodeID) int {
	n, ok := t.node(id)
	if !ok {
		return -1
	}
	return n.depth
}

// All yields every attached node in pre-order: parents before children,
// siblings in insertion order.
func (t *Tree[T]) All() iter.Seq2[NodeID, T] {
	return func(yield func(NodeID, T) bool) {
		t.preorder(t.roots, yield)
	}
}

// Subtree yields id and all of its descendants in pre-order.
func (t *Tree[T]) Subtree(id NodeID) iter.Seq2[NodeID, T] {
	return func(yield func(NodeID, T) bool) {
		if !t.Valid(id) {
			return
		}
		t.preorder([]NodeID{id}, yield)
	}
}

func (t *Tree[T]) preorder(start []NodeID, yield func(NodeID, T) bool) {
	stack := make([]NodeID, 0, 32)
	for i := len(start) - 1; i >= 0; i-- {
		stack = append(stack, start[i])
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := t.node(id)
		if !ok {
			continue
		}
		if !yield(id, n.value) {
			return
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

// Walk calls fn for every node in pre-order until fn returns false.
func (t *Tree[T]) Walk(fn func(NodeID, T) bool) {
	t.preorder(t.roots, fn)
}

// Find returns the first node in pre-order whose value satisfies match.
func (t *Tree[T]) Find(match func(T) bool) (NodeID, bool) {
	for id, v := range t.All() {
		if match(v) {
			return id, true
		}
	}
	return Nil, false
}

// Remove detaches id and destroys its subtree. visit, if non-nil, sees every
// removed node in pre-order while its value is still readable. The number of
// removed nodes is returned.
func (t *Tree[T]) Remove(id NodeID, visit func(NodeID, T)) (int, error) {
	n, ok := t.node(id)
	if !ok {
		return 0, fmt.Errorf("remove %d: %w", id, ErrDetached)
	}
	t.unlink(id, n.parent)

	var removed []NodeID
	t.preorder([]NodeID{id}, func(nid NodeID, v T) bool {
		removed = append(removed, nid)
		if visit != nil {
			visit(nid, v)
		}
		return true
	})

	for _, nid := range removed {
		rn := &t.nodes[nid.Index()]
		var zero T
		rn.value = zero
		rn.parent = Nil
		rn.children = rn.children[:0]
		rn.live = false
		t.free = append(t.free, nid.Index())
	}
	t.count -= len(removed)
	return len(removed), nil
}

// Move re-attaches id as the last child of parent (Nil for the root level)
// and recomputes depths across the moved subtree.
func (t *Tree[T]) Move(id, parent NodeID) error {
	n, ok := t.node(id)
	if !ok {
		return fmt.Errorf("move %d: %w", id, ErrDetached)
	}
	depth := 0
	if !parent.IsNil() {
		p, ok := t.node(parent)
		if !ok {
			return fmt.Errorf("move under %d: %w", parent, ErrDetached)
		}
		if t.isAncestorOrSelf(id, parent) {
			return fmt.Errorf("move %d under %d: %w", id, parent, ErrCycle)
		}
		depth = p.depth + 1
	}
	if n.parent == parent {
		return nil
	}

	t.unlink(id, n.parent)
	n.parent = parent
	if parent.IsNil() {
		t.roots = append(t.roots, id)
	} else {
		p, _ := t.node(parent)
		p.children = append(p.children, id)
	}

	delta := depth - n.depth
	for nid := range t.Subtree(id) {
		t.nodes[nid.Index()].depth += delta
	}
	return nil
}

// isAncestorOrSelf reports whether a lies on the path from b up to the root.
func (t *Tree[T]) isAncestorOrSelf(a, b NodeID) bool {
	for cur := b; !cur.IsNil(); {
		if cur == a {
			return true
		}
		n, ok := t.node(cur)
		if !ok {
			return false
		}
		cur = n.parent
	}
	return false
}

func (t *Tree[T]) unlink(id, parent NodeID) {
	if parent.IsNil() {
		if i := slices.Index(t.roots, id); i >= 0 {
			t.roots = slices.Delete(t.roots, i, i+1)
		}
		return
	}
	if p, ok := t.node(parent); ok {
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
}
