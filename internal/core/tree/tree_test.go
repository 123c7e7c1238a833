package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(t *Tree[string]) []string {
	var out []string
	for _, v := range t.All() {
		out = append(out, v)
	}
	return out
}

func mustEmplace(t *testing.T, tr *Tree[string], parent NodeID, v string) NodeID {
	t.Helper()
	id, err := tr.Emplace(parent, v)
	require.NoError(t, err)
	return id
}

func TestPreorderTraversal(t *testing.T) {
	tr := New[string](0)
	a := mustEmplace(t, tr, Nil, "A")
	mustEmplace(t, tr, Nil, "B")
	mustEmplace(t, tr, a, "A1")

	assert.Equal(t, []string{"A", "A1", "B"}, values(tr))
	assert.Equal(t, 3, tr.Len())
}

func TestDepthFollowsParent(t *testing.T) {
	tr := New[string](0)
	a := mustEmplace(t, tr, Nil, "a")
	b := mustEmplace(t, tr, a, "b")
	c := mustEmplace(t, tr, b, "c")

	assert.Equal(t, 0, tr.Depth(a))
	assert.Equal(t, 1, tr.Depth(b))
	assert.Equal(t, 2, tr.Depth(c))

	p, ok := tr.Parent(c)
	require.True(t, ok)
	assert.Equal(t, b, p)
	p, ok = tr.Parent(a)
	require.True(t, ok)
	assert.True(t, p.IsNil())
	assert.Equal(t, []NodeID{b}, tr.Children(a))
	assert.Equal(t, []NodeID{a}, tr.Roots())
}

func TestFindFirstMatchInPreorder(t *testing.T) {
	tr := New[string](0)
	a := mustEmplace(t, tr, Nil, "root")
	dup := mustEmplace(t, tr, a, "dup")
	mustEmplace(t, tr, Nil, "dup")

	id, ok := tr.Find(func(v string) bool { return v == "dup" })
	require.True(t, ok)
	assert.Equal(t, dup, id)

	_, ok = tr.Find(func(v string) bool { return v == "nope" })
	assert.False(t, ok)
}

func TestRemoveSubtree(t *testing.T) {
	tr := New[string](0)
	a := mustEmplace(t, tr, Nil, "A")
	a1 := mustEmplace(t, tr, a, "A1")
	a11 := mustEmplace(t, tr, a1, "A11")
	b := mustEmplace(t, tr, Nil, "B")

	var visited []string
	n, err := tr.Remove(a, func(_ NodeID, v string) { visited = append(visited, v) })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"A", "A1", "A11"}, visited)

	for _, id := range []NodeID{a, a1, a11} {
		assert.False(t, tr.Valid(id))
		assert.Equal(t, -1, tr.Depth(id))
	}
	assert.True(t, tr.Valid(b))
	assert.Equal(t, []string{"B"}, values(tr))
	assert.Equal(t, 1, tr.Len())

	_, err = tr.Remove(a, nil)
	assert.ErrorIs(t, err, ErrDetached)
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	tr := New[string](0)
	old := mustEmplace(t, tr, Nil, "old")
	_, err := tr.Remove(old, nil)
	require.NoError(t, err)

	fresh := mustEmplace(t, tr, Nil, "fresh")
	assert.Equal(t, old.Index(), fresh.Index(), "slot is recycled")
	assert.NotEqual(t, old, fresh)

	_, ok := tr.Value(old)
	assert.False(t, ok)
	_, err = tr.Emplace(old, "child")
	assert.ErrorIs(t, err, ErrDetached)
	v, ok := tr.Value(fresh)
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestGenerationSkipsZeroOnWrap(t *testing.T) {
	tr := New[string](0)
	old := mustEmplace(t, tr, Nil, "old")
	_, err := tr.Remove(old, nil)
	require.NoError(t, err)
	tr.nodes[old.Index()].generation = math.MaxUint32

	fresh := mustEmplace(t, tr, Nil, "fresh")
	assert.Equal(t, uint32(0), fresh.Index())
	assert.Equal(t, uint32(1), fresh.Generation())
	assert.False(t, fresh.IsNil())
	assert.True(t, tr.Valid(fresh))
	assert.Equal(t, []NodeID{fresh}, tr.Roots())
}

func TestMoveRecomputesDepth(t *testing.T) {
	tr := New[string](0)
	a := mustEmplace(t, tr, Nil, "A")
	b := mustEmplace(t, tr, Nil, "B")
	b1 := mustEmplace(t, tr, b, "B1")
	b2 := mustEmplace(t, tr, b1, "B2")

	require.NoError(t, tr.Move(b, a))
	assert.Equal(t, 1, tr.Depth(b))
	assert.Equal(t, 2, tr.Depth(b1))
	assert.Equal(t, 3, tr.Depth(b2))
	assert.Equal(t, []NodeID{a}, tr.Roots())
	assert.Equal(t, []string{"A", "B", "B1", "B2"}, values(tr))

	require.NoError(t, tr.Move(b1, Nil))
	assert.Equal(t, 0, tr.Depth(b1))
	assert.Equal(t, 1, tr.Depth(b2))
	assert.Equal(t, []string{"A", "B", "B1", "B2"}, values(tr))
	assert.Empty(t, tr.Children(b))
}

func TestMoveRejectsCycle(t *testing.T) {
	tr := New[string](0)
	a := mustEmplace(t, tr, Nil, "A")
	a1 := mustEmplace(t, tr, a, "A1")

	assert.ErrorIs(t, tr.Move(a, a1), ErrCycle)
	assert.ErrorIs(t, tr.Move(a, a), ErrCycle)
	assert.Equal(t, 0, tr.Depth(a))
}

func TestSubtreeAndWalkStopEarly(t *testing.T) {
	tr := New[string](0)
	a := mustEmplace(t, tr, Nil, "A")
	mustEmplace(t, tr, a, "A1")
	mustEmplace(t, tr, a, "A2")
	mustEmplace(t, tr, Nil, "B")

	var sub []string
	for _, v := range tr.Subtree(a) {
		sub = append(sub, v)
	}
	assert.Equal(t, []string{"A", "A1", "A2"}, sub)

	var seen []string
	tr.Walk(func(_ NodeID, v string) bool {
		seen = append(seen, v)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"A", "A1"}, seen)

	require.NoError(t, tr.Set(a, "Z"))
	v, _ := tr.Value(a)
	assert.Equal(t, "Z", v)
}
