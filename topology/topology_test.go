package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/pangraph/model"
)

// queriesIndex builds the canonical test topology:
// edges 1+→2+, 1+→3+, 2+→4+.
func queriesIndex() *Index {
	x := New()
	x.AddEdge(model.Forward(1), model.Forward(2))
	x.AddEdge(model.Forward(1), model.Forward(3))
	x.AddEdge(model.Forward(2), model.Forward(4))
	return x
}

func TestFollowEdges(t *testing.T) {
	x := queriesIndex()

	assert.Equal(t, []model.Handle{model.Forward(2), model.Forward(3)}, x.FollowEdges(model.Forward(1)))

	// The reverse view of 1+→2+ is only reachable from 2-.
	assert.Equal(t, []model.Handle{model.Backward(1)}, x.FollowEdges(model.Backward(2)))

	assert.Empty(t, x.FollowEdges(model.Backward(1)))
	assert.Empty(t, x.FollowEdges(model.Forward(999)))
}

func TestSuccessorsSweepsBothStrands(t *testing.T) {
	x := queriesIndex()

	succs := x.Successors(1)
	assert.Len(t, succs, 2)
	assert.Contains(t, succs, model.Edge{Node: 2, FromForward: true, ToForward: true})
	assert.Contains(t, succs, model.Edge{Node: 3, FromForward: true, ToForward: true})

	// Node 2 sees 2+→4+ and the bidirected equivalent 2-→1- of 1+→2+.
	succs2 := x.Successors(2)
	assert.Len(t, succs2, 2)
	assert.Contains(t, succs2, model.Edge{Node: 4, FromForward: true, ToForward: true})
	assert.Contains(t, succs2, model.Edge{Node: 1, FromForward: false, ToForward: false})

	assert.Empty(t, x.Successors(999))
}

func TestPredecessors(t *testing.T) {
	x := queriesIndex()

	preds2 := x.Predecessors(2)
	assert.Len(t, preds2, 2)
	assert.Contains(t, preds2, model.Edge{Node: 1, FromForward: true, ToForward: true})
	assert.Contains(t, preds2, model.Edge{Node: 4, FromForward: false, ToForward: false})

	// Node 1 has no incoming edge on its forward strand, but its
	// reverse strand is entered by the equivalents of 1+→2+ and 1+→3+.
	preds1 := x.Predecessors(1)
	assert.Len(t, preds1, 2)
	assert.Contains(t, preds1, model.Edge{Node: 2, FromForward: false, ToForward: false})
	assert.Contains(t, preds1, model.Edge{Node: 3, FromForward: false, ToForward: false})

	assert.Empty(t, x.Predecessors(999))
}

// Every registered edge must be discoverable from both endpoints via
// its reverse-complement equivalent.
func TestBidirectednessLaw(t *testing.T) {
	x := New()
	x.AddEdge(model.Forward(1), model.Backward(2))
	x.AddEdge(model.Backward(3), model.Forward(1))

	x.Edges(func(from, to model.Handle) bool {
		assert.True(t, x.HasEdge(from, to))
		assert.True(t, x.HasEdge(to.Flip(), from.Flip()))

		// Discoverable through the node-level sweeps on both ends.
		assert.Contains(t, x.Successors(from.ID), model.Edge{
			Node: to.ID, FromForward: from.IsForward(), ToForward: to.IsForward(),
		})
		assert.Contains(t, x.Predecessors(to.ID), model.Edge{
			Node: from.ID, FromForward: from.IsForward(), ToForward: to.IsForward(),
		})
		return true
	})
}

func TestParallelEdgesKeptDistinct(t *testing.T) {
	x := New()
	x.AddEdge(model.Forward(1), model.Forward(2))
	x.AddEdge(model.Forward(1), model.Forward(2))

	assert.Equal(t, uint64(2), x.EdgeCount())
	assert.Len(t, x.FollowEdges(model.Forward(1)), 2)
	assert.Len(t, x.Successors(1), 2)
	assert.Len(t, x.FollowEdges(model.Backward(2)), 2)
}

func TestSelfLoop(t *testing.T) {
	x := New()
	x.AddEdge(model.Forward(7), model.Forward(7))

	// A same-strand self-loop has a distinct reverse view 7-→7-.
	assert.Equal(t, []model.Handle{model.Forward(7)}, x.FollowEdges(model.Forward(7)))
	assert.Equal(t, []model.Handle{model.Backward(7)}, x.FollowEdges(model.Backward(7)))
	assert.Len(t, x.Successors(7), 2)
}

func TestSelfInverseLoopStoredOnce(t *testing.T) {
	x := New()
	// 7+→7-: the bidirected equivalent is the edge itself, so only one
	// adjacency entry may exist.
	x.AddEdge(model.Forward(7), model.Backward(7))

	assert.Equal(t, uint64(1), x.EdgeCount())
	assert.Equal(t, []model.Handle{model.Backward(7)}, x.FollowEdges(model.Forward(7)))
	assert.Empty(t, x.FollowEdges(model.Backward(7)))
	assert.Equal(t, []model.Edge{{Node: 7, FromForward: true, ToForward: false}}, x.Successors(7))
}

func TestDegree(t *testing.T) {
	x := queriesIndex()

	assert.Equal(t, 2, x.Degree(model.Forward(1)))
	assert.Equal(t, 1, x.Degree(model.Backward(2)))
	assert.Equal(t, 0, x.Degree(model.Backward(1)))
}
