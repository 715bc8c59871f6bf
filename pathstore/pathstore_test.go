package pathstore

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pangraph/model"
)

var queriesLengths = map[model.NodeID]uint64{1: 7, 2: 1, 3: 1, 4: 3}

func lengthOf(m map[model.NodeID]uint64) func(model.NodeID) uint64 {
	return func(id model.NodeID) uint64 { return m[id] }
}

// queriesStore builds the canonical path fixture:
// x=1+,2+,4+  y=1+,3+,4+  z=1+,2+ over lengths 1:7 2:1 3:1 4:3.
func queriesStore(t *testing.T) *Store {
	t.Helper()

	s := New()
	require.NoError(t, s.Put("x", []model.Step{model.Forward(1), model.Forward(2), model.Forward(4)}))
	require.NoError(t, s.Put("y", []model.Step{model.Forward(1), model.Forward(3), model.Forward(4)}))
	require.NoError(t, s.Put("z", []model.Step{model.Forward(1), model.Forward(2)}))
	require.NoError(t, s.Build(context.Background(), lengthOf(queriesLengths)))
	return s
}

func TestNamesAndSteps(t *testing.T) {
	s := queriesStore(t)

	names := s.Names()
	sort.Strings(names)
	assert.Equal(t, []string{"x", "y", "z"}, names)
	assert.Equal(t, 3, s.Count())

	assert.True(t, s.Has("x"))
	assert.False(t, s.Has("nope"))

	assert.Equal(t, []model.Step{model.Forward(1), model.Forward(2), model.Forward(4)}, s.Steps("x"))
	assert.Nil(t, s.Steps("nope"))

	// Returned walks are copies; mutating one must not leak in.
	steps := s.Steps("x")
	steps[0] = model.Backward(99)
	assert.Equal(t, model.Forward(1), s.Steps("x")[0])
}

func TestPutDuplicateName(t *testing.T) {
	s := New()
	require.NoError(t, s.Put("x", nil))
	assert.Error(t, s.Put("x", nil))
}

func TestLength(t *testing.T) {
	s := queriesStore(t)

	for name, want := range map[string]uint64{"x": 11, "y": 11, "z": 8} {
		got, ok := s.Length(name)
		assert.True(t, ok)
		assert.Equal(t, want, got, "length of %s", name)
	}

	_, ok := s.Length("nope")
	assert.False(t, ok)
}

func TestPositionForward(t *testing.T) {
	s := queriesStore(t)

	tests := []struct {
		name string
		pos  uint64
		want model.PathPosition
	}{
		{"x", 0, model.PathPosition{NodeID: 1, Offset: 0, IsForward: true}},
		{"x", 5, model.PathPosition{NodeID: 1, Offset: 5, IsForward: true}},
		// A boundary position belongs to the later step at offset 0.
		{"x", 7, model.PathPosition{NodeID: 2, Offset: 0, IsForward: true}},
		{"x", 8, model.PathPosition{NodeID: 4, Offset: 0, IsForward: true}},
		{"x", 10, model.PathPosition{NodeID: 4, Offset: 2, IsForward: true}},
		{"y", 8, model.PathPosition{NodeID: 4, Offset: 0, IsForward: true}},
	}
	for _, tt := range tests {
		got, ok := s.Position(tt.name, tt.pos)
		assert.True(t, ok, "%s@%d", tt.name, tt.pos)
		assert.Equal(t, tt.want, got, "%s@%d", tt.name, tt.pos)
	}
}

func TestPositionAbsent(t *testing.T) {
	s := queriesStore(t)

	// The upper bound is exclusive: pos == length is already absent.
	_, ok := s.Position("x", 11)
	assert.False(t, ok)
	_, ok = s.Position("x", 100)
	assert.False(t, ok)
	_, ok = s.Position("nope", 0)
	assert.False(t, ok)
}

func TestPositionReverseStep(t *testing.T) {
	// inv = 1+,2-,3+ over lengths 1:7 2:4 3:2. The reverse step
	// reports node-forward offsets: path offset k in node of length L
	// maps to L-1-k.
	s := New()
	require.NoError(t, s.Put("inv", []model.Step{model.Forward(1), model.Backward(2), model.Forward(3)}))
	require.NoError(t, s.Build(context.Background(), lengthOf(map[model.NodeID]uint64{1: 7, 2: 4, 3: 2})))

	tests := []struct {
		pos  uint64
		want model.PathPosition
	}{
		{6, model.PathPosition{NodeID: 1, Offset: 6, IsForward: true}},
		{7, model.PathPosition{NodeID: 2, Offset: 3, IsForward: false}},
		{9, model.PathPosition{NodeID: 2, Offset: 1, IsForward: false}},
		{10, model.PathPosition{NodeID: 2, Offset: 0, IsForward: false}},
		{11, model.PathPosition{NodeID: 3, Offset: 0, IsForward: true}},
		{12, model.PathPosition{NodeID: 3, Offset: 1, IsForward: true}},
	}
	for _, tt := range tests {
		got, ok := s.Position("inv", tt.pos)
		assert.True(t, ok, "inv@%d", tt.pos)
		assert.Equal(t, tt.want, got, "inv@%d", tt.pos)
	}

	_, ok := s.Position("inv", 13)
	assert.False(t, ok)
}

func TestPositionSkipsZeroLengthSteps(t *testing.T) {
	// A zero-length step occupies no coordinates; the boundary
	// position resolves to the next step with sequence.
	s := New()
	require.NoError(t, s.Put("p", []model.Step{model.Forward(1), model.Forward(9), model.Forward(2)}))
	require.NoError(t, s.Build(context.Background(), lengthOf(map[model.NodeID]uint64{1: 7, 2: 1})))

	got, ok := s.Position("p", 7)
	assert.True(t, ok)
	assert.Equal(t, model.PathPosition{NodeID: 2, Offset: 0, IsForward: true}, got)
}

func TestPathsOnNode(t *testing.T) {
	s := queriesStore(t)

	on1 := s.PathsOnNode(1)
	sort.Strings(on1)
	assert.Equal(t, []string{"x", "y", "z"}, on1)

	assert.Equal(t, []string{"y"}, s.PathsOnNode(3))

	on4 := s.PathsOnNode(4)
	sort.Strings(on4)
	assert.Equal(t, []string{"x", "y"}, on4)

	assert.Empty(t, s.PathsOnNode(999))
}

func TestPathsOnNodeDuplicateVisits(t *testing.T) {
	s := New()
	require.NoError(t, s.Put("w", []model.Step{model.Forward(1), model.Forward(2), model.Backward(1)}))
	require.NoError(t, s.Build(context.Background(), lengthOf(queriesLengths)))

	// One entry per visit: w steps on node 1 twice.
	assert.Equal(t, []string{"w", "w"}, s.PathsOnNode(1))
}

func TestPathsOnEdge(t *testing.T) {
	s := queriesStore(t)

	assert.Equal(t, []string{"x", "z"}, s.PathsOnEdge(model.Forward(1), model.Forward(2)))
	assert.Equal(t, []string{"x"}, s.PathsOnEdge(model.Forward(2), model.Forward(4)))
	assert.Equal(t, []string{"y"}, s.PathsOnEdge(model.Forward(3), model.Forward(4)))

	// Orientation is part of the transition identity.
	assert.Empty(t, s.PathsOnEdge(model.Forward(1), model.Backward(2)))
	assert.Empty(t, s.PathsOnEdge(model.Forward(1), model.Forward(4)))
	assert.Empty(t, s.PathsOnEdge(model.Forward(999), model.Forward(1)))
}

func TestOnPath(t *testing.T) {
	s := queriesStore(t)

	assert.True(t, s.OnPath("x", 2))
	assert.False(t, s.OnPath("y", 2))
	assert.False(t, s.OnPath("x", 999))
	assert.False(t, s.OnPath("nope", 1))
}

func TestNextNodeOnPath(t *testing.T) {
	s := queriesStore(t)

	next, ok := s.NextNodeOnPath("x", 1)
	assert.True(t, ok)
	assert.Equal(t, model.NodeID(2), next)

	next, ok = s.NextNodeOnPath("y", 1)
	assert.True(t, ok)
	assert.Equal(t, model.NodeID(3), next)

	// Final step has no successor.
	_, ok = s.NextNodeOnPath("x", 4)
	assert.False(t, ok)

	_, ok = s.NextNodeOnPath("x", 3) // not on x
	assert.False(t, ok)
	_, ok = s.NextNodeOnPath("nope", 1)
	assert.False(t, ok)
	_, ok = s.NextNodeOnPath("x", 999)
	assert.False(t, ok)
}

func TestLengthInvariant(t *testing.T) {
	s := queriesStore(t)

	for _, name := range s.Names() {
		var sum uint64
		for _, st := range s.Steps(name) {
			sum += queriesLengths[st.ID]
		}
		got, ok := s.Length(name)
		assert.True(t, ok)
		assert.Equal(t, sum, got, "Σ step lengths == path length for %s", name)
	}
}
