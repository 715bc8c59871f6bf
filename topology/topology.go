// Package topology indexes the bidirected adjacency structure of a
// graph: which oriented handles can be reached from which.
//
// A physical edge u(+)→v(+) is usable in two directions: a walk leaving
// u on its forward strand enters v forward, and a walk leaving v on its
// reverse strand enters u reverse. AddEdge registers both directed
// views of the single physical edge, so FollowEdges on either endpoint
// sees it. Parallel edges stay distinct; nothing is deduplicated.
//
// The Index is populated once by the loader and immutable afterwards;
// all queries are pure reads and safe for concurrent use.
package topology

import "github.com/hupe1980/pangraph/model"

// Index holds per-handle adjacency lists.
type Index struct {
	// out[h] lists the handles reachable by leaving h rightwards.
	// in[h] lists the handles h' with an edge h'→h.
	out map[model.Handle][]model.Handle
	in  map[model.Handle][]model.Handle

	// edges keeps the physical edges in registration order, for
	// serialization and deterministic re-export.
	edges []edge
}

type edge struct {
	from, to model.Handle
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		out: make(map[model.Handle][]model.Handle),
		in:  make(map[model.Handle][]model.Handle),
	}
}

// AddEdge registers the physical edge from→to. It is called by the
// loader during the build phase only.
//
// Both directed views of the edge are recorded: from→to and its
// bidirected equivalent to.Flip()→from.Flip(). When the equivalent
// coincides with the edge itself (a self-loop that switches strands,
// u,o→u,¬o) only one view is recorded, mirroring store-once semantics.
func (x *Index) AddEdge(from, to model.Handle) {
	x.out[from] = append(x.out[from], to)
	x.in[to] = append(x.in[to], from)
	x.edges = append(x.edges, edge{from: from, to: to})

	eqFrom, eqTo := to.Flip(), from.Flip()
	if eqFrom == from && eqTo == to {
		return
	}
	x.out[eqFrom] = append(x.out[eqFrom], eqTo)
	x.in[eqTo] = append(x.in[eqTo], eqFrom)
}

// EdgeCount returns the number of physical edges registered.
func (x *Index) EdgeCount() uint64 {
	return uint64(len(x.edges))
}

// Edges calls fn for every physical edge in registration order. It
// returns early when fn returns false.
func (x *Index) Edges(fn func(from, to model.Handle) bool) {
	for _, e := range x.edges {
		if !fn(e.from, e.to) {
			return
		}
	}
}

// FollowEdges returns the handles adjacent to exactly this oriented
// handle. The caller owns the returned slice.
func (x *Index) FollowEdges(h model.Handle) []model.Handle {
	adj := x.out[h]
	if len(adj) == 0 {
		return nil
	}
	out := make([]model.Handle, len(adj))
	copy(out, adj)
	return out
}

// Successors returns every edge leaving either strand of a node.
//
// Both orientations must be swept: an edge registered as u(+)→v(+)
// surfaces as v(-)→u(-) only from the reverse handle of v, so querying
// a single strand misses half the neighborhood. Each result's
// FromForward records which strand of the node produced it.
func (x *Index) Successors(id model.NodeID) []model.Edge {
	var edges []model.Edge
	for _, from := range [2]model.Handle{model.Forward(id), model.Backward(id)} {
		for _, to := range x.out[from] {
			edges = append(edges, model.Edge{
				Node:        to.ID,
				FromForward: from.IsForward(),
				ToForward:   to.IsForward(),
			})
		}
	}
	return edges
}

// Predecessors returns every edge entering either strand of a node,
// the symmetric construction to Successors. Each result's Node is the
// source endpoint and ToForward records which strand of the queried
// node it enters.
func (x *Index) Predecessors(id model.NodeID) []model.Edge {
	var edges []model.Edge
	for _, to := range [2]model.Handle{model.Forward(id), model.Backward(id)} {
		for _, from := range x.in[to] {
			edges = append(edges, model.Edge{
				Node:        from.ID,
				FromForward: from.IsForward(),
				ToForward:   to.IsForward(),
			})
		}
	}
	return edges
}

// HasEdge reports whether the exact directed view from→to exists.
func (x *Index) HasEdge(from, to model.Handle) bool {
	for _, h := range x.out[from] {
		if h == to {
			return true
		}
	}
	return false
}

// Degree returns the number of adjacencies recorded for the handle.
func (x *Index) Degree(h model.Handle) int {
	return len(x.out[h])
}
