package pangraph

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/pangraph/model"
	"github.com/hupe1980/pangraph/pathstore"
	"github.com/hupe1980/pangraph/seqstore"
	"github.com/hupe1980/pangraph/snapshot"
	"github.com/hupe1980/pangraph/topology"
)

// Graph is an immutable, in-memory pangenome variation graph.
//
// A Graph is created by Load and never mutated afterwards; all methods
// are pure reads and safe for concurrent use without locking. Results
// are copies or fresh slices, never views into internal storage.
type Graph struct {
	seqs  *seqstore.Store
	topo  *topology.Index
	paths *pathstore.Store

	opts options
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() uint64 {
	return g.seqs.Count()
}

// EdgeCount returns the number of physical edges in the graph. Each
// bidirected edge counts once, regardless of how many oriented views
// it is queryable through.
func (g *Graph) EdgeCount() uint64 {
	return g.topo.EdgeCount()
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id model.NodeID) bool {
	return g.seqs.Has(id)
}

// NodeSequence returns the forward-strand sequence of a node.
// Unknown ids yield the empty string.
func (g *Graph) NodeSequence(id model.NodeID) string {
	return g.seqs.Sequence(id)
}

// NodeLength returns the sequence length of a node, 0 for unknown ids.
func (g *Graph) NodeLength(id model.NodeID) uint64 {
	return g.seqs.Length(id)
}

// OrientedSequence returns the sequence of a node as traversed by the
// handle: the stored sequence forward, its reverse complement on the
// reverse strand.
func (g *Graph) OrientedSequence(h model.Handle) string {
	return g.seqs.OrientedSequence(h)
}

// FollowEdges returns the handles adjacent to exactly this oriented
// handle. Unknown nodes yield nil.
func (g *Graph) FollowEdges(h model.Handle) []model.Handle {
	return g.topo.FollowEdges(h)
}

// Successors returns every edge leaving the node, swept across both
// strands: an edge registered as u(+)→v(+) is reported from v only as
// v(-)→u(-), so both orientations of the node are queried and each
// result's FromForward records the strand that produced it. Parallel
// edges appear once per registration; unknown nodes yield nil.
func (g *Graph) Successors(id model.NodeID) []model.Edge {
	return g.topo.Successors(id)
}

// Predecessors returns every edge entering the node, the symmetric
// construction to Successors. Each result's Node is the source
// endpoint. Unknown nodes yield nil.
func (g *Graph) Predecessors(id model.NodeID) []model.Edge {
	return g.topo.Predecessors(id)
}

// PathNames returns the names of all paths. Order is not part of the
// contract.
func (g *Graph) PathNames() []string {
	return g.paths.Names()
}

// HasPath reports whether a path with the given name exists.
func (g *Graph) HasPath(name string) bool {
	return g.paths.Has(name)
}

// PathLength returns the total nucleotide length of a path. The second
// result is false for unknown names.
func (g *Graph) PathLength(name string) (uint64, bool) {
	return g.paths.Length(name)
}

// PathSteps returns the ordered handle walk of a path, nil for unknown
// names.
func (g *Graph) PathSteps(name string) []model.Step {
	return g.paths.Steps(name)
}

// OnPath reports whether a path visits a node, in constant time.
func (g *Graph) OnPath(name string, id model.NodeID) bool {
	return g.paths.OnPath(name, id)
}

// PathsOnNode returns the names of paths stepping on a node, one entry
// per visit. Unknown nodes yield nil.
func (g *Graph) PathsOnNode(id model.NodeID) []string {
	return g.paths.PathsOnNode(id)
}

// PathsOnEdge returns the sorted, deduplicated names of paths
// containing the exact consecutive oriented transition from→to.
func (g *Graph) PathsOnEdge(from, to model.Handle) []string {
	return g.paths.PathsOnEdge(from, to)
}

// NextNodeOnPath returns the node visited immediately after the first
// step of the path on the given node, in either orientation. The
// second result is false when there is no such step.
func (g *Graph) NextNodeOnPath(name string, id model.NodeID) (model.NodeID, bool) {
	return g.paths.NextNodeOnPath(name, id)
}

// Project maps a 0-based linear offset along a path to the graph
// position it falls on. The second result is false when the path is
// unknown or pos ≥ PathLength(name) — absence, not an error.
//
// The lookup is a binary search over the path's prefix sums,
// O(log steps). A pos exactly on a step boundary belongs to the later
// step at offset 0. For reverse-oriented steps the returned Offset
// follows the node-forward convention: it is measured from the start
// of the node's forward strand (path-direction offset k in a node of
// length L yields Offset L-1-k) and IsForward is false.
func (g *Graph) Project(name string, pos uint64) (model.PathPosition, bool) {
	start := time.Now()
	p, ok := g.paths.Position(name, pos)
	g.opts.metricsCollector.RecordProject(time.Since(start), ok)
	return p, ok
}

// Snapshot writes the graph to w in pangraph's native snapshot format,
// using the codec configured at load time for the header. The output
// is deterministic for a given graph.
func (g *Graph) Snapshot(ctx context.Context, w io.Writer) error {
	start := time.Now()
	err := snapshot.Write(w, g.opts.codec, g.seqs, g.topo, g.paths)
	g.opts.metricsCollector.RecordSnapshot(time.Since(start), err)
	g.opts.logger.LogSnapshot(ctx, g.NodeCount(), g.EdgeCount(), uint64(g.paths.Count()), err)
	return err
}
