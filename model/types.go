package model

import "fmt"

// NodeID is the stable identifier of a node in the graph.
// The id space is assigned by the graph builder and may be sparse.
type NodeID uint64

// Handle is an oriented reference to a node: the node traversed either
// 5'→3' along its stored sequence (forward) or along its reverse
// complement (reverse).
//
// Handles are comparable value types and are safe to use as map keys.
type Handle struct {
	ID      NodeID
	Reverse bool
}

// Forward returns the forward-orientation handle for a node.
func Forward(id NodeID) Handle {
	return Handle{ID: id}
}

// Backward returns the reverse-orientation handle for a node.
func Backward(id NodeID) Handle {
	return Handle{ID: id, Reverse: true}
}

// Flip returns the handle for the opposite strand of the same node.
func (h Handle) Flip() Handle {
	return Handle{ID: h.ID, Reverse: !h.Reverse}
}

// IsForward reports whether the handle traverses the node forward.
func (h Handle) IsForward() bool {
	return !h.Reverse
}

// String returns a GFA-style rendering, e.g. "42+" or "42-".
func (h Handle) String() string {
	if h.Reverse {
		return fmt.Sprintf("%d-", h.ID)
	}
	return fmt.Sprintf("%d+", h.ID)
}

// Step is one handle occurrence within a path's ordered walk.
type Step = Handle

// Edge describes one oriented adjacency as seen from a query node.
//
// Node is the far endpoint: the target for successor queries and the
// source for predecessor queries. FromForward and ToForward give the
// strand of the source and target endpoint of the transition.
type Edge struct {
	Node        NodeID
	FromForward bool
	ToForward   bool
}

// PathPosition is the result of projecting a linear path coordinate
// into the graph.
//
// Offset is 0-based and always measured from the start of the node's
// forward strand, regardless of the orientation the path traverses the
// node with. IsForward reports that traversal orientation.
type PathPosition struct {
	NodeID    NodeID
	Offset    uint64
	IsForward bool
}

// String returns a rendering like "node 7 @3 (+)".
func (p PathPosition) String() string {
	strand := "+"
	if !p.IsForward {
		strand = "-"
	}
	return fmt.Sprintf("node %d @%d (%s)", p.NodeID, p.Offset, strand)
}
