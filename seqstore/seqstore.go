// Package seqstore holds the node sequences of a graph and answers
// sequence and length queries for both strands of a node.
//
// A Store is populated once by the loader and is immutable afterwards;
// every accessor is a pure read and safe for concurrent use.
package seqstore

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/pangraph/model"
)

// Store maps node ids to their forward-strand sequences.
//
// The id space may be sparse, so membership is tracked in a roaring
// bitmap rather than derived from a dense range.
type Store struct {
	seqs map[model.NodeID]string
	ids  *roaring64.Bitmap
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		seqs: make(map[model.NodeID]string),
		ids:  roaring64.New(),
	}
}

// Put registers a node's forward sequence. It is called by the loader
// during the build phase only; a second Put for the same id replaces
// the earlier sequence.
func (s *Store) Put(id model.NodeID, seq string) {
	s.seqs[id] = seq
	s.ids.Add(uint64(id))
}

// Has reports whether the node exists.
func (s *Store) Has(id model.NodeID) bool {
	return s.ids.Contains(uint64(id))
}

// Count returns the number of nodes in the store.
func (s *Store) Count() uint64 {
	return s.ids.GetCardinality()
}

// Sequence returns the forward-strand sequence of a node.
// Unknown ids yield the empty string; absence is a valid result.
func (s *Store) Sequence(id model.NodeID) string {
	return s.seqs[id]
}

// Length returns the sequence length of a node, 0 for unknown ids.
func (s *Store) Length(id model.NodeID) uint64 {
	return uint64(len(s.seqs[id]))
}

// OrientedSequence returns the sequence of a node as traversed by the
// given handle: the stored sequence for a forward handle, its reverse
// complement for a reverse handle.
func (s *Store) OrientedSequence(h model.Handle) string {
	seq := s.seqs[h.ID]
	if h.Reverse {
		return string(RevComp([]byte(seq)))
	}
	return seq
}

// IDs calls fn for every node id in ascending order. It returns early
// when fn returns false.
func (s *Store) IDs(fn func(id model.NodeID) bool) {
	it := s.ids.Iterator()
	for it.HasNext() {
		if !fn(model.NodeID(it.Next())) {
			return
		}
	}
}
