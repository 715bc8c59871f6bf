// Package pathstore holds the named linear traversals (haplotypes,
// reference sequences) of a graph and answers path enumeration,
// membership and coordinate queries.
//
// A Store is populated and indexed once by the loader and is immutable
// afterwards; every query is a pure read and safe for concurrent use.
package pathstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pangraph/model"
)

// path is one named walk plus its derived indexes.
type path struct {
	name  string
	steps []model.Step

	// prefix[i] is the path offset at which step i begins;
	// prefix[len(steps)] is the total path length.
	prefix []uint64

	// nodes is the set of node ids the walk visits, used for O(1)
	// membership checks. The id space is sparse, hence roaring.
	nodes *roaring64.Bitmap
}

// occurrence locates one step of one path on a node.
type occurrence struct {
	path int
	step int
}

// Store indexes all paths of a graph.
type Store struct {
	paths  []*path
	byName map[string]*path

	// occ lists, per node, every step of every path on that node,
	// ordered by path insertion order then step index.
	occ map[model.NodeID][]occurrence

	built bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		byName: make(map[string]*path),
		occ:    make(map[model.NodeID][]occurrence),
	}
}

// Put registers a path walk. It is called by the loader during the
// build phase only; Build must run before the store is queried.
func (s *Store) Put(name string, steps []model.Step) error {
	if _, ok := s.byName[name]; ok {
		return fmt.Errorf("duplicate path name %q", name)
	}
	p := &path{name: name, steps: steps}
	s.paths = append(s.paths, p)
	s.byName[name] = p
	return nil
}

// Build derives the per-path indexes: prefix sums for coordinate
// projection and node-membership bitmaps. Step lengths come from
// lengthOf, the node-length lookup of the sequence store.
//
// Prefix sums and bitmaps are independent per path and are built
// concurrently; the cross-path occurrence index is merged afterwards
// in insertion order so query results are deterministic.
func (s *Store) Build(ctx context.Context, lengthOf func(model.NodeID) uint64) error {
	g, _ := errgroup.WithContext(ctx)
	for _, p := range s.paths {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.prefix = make([]uint64, len(p.steps)+1)
			p.nodes = roaring64.New()
			for i, st := range p.steps {
				p.prefix[i+1] = p.prefix[i] + lengthOf(st.ID)
				p.nodes.Add(uint64(st.ID))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for pi, p := range s.paths {
		for si, st := range p.steps {
			s.occ[st.ID] = append(s.occ[st.ID], occurrence{path: pi, step: si})
		}
	}
	s.built = true
	return nil
}

// Count returns the number of paths.
func (s *Store) Count() int {
	return len(s.paths)
}

// Names returns all path names. Order is not part of the contract.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.paths))
	for _, p := range s.paths {
		names = append(names, p.name)
	}
	return names
}

// Has reports whether a path with the given name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Steps returns a copy of a path's walk, or nil for unknown names.
func (s *Store) Steps(name string) []model.Step {
	p, ok := s.byName[name]
	if !ok {
		return nil
	}
	steps := make([]model.Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Length returns the total nucleotide length of a path. The second
// result is false for unknown names.
func (s *Store) Length(name string) (uint64, bool) {
	p, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return p.prefix[len(p.prefix)-1], true
}

// OnPath reports whether a path visits a node, in constant time.
func (s *Store) OnPath(name string, id model.NodeID) bool {
	p, ok := s.byName[name]
	if !ok {
		return false
	}
	return p.nodes.Contains(uint64(id))
}

// PathsOnNode returns the names of paths stepping on a node, one entry
// per visit: a path that steps on the node twice appears twice.
// Unknown nodes yield nil.
func (s *Store) PathsOnNode(id model.NodeID) []string {
	occs := s.occ[id]
	if len(occs) == 0 {
		return nil
	}
	names := make([]string, len(occs))
	for i, o := range occs {
		names[i] = s.paths[o.path].name
	}
	return names
}

// PathsOnEdge returns the sorted, deduplicated names of paths that
// contain the exact consecutive oriented transition from→to.
func (s *Store) PathsOnEdge(from, to model.Handle) []string {
	seen := make(map[string]struct{})
	for _, o := range s.occ[from.ID] {
		p := s.paths[o.path]
		// Bitmap pre-check: the transition needs both endpoints.
		if !p.nodes.Contains(uint64(to.ID)) {
			continue
		}
		if p.steps[o.step] != from {
			continue
		}
		if o.step+1 < len(p.steps) && p.steps[o.step+1] == to {
			seen[p.name] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextNodeOnPath returns the node stepped on immediately after the
// first step of a path that visits the given node in either
// orientation. The second result is false when the path or node is
// unknown, the node is not on the path, or its first visit is the
// path's final step.
func (s *Store) NextNodeOnPath(name string, id model.NodeID) (model.NodeID, bool) {
	p, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	first := -1
	for _, o := range s.occ[id] {
		if s.paths[o.path] != p {
			continue
		}
		if first < 0 || o.step < first {
			first = o.step
		}
	}
	if first < 0 || first+1 >= len(p.steps) {
		return 0, false
	}
	return p.steps[first+1].ID, true
}

// Position projects a 0-based linear offset along a path to the node,
// in-node offset and orientation it falls on. The second result is
// false when the path is unknown or pos is at or past the path's end.
//
// The step holding pos is located by binary search over the prefix
// sums, O(log steps). A pos landing exactly on a step boundary belongs
// to the later step at offset 0. For reverse-oriented steps the
// returned offset follows the node-forward convention: it is measured
// from the start of the node's forward strand, so a path-direction
// offset k within a node of length L yields L-1-k.
func (s *Store) Position(name string, pos uint64) (model.PathPosition, bool) {
	p, ok := s.byName[name]
	if !ok {
		return model.PathPosition{}, false
	}
	total := p.prefix[len(p.prefix)-1]
	if pos >= total {
		return model.PathPosition{}, false
	}

	// Smallest i with prefix[i+1] > pos; then prefix[i] <= pos.
	i := sort.Search(len(p.steps), func(i int) bool {
		return p.prefix[i+1] > pos
	})

	st := p.steps[i]
	offset := pos - p.prefix[i]
	if st.Reverse {
		nodeLen := p.prefix[i+1] - p.prefix[i]
		return model.PathPosition{
			NodeID:    st.ID,
			Offset:    nodeLen - 1 - offset,
			IsForward: false,
		}, true
	}
	return model.PathPosition{NodeID: st.ID, Offset: offset, IsForward: true}, true
}
