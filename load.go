package pangraph

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hupe1980/pangraph/blobstore"
	"github.com/hupe1980/pangraph/gfa"
	"github.com/hupe1980/pangraph/model"
	"github.com/hupe1980/pangraph/pathstore"
	"github.com/hupe1980/pangraph/seqstore"
	"github.com/hupe1980/pangraph/snapshot"
	"github.com/hupe1980/pangraph/topology"
)

// Load reads a persisted graph from a file and builds an immutable
// Graph over it. The format — pangraph snapshot, GFA text, or
// gzip-compressed GFA text — is detected from the content, not the
// file name. Failures are reported as *LoadError.
func Load(ctx context.Context, path string, optFns ...Option) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErr(path, err)
	}
	defer f.Close()
	return LoadFromReader(ctx, f, path, optFns...)
}

// LoadFromStore reads a persisted graph blob from a BlobStore and
// builds an immutable Graph over it.
func LoadFromStore(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Graph, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, loadErr(name, err)
	}
	defer rc.Close()
	return LoadFromReader(ctx, rc, name, optFns...)
}

// LoadFromReader reads a persisted graph from r and builds an
// immutable Graph over it. source names the input in errors and logs.
func LoadFromReader(ctx context.Context, r io.Reader, source string, optFns ...Option) (*Graph, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	g, err := load(ctx, r, source, opts)
	took := time.Since(start)

	opts.metricsCollector.RecordLoad(took, err)
	if err != nil {
		opts.logger.LogLoad(ctx, source, 0, 0, 0, took, err)
		return nil, err
	}
	opts.logger.LogLoad(ctx, source, g.NodeCount(), g.EdgeCount(), uint64(g.paths.Count()), took, nil)
	return g, nil
}

func load(ctx context.Context, r io.Reader, source string, opts options) (*Graph, error) {
	b := &builder{
		seqs:  seqstore.New(),
		topo:  topology.New(),
		paths: pathstore.New(),
	}

	br := bufio.NewReader(r)
	prefix, err := br.Peek(len(snapshot.Magic))
	if err != nil && err != io.EOF {
		return nil, loadErr(source, err)
	}

	if snapshot.IsSnapshot(prefix) {
		err = snapshot.Read(br, b)
	} else {
		var rc io.ReadCloser
		rc, err = gfa.NewReader(br)
		if err == nil {
			err = gfa.Parse(rc, b)
			if cerr := rc.Close(); err == nil {
				err = cerr
			}
		}
	}
	if err != nil {
		return nil, loadErr(source, err)
	}

	if opts.strict {
		if err := b.validate(); err != nil {
			return nil, loadErr(source, err)
		}
	}

	if err := b.paths.Build(ctx, b.seqs.Length); err != nil {
		return nil, loadErr(source, err)
	}

	return &Graph{seqs: b.seqs, topo: b.topo, paths: b.paths, opts: opts}, nil
}

// builder is the record sink shared by the GFA parser and the snapshot
// reader; it populates the three stores in a single streaming pass.
type builder struct {
	seqs  *seqstore.Store
	topo  *topology.Index
	paths *pathstore.Store
}

func (b *builder) Segment(id model.NodeID, seq string) error {
	b.seqs.Put(id, seq)
	return nil
}

func (b *builder) Link(from, to model.Handle) error {
	b.topo.AddEdge(from, to)
	return nil
}

func (b *builder) Path(name string, steps []model.Step) error {
	return b.paths.Put(name, steps)
}

// validate rejects structurally inconsistent inputs: links or path
// steps referencing a segment with no sequence record. Record order is
// free in GFA, so this runs after the full pass.
func (b *builder) validate() error {
	var bad error
	b.topo.Edges(func(from, to model.Handle) bool {
		if !b.seqs.Has(from.ID) {
			bad = fmt.Errorf("link references unknown segment %d", from.ID)
		} else if !b.seqs.Has(to.ID) {
			bad = fmt.Errorf("link references unknown segment %d", to.ID)
		}
		return bad == nil
	})
	if bad != nil {
		return bad
	}
	for _, name := range b.paths.Names() {
		for _, st := range b.paths.Steps(name) {
			if !b.seqs.Has(st.ID) {
				return fmt.Errorf("path %q references unknown segment %d", name, st.ID)
			}
		}
	}
	return nil
}
