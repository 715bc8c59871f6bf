// Package pangraph is an embedded, read-only query engine for
// pangenome variation graphs: DNA sequence nodes joined by bidirected
// adjacency edges, overlaid with named linear paths representing
// haplotypes or reference sequences.
//
// # Quick Start
//
//	ctx := context.Background()
//	g, err := pangraph.Load(ctx, "graph.gfa")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	g.NodeSequence(1)          // "GATTACA"
//	g.Successors(1)            // edges leaving either strand of node 1
//	g.PathNames()              // ["x", "y", "z"]
//	g.Project("x", 1_000_000)  // node/offset/strand under a path coordinate
//
// Load accepts GFA text (plain or gzip-compressed) and pangraph's own
// snapshot format, detected from the content. Graphs can also be
// loaded from object storage through the blobstore subpackages:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("graphs/"))
//	g, err := pangraph.LoadFromStore(ctx, store, "chr1.gfa.gz")
//
// # Concurrency
//
// A Graph is built once by Load and immutable afterwards. Every query
// is a pure, non-blocking read bounded by graph size — O(degree) for
// topology, O(log steps) for coordinate projection — so a single Graph
// can be shared across any number of goroutines without locking.
//
// # Absence vs. errors
//
// Loading a missing or malformed graph fails with a *LoadError.
// Queries never fail: an unknown node yields an empty sequence and
// zero length, an unknown path yields nil steps, and an out-of-range
// projection reports ok=false. See each method's documentation.
//
// # Key Features
//
//   - Bidirected topology: every edge is queryable from both strands
//     of both endpoints via its reverse-complement equivalent
//   - O(log steps) linear-to-graph coordinate projection over
//     prefix-sum indexes
//   - Path membership via Roaring bitmaps over sparse node id spaces
//   - Streaming GFA subset parser with transparent gzip decompression
//   - LZ4-compressed native snapshot format with self-describing header
//   - Object-storage loading (S3, MinIO) with local caching
//   - External odgi tool integration for format conversion
package pangraph
