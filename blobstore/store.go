// Package blobstore abstracts where persisted graphs live: a local
// directory, process memory, or S3-compatible object storage. Blobs
// are opaque byte streams — GFA files or pangraph snapshots — consumed
// sequentially by the loader.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing and retrieving immutable
// graph blobs.
type BlobStore interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Put stores a blob under the given name, replacing any previous
	// content atomically where the backend allows it.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}

// Fetcher is an optional interface for stores that can download a blob
// with backend-side parallelism (e.g. ranged multi-part downloads).
// CachingStore prefers it over a plain sequential copy.
type Fetcher interface {
	// Fetch writes the complete blob to w and returns its size.
	Fetch(ctx context.Context, name string, w io.WriterAt) (int64, error)
}
