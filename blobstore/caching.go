package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// CachingStore wraps a (typically remote) BlobStore and materializes
// blobs into a local cache directory on first open. Graph blobs are
// immutable, so a cached copy never goes stale except through Put or
// Delete on this store, both of which invalidate it.
type CachingStore struct {
	inner   BlobStore
	dir     string
	group   singleflight.Group
	limiter *rate.Limiter
}

// CachingOption configures a CachingStore.
type CachingOption func(*CachingStore)

// WithDownloadLimit caps download bandwidth at bytesPerSec with the
// given burst, shaping cold-cache fetches of genome-scale graphs so
// they do not saturate shared links.
func WithDownloadLimit(bytesPerSec float64, burst int) CachingOption {
	return func(s *CachingStore) {
		s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), burst)
	}
}

// NewCachingStore creates a CachingStore caching into dir.
func NewCachingStore(inner BlobStore, dir string, optFns ...CachingOption) (*CachingStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &CachingStore{inner: inner, dir: dir}
	for _, fn := range optFns {
		fn(s)
	}
	return s, nil
}

func (s *CachingStore) cachePath(name string) string {
	// Blob names may contain slashes; flatten them so the cache stays
	// a single directory.
	return filepath.Join(s.dir, strings.ReplaceAll(name, "/", "__"))
}

// Open returns the cached copy of a blob, fetching it from the inner
// store on a cache miss. Concurrent opens of the same cold blob
// collapse into a single download.
func (s *CachingStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path := s.cachePath(name)
	if f, err := os.Open(path); err == nil {
		return f, nil
	}

	_, err, _ := s.group.Do(name, func() (any, error) {
		return nil, s.fill(ctx, name, path)
	})
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *CachingStore) fill(ctx context.Context, name, path string) error {
	tmp, err := os.CreateTemp(s.dir, ".fetch-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if f, ok := s.inner.(Fetcher); ok {
		_, err = f.Fetch(ctx, name, tmp)
	} else {
		err = s.copyFrom(ctx, name, tmp)
	}
	if err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *CachingStore) copyFrom(ctx context.Context, name string, w io.Writer) error {
	rc, err := s.inner.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	buf := make([]byte, 256*1024)
	for {
		n, rerr := rc.Read(buf)
		if n > 0 {
			if s.limiter != nil {
				if err := waitN(ctx, s.limiter, n); err != nil {
					return err
				}
			}
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

// waitN reserves n bytes from the limiter, splitting requests larger
// than the configured burst.
func waitN(ctx context.Context, l *rate.Limiter, n int) error {
	for n > 0 {
		chunk := n
		if chunk > l.Burst() {
			chunk = l.Burst()
		}
		if err := l.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Put writes through to the inner store and invalidates the cache.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	os.Remove(s.cachePath(name))
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob from the inner store and the cache.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	os.Remove(s.cachePath(name))
	return s.inner.Delete(ctx, name)
}
