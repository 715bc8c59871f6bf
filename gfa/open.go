package gfa

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Open opens a GFA file for reading, transparently decompressing
// gzip-compressed inputs. Compression is detected from the magic
// bytes, not the file name.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

// NewReader wraps r, transparently decompressing a gzip stream.
// Closing the returned reader closes r when r is an io.Closer.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &reader{Reader: zr, closers: closersOf(zr, r)}, nil
	}
	return &reader{Reader: br, closers: closersOf(nil, r)}, nil
}

type reader struct {
	io.Reader
	closers []io.Closer
}

func (r *reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func closersOf(zr io.Closer, r io.Reader) []io.Closer {
	var cs []io.Closer
	if zr != nil {
		cs = append(cs, zr)
	}
	if c, ok := r.(io.Closer); ok {
		cs = append(cs, c)
	}
	return cs
}
