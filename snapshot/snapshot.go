// Package snapshot implements pangraph's native persisted graph
// format: a self-describing header followed by LZ4-framed binary
// sections for sequences, edges and paths.
//
// Layout:
//
//	magic        8 bytes, "PGRAPH01"
//	codec name   uvarint length + bytes (plain, so the header below
//	             can be decoded with the right codec)
//	header       uvarint length + codec-encoded Header
//	body         LZ4 frame containing the three sections in order
//
// Writes are deterministic: nodes ascend by id, edges and paths keep
// their registration order. Loading the same snapshot twice therefore
// yields identical stores.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/pangraph/codec"
	"github.com/hupe1980/pangraph/gfa"
	"github.com/hupe1980/pangraph/model"
	"github.com/hupe1980/pangraph/pathstore"
	"github.com/hupe1980/pangraph/seqstore"
	"github.com/hupe1980/pangraph/topology"
)

// Magic identifies a pangraph snapshot file.
var Magic = [8]byte{'P', 'G', 'R', 'A', 'P', 'H', '0', '1'}

const headerVersion = 1

var (
	// ErrBadMagic is returned when the input is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnknownCodec is returned when the header codec recorded in
	// the file cannot be resolved by name.
	ErrUnknownCodec = errors.New("snapshot: unknown header codec")
)

// Header describes the snapshot contents.
type Header struct {
	Version int    `json:"version"`
	Nodes   uint64 `json:"nodes"`
	Edges   uint64 `json:"edges"`
	Paths   uint64 `json:"paths"`
}

// IsSnapshot reports whether the byte prefix carries the snapshot
// magic. Callers sniffing a source should pass at least 8 bytes.
func IsSnapshot(prefix []byte) bool {
	return len(prefix) >= len(Magic) && bytes.Equal(prefix[:len(Magic)], Magic[:])
}

// Write serializes the three stores to w using c for the header
// (codec.Default when nil).
func Write(w io.Writer, c codec.Codec, seqs *seqstore.Store, topo *topology.Index, paths *pathstore.Store) error {
	if c == nil {
		c = codec.Default
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(Magic[:]); err != nil {
		return err
	}
	if err := writeBytes(bw, []byte(c.Name())); err != nil {
		return err
	}

	hdr, err := c.Marshal(Header{
		Version: headerVersion,
		Nodes:   seqs.Count(),
		Edges:   topo.EdgeCount(),
		Paths:   uint64(paths.Count()),
	})
	if err != nil {
		return fmt.Errorf("snapshot: encode header: %w", err)
	}
	if err := writeBytes(bw, hdr); err != nil {
		return err
	}

	zw := lz4.NewWriter(bw)
	if err := writeBody(zw, seqs, topo, paths); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

func writeBody(w io.Writer, seqs *seqstore.Store, topo *topology.Index, paths *pathstore.Store) error {
	bw := bufio.NewWriter(w)

	var firstErr error
	seqs.IDs(func(id model.NodeID) bool {
		writeUvarint(bw, uint64(id))
		firstErr = writeBytes(bw, []byte(seqs.Sequence(id)))
		return firstErr == nil
	})
	if firstErr != nil {
		return firstErr
	}

	topo.Edges(func(from, to model.Handle) bool {
		writeHandle(bw, from)
		firstErr = writeHandle(bw, to)
		return firstErr == nil
	})
	if firstErr != nil {
		return firstErr
	}

	for _, name := range paths.Names() {
		if err := writeBytes(bw, []byte(name)); err != nil {
			return err
		}
		steps := paths.Steps(name)
		writeUvarint(bw, uint64(len(steps)))
		for _, st := range steps {
			if err := writeHandle(bw, st); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Read decodes a snapshot and streams its records to h, the same sink
// interface the GFA parser feeds. Record order matches write order.
func Read(r io.Reader, h gfa.Handler) error {
	br := bufio.NewReader(r)

	var magic [8]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrBadMagic, err)
	}
	if !IsSnapshot(magic[:]) {
		return ErrBadMagic
	}

	codecName, err := readBytes(br)
	if err != nil {
		return fmt.Errorf("snapshot: read codec name: %w", err)
	}
	c, ok := codec.ByName(string(codecName))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	hdrBytes, err := readBytes(br)
	if err != nil {
		return fmt.Errorf("snapshot: read header: %w", err)
	}
	var hdr Header
	if err := c.Unmarshal(hdrBytes, &hdr); err != nil {
		return fmt.Errorf("snapshot: decode header: %w", err)
	}
	if hdr.Version != headerVersion {
		return fmt.Errorf("snapshot: unsupported version %d", hdr.Version)
	}

	body := bufio.NewReader(lz4.NewReader(br))

	for i := uint64(0); i < hdr.Nodes; i++ {
		id, err := binary.ReadUvarint(body)
		if err != nil {
			return fmt.Errorf("snapshot: read node %d: %w", i, err)
		}
		seq, err := readBytes(body)
		if err != nil {
			return fmt.Errorf("snapshot: read node %d sequence: %w", i, err)
		}
		if err := h.Segment(model.NodeID(id), string(seq)); err != nil {
			return err
		}
	}

	for i := uint64(0); i < hdr.Edges; i++ {
		from, err := readHandle(body)
		if err != nil {
			return fmt.Errorf("snapshot: read edge %d: %w", i, err)
		}
		to, err := readHandle(body)
		if err != nil {
			return fmt.Errorf("snapshot: read edge %d: %w", i, err)
		}
		if err := h.Link(from, to); err != nil {
			return err
		}
	}

	for i := uint64(0); i < hdr.Paths; i++ {
		name, err := readBytes(body)
		if err != nil {
			return fmt.Errorf("snapshot: read path %d: %w", i, err)
		}
		n, err := binary.ReadUvarint(body)
		if err != nil {
			return fmt.Errorf("snapshot: read path %q: %w", name, err)
		}
		steps := make([]model.Step, n)
		for j := range steps {
			if steps[j], err = readHandle(body); err != nil {
				return fmt.Errorf("snapshot: read path %q step %d: %w", name, j, err)
			}
		}
		if err := h.Path(string(name), steps); err != nil {
			return err
		}
	}
	return nil
}

func writeUvarint(w *bufio.Writer, v uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	w.Write(buf[:n])
}

func writeBytes(w *bufio.Writer, b []byte) error {
	writeUvarint(w, uint64(len(b)))
	_, err := w.Write(b)
	return err
}

func writeHandle(w *bufio.Writer, h model.Handle) error {
	writeUvarint(w, uint64(h.ID))
	rev := byte(0)
	if h.Reverse {
		rev = 1
	}
	return w.WriteByte(rev)
}

func readBytes(r *bufio.Reader) ([]byte, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func readHandle(r *bufio.Reader) (model.Handle, error) {
	id, err := binary.ReadUvarint(r)
	if err != nil {
		return model.Handle{}, err
	}
	rev, err := r.ReadByte()
	if err != nil {
		return model.Handle{}, err
	}
	return model.Handle{ID: model.NodeID(id), Reverse: rev == 1}, nil
}
