// Package gfa implements a streaming parser for the GFA1 subset used
// as the interchange text representation of pangenome graphs: S
// (segment), L (link) and P (path) records. Records are delivered to a
// Handler as they are read, so graphs larger than memory headroom can
// be streamed directly into their stores.
//
// Segment names must be unsigned integers; they become node ids.
// Link overlaps must be "0M" or "*" — blunt-end graphs only.
// H records and unrecognized record types are skipped.
package gfa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/pangraph/model"
)

// Handler receives parsed records in file order.
type Handler interface {
	Segment(id model.NodeID, seq string) error
	Link(from, to model.Handle) error
	Path(name string, steps []model.Step) error
}

// Parse reads GFA records from r and feeds them to h. The first
// malformed record aborts the parse with an error naming the line.
func Parse(r io.Reader, h Handler) error {
	sc := bufio.NewScanner(r)
	// Path records of genome-scale graphs run to tens of millions of
	// steps; lines can be far beyond the scanner default.
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		var err error
		switch line[0] {
		case 'S':
			err = parseSegment(line, h)
		case 'L':
			err = parseLink(line, h)
		case 'P':
			err = parsePath(line, h)
		default:
			// H, C, W and anything else: not part of the subset.
		}
		if err != nil {
			return fmt.Errorf("gfa: line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("gfa: read failed: %w", err)
	}
	return nil
}

func parseSegment(line string, h Handler) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return fmt.Errorf("segment record needs name and sequence")
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("segment name %q is not a node id: %w", fields[1], err)
	}
	seq := fields[2]
	if seq == "*" {
		seq = ""
	}
	return h.Segment(model.NodeID(id), seq)
}

func parseLink(line string, h Handler) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 6 {
		return fmt.Errorf("link record needs from, to and overlap")
	}
	from, err := parseHandle(fields[1], fields[2])
	if err != nil {
		return err
	}
	to, err := parseHandle(fields[3], fields[4])
	if err != nil {
		return err
	}
	if ov := fields[5]; ov != "0M" && ov != "*" {
		return fmt.Errorf("unsupported link overlap %q (blunt-end graphs only)", ov)
	}
	return h.Link(from, to)
}

func parsePath(line string, h Handler) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return fmt.Errorf("path record needs name and step list")
	}
	name := fields[1]
	if name == "" {
		return fmt.Errorf("path record has empty name")
	}
	raw := strings.Split(fields[2], ",")
	steps := make([]model.Step, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 2 {
			return fmt.Errorf("malformed path step %q", tok)
		}
		id, err := strconv.ParseUint(tok[:len(tok)-1], 10, 64)
		if err != nil {
			return fmt.Errorf("path step %q has no node id: %w", tok, err)
		}
		switch tok[len(tok)-1] {
		case '+':
			steps = append(steps, model.Forward(model.NodeID(id)))
		case '-':
			steps = append(steps, model.Backward(model.NodeID(id)))
		default:
			return fmt.Errorf("path step %q has no orientation", tok)
		}
	}
	return h.Path(name, steps)
}

func parseHandle(name, orient string) (model.Handle, error) {
	id, err := strconv.ParseUint(name, 10, 64)
	if err != nil {
		return model.Handle{}, fmt.Errorf("segment name %q is not a node id: %w", name, err)
	}
	switch orient {
	case "+":
		return model.Forward(model.NodeID(id)), nil
	case "-":
		return model.Backward(model.NodeID(id)), nil
	default:
		return model.Handle{}, fmt.Errorf("invalid orientation %q", orient)
	}
}
