// Package testutil provides the shared graph fixtures used across the
// pangraph test suites.
package testutil

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/hupe1980/pangraph/model"
)

// QueriesGFA is the canonical query-test graph:
//
//	nodes  1=GATTACA  2=T  3=G  4=GTC
//	edges  1+→2+  1+→3+  2+→4+
//	paths  x=1+,2+,4+  y=1+,3+,4+  z=1+,2+
//
// Path y steps through 3 and 4 without a recorded 3+→4+ link; GFA does
// not require links under paths.
const QueriesGFA = "H\tVN:Z:1.0\n" +
	"S\t1\tGATTACA\n" +
	"S\t2\tT\n" +
	"S\t3\tG\n" +
	"S\t4\tGTC\n" +
	"L\t1\t+\t2\t+\t0M\n" +
	"L\t1\t+\t3\t+\t0M\n" +
	"L\t2\t+\t4\t+\t0M\n" +
	"P\tx\t1+,2+,4+\t*\n" +
	"P\ty\t1+,3+,4+\t*\n" +
	"P\tz\t1+,2+\t*\n"

// InversionGFA exercises reverse-oriented path steps:
//
//	nodes  1=GATTACA  2=ACGT  3=TT
//	edges  1+→2-  2-→3+
//	path   inv=1+,2-,3+
const InversionGFA = "S\t1\tGATTACA\n" +
	"S\t2\tACGT\n" +
	"S\t3\tTT\n" +
	"L\t1\t+\t2\t-\t0M\n" +
	"L\t2\t-\t3\t+\t0M\n" +
	"P\tinv\t1+,2-,3+\t*\n"

// QueriesLengths are the node lengths of QueriesGFA.
var QueriesLengths = map[model.NodeID]uint64{1: 7, 2: 1, 3: 1, 4: 3}

// QueriesSteps are the path walks of QueriesGFA.
var QueriesSteps = map[string][]model.Step{
	"x": {model.Forward(1), model.Forward(2), model.Forward(4)},
	"y": {model.Forward(1), model.Forward(3), model.Forward(4)},
	"z": {model.Forward(1), model.Forward(2)},
}

// GzipBytes gzip-compresses data.
func GzipBytes(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}
