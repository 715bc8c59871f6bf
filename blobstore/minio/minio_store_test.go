package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/pangraph/blobstore"
)

var _ blobstore.BlobStore = (*Store)(nil)

func TestKeyPrefix(t *testing.T) {
	s := &Store{bucket: "b", prefix: "graphs/"}
	assert.Equal(t, "graphs/chr1.gfa", s.key("chr1.gfa"))

	s = &Store{bucket: "b"}
	assert.Equal(t, "chr1.gfa", s.key("chr1.gfa"))
}
