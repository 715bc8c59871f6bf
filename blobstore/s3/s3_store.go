// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Cold loads of genome-scale graph blobs use the ranged multi-part
// downloader from feature/s3/manager via the blobstore.Fetcher
// interface.
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/pangraph/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client     *s3.Client
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix prepends a key prefix to all blob names (e.g. "graphs/").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Store for the given bucket using the default AWS
// configuration chain (environment, shared config, instance roles).
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewFromClient(s3.NewFromConfig(cfg), bucket, optFns...), nil
}

// NewFromClient creates a Store over an existing S3 client.
func NewFromClient(client *s3.Client, bucket string, optFns ...Option) *Store {
	s := &Store{
		client:     client,
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for sequential reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return out.Body, nil
}

// Fetch downloads the complete blob to w using ranged multi-part
// requests. It implements blobstore.Fetcher.
func (s *Store) Fetch(ctx context.Context, name string, w io.WriterAt) (int64, error) {
	n, err := s.downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return 0, mapNotFound(err)
	}
	return n, nil
}

// Put stores a blob.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	})
	return err
}

// Delete removes a blob. S3 deletes are idempotent, so missing blobs
// are not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err
}

func mapNotFound(err error) error {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return blobstore.ErrNotFound
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return blobstore.ErrNotFound
	}
	return err
}
