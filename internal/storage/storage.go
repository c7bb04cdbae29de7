// Package storage defines the object store client used by the gateway.
// The provider is selected at startup. The MinIO client speaks to any
// S3-compatible endpoint; the S3 client uses the AWS SDK directly.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Verb is the HTTP method a presigned URL is issued for.
type Verb string

const (
	// VerbGet grants read access to one object.
	VerbGet Verb = "GET"
	// VerbPut grants write access to one object.
	VerbPut Verb = "PUT"
)

// ParseVerb maps a case-insensitive method name onto a Verb.
func ParseVerb(s string) (Verb, error) {
	switch Verb(strings.ToUpper(strings.TrimSpace(s))) {
	case VerbGet:
		return VerbGet, nil
	case VerbPut:
		return VerbPut, nil
	}
	return "", fmt.Errorf("unsupported verb %q", s)
}

// ObjectInfo describes one listed object.
type ObjectInfo struct {
	Key          string
	StorageClass string
	Size         int64
	Bucket       string
}

// Object is an open object read from the store.
// The caller is responsible for closing Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// PutResult is the store's answer to a successful write.
type PutResult struct {
	StatusCode int
	ETag       string
}

// Store is the interface for the object store operations the gateway needs.
type Store interface {
	// ListBuckets returns the bucket names visible to the configured credentials.
	ListBuckets(ctx context.Context) ([]string, error)
	// ListObjects returns every object in bucket.
	ListObjects(ctx context.Context, bucket string) ([]ObjectInfo, error)
	// PutObject writes size bytes from data under key.
	PutObject(ctx context.Context, bucket, key, contentType string, data io.Reader, size int64) (PutResult, error)
	// GetObject opens the object at key for reading.
	GetObject(ctx context.Context, bucket, key string) (*Object, error)
	// Presign returns a URL granting verb access to key for the given duration.
	Presign(ctx context.Context, bucket, key string, verb Verb, expiry time.Duration) (string, error)
}

// BucketProvisioner is optionally implemented by stores that can create buckets.
type BucketProvisioner interface {
	// EnsureBucket creates bucket if it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error
}
