// Package object implements the binary payload gateway: listing, multipart
// uploads carried as base64 text, base64 downloads and presigned URLs.
package object

import (
	"errors"
	"fmt"
	"time"

	"github.com/radif/gateway/internal/keys"
	"github.com/radif/gateway/internal/storage"
)

// Defaults applied by Config.ApplyDefaults.
const (
	DefaultMaxBodyBytes  int64 = 50 << 20
	DefaultPresignTTL          = 5 * time.Hour
	DefaultPresignMaxTTL       = 7 * 24 * time.Hour
	defaultContentType         = "application/octet-stream"
	defaultStorageClass        = "STANDARD"
)

// Config is passed to the gateway at construction.
type Config struct {
	// MaxBodyBytes bounds a decoded upload body and a downloaded object.
	MaxBodyBytes int64
	// PresignTTL is used when the caller does not ask for a ttl.
	PresignTTL time.Duration
	// PresignMaxTTL caps caller-supplied ttls.
	PresignMaxTTL time.Duration
	// UploadConcurrency > 1 buffers every part first and writes them in parallel.
	UploadConcurrency int
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.PresignTTL == 0 {
		c.PresignTTL = DefaultPresignTTL
	}
	if c.PresignMaxTTL == 0 {
		c.PresignMaxTTL = DefaultPresignMaxTTL
	}
	if c.UploadConcurrency == 0 {
		c.UploadConcurrency = 1
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max body bytes must be positive"))
	}
	if c.PresignTTL <= 0 {
		errs = append(errs, errors.New("presign ttl must be positive"))
	}
	if c.PresignTTL > c.PresignMaxTTL {
		errs = append(errs, fmt.Errorf("presign ttl %s exceeds max %s", c.PresignTTL, c.PresignMaxTTL))
	}
	if c.UploadConcurrency < 1 {
		errs = append(errs, errors.New("upload concurrency must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("object: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// UploadRequest is one upload call as it arrives from the transport.
type UploadRequest struct {
	Bucket string
	// Body is the base64 text of a multipart body.
	Body        string
	ContentType string
	Directives  keys.Directives
}

// Status is the outcome of storing one part.
type Status string

const (
	StatusStored   Status = "stored"
	StatusRejected Status = "store-rejected"
	StatusFailed   Status = "internal-error"
)

// UploadResult describes what happened to one uploaded file.
type UploadResult struct {
	FileName    string `json:"fileName"    example:"My File.pdf"`
	Key         string `json:"key"         example:"0b6f7c1e-6a53-4c1b-9d7e-3f1e4c2a9b10.pdf"`
	ContentType string `json:"contentType" example:"application/pdf"`
	Size        int64  `json:"size"        example:"52344"`
	Status      Status `json:"status"      example:"stored"`
	StatusCode  int    `json:"statusCode,omitempty" example:"200"`
	Message     string `json:"message,omitempty"`
}

// UploadResponse lists per-file results in the order the parts were read.
type UploadResponse struct {
	Results []UploadResult `json:"results"`
	Stored  int            `json:"stored"`
	Failed  int            `json:"failed"`
}

// ListBucketsResponse is the answer to ListBuckets.
type ListBucketsResponse struct {
	Buckets []string `json:"buckets"`
}

// ObjectSummary is one listed object.
type ObjectSummary struct {
	Key     string `json:"key"     example:"report.pdf"`
	Storage string `json:"storage" example:"STANDARD"`
	Size    int64  `json:"size"    example:"1024"`
	Bucket  string `json:"bucket"  example:"media"`
}

// ListObjectsResponse is the answer to ListObjects, sorted by key descending.
type ListObjectsResponse struct {
	Objects []ObjectSummary `json:"objects"`
}

// DownloadResponse carries a base64 encoded object.
type DownloadResponse struct {
	ContentType string
	FileName    string
	// Body is the base64 text of the object.
	Body string
	// Size is the object size in bytes before encoding.
	Size          int64
	Base64Encoded bool
}

// PresignedAccess is a time-bounded URL for one object.
type PresignedAccess struct {
	Bucket    string       `json:"bucket"    example:"media"`
	Key       string       `json:"key"       example:"report.pdf"`
	Verb      storage.Verb `json:"verb"      example:"GET"`
	URL       string       `json:"url"       example:"https://s3.example.com/media/report.pdf?X-Amz-Signature=..."`
	ExpiresAt time.Time    `json:"expiresAt" example:"2026-02-27T19:48:34Z"`
}
