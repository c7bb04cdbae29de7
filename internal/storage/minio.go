package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinioStore implements Store using a MinIO (or any S3-compatible) backend.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore creates a MinIO client for endpoint (host:port, no scheme).
func NewMinioStore(endpoint, accessKey, secretKey, region string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStore{client: client}, nil
}

// EnsureBucket creates bucket when it does not exist yet.
func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return minioError("check bucket", bucket, "", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return minioError("create bucket", bucket, "", err)
	}
	log.WithField("bucket", bucket).Info("storage: created bucket")
	return nil
}

// ListBuckets returns bucket names in the order the store reports them.
func (s *MinioStore) ListBuckets(ctx context.Context) ([]string, error) {
	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, minioError("list buckets", "", "", err)
	}
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return names, nil
}

// ListObjects walks the whole bucket recursively.
func (s *MinioStore) ListObjects(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	// Cancelling stops the listing goroutine if we bail out early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var objects []ObjectInfo
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, minioError("list objects", bucket, "", obj.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          obj.Key,
			StorageClass: obj.StorageClass,
			Size:         obj.Size,
			Bucket:       bucket,
		})
	}
	return objects, nil
}

// PutObject streams data to MinIO under key. size must be the exact byte count.
func (s *MinioStore) PutObject(ctx context.Context, bucket, key, contentType string, data io.Reader, size int64) (PutResult, error) {
	info, err := s.client.PutObject(ctx, bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return PutResult{}, minioError("put object", bucket, key, err)
	}
	return PutResult{StatusCode: http.StatusOK, ETag: info.ETag}, nil
}

// GetObject opens key and stats it so a missing object fails here rather than on first read.
func (s *MinioStore) GetObject(ctx context.Context, bucket, key string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError("get object", bucket, key, err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, minioError("get object", bucket, key, err)
	}
	return &Object{Body: obj, ContentType: stat.ContentType, Size: stat.Size}, nil
}

// Presign issues a V4 signed URL for verb.
func (s *MinioStore) Presign(ctx context.Context, bucket, key string, verb Verb, expiry time.Duration) (string, error) {
	var (
		u   *url.URL
		err error
	)
	switch verb {
	case VerbGet:
		u, err = s.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	case VerbPut:
		u, err = s.client.PresignedPutObject(ctx, bucket, key, expiry)
	default:
		return "", fmt.Errorf("presign %s/%s: unsupported verb %q", bucket, key, verb)
	}
	if err != nil {
		return "", minioError("presign "+string(verb), bucket, key, err)
	}
	return u.String(), nil
}

func minioError(op, bucket, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	return &Error{
		Op:         op,
		Bucket:     bucket,
		Key:        key,
		StatusCode: resp.StatusCode,
		Code:       resp.Code,
		Err:        err,
	}
}

// compile-time checks
var (
	_ Store             = (*MinioStore)(nil)
	_ BucketProvisioner = (*MinioStore)(nil)
)
