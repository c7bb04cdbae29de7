package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	log "github.com/sirupsen/logrus"
)

// S3Store implements Store using Amazon S3 (or S3-compatible services) through the AWS SDK.
type S3Store struct {
	client    *awss3.Client
	presigner *awss3.PresignClient
	region    string
}

// S3Options configures NewS3Store. Empty credentials fall back to the SDK's default chain.
type S3Options struct {
	Endpoint       string
	Region         string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	ForcePathStyle bool
}

// NewS3Store loads an AWS config and builds an S3 client plus its presign client.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(opts.Endpoint, opts.UseSSL))
			o.UsePathStyle = true
		}
		if opts.ForcePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		presigner: awss3.NewPresignClient(client),
		region:    opts.Region,
	}, nil
}

// EnsureBucket creates bucket when HeadBucket reports it missing.
func (s *S3Store) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := s.client.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}
	if serr := s3Error("check bucket", bucket, "", err); !errors.Is(serr, ErrNotFound) {
		return serr
	}

	in := &awss3.CreateBucketInput{Bucket: aws.String(bucket)}
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, in); err != nil {
		return s3Error("create bucket", bucket, "", err)
	}
	log.WithField("bucket", bucket).Info("storage: created bucket")
	return nil
}

// ListBuckets passes through the single ListBuckets answer.
func (s *S3Store) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := s.client.ListBuckets(ctx, &awss3.ListBucketsInput{})
	if err != nil {
		return nil, s3Error("list buckets", "", "", err)
	}
	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return names, nil
}

// ListObjects follows continuation tokens until the listing is complete.
func (s *S3Store) ListObjects(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	input := &awss3.ListObjectsV2Input{Bucket: aws.String(bucket)}

	var objects []ObjectInfo
	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, s3Error("list objects", bucket, "", err)
		}
		for _, obj := range out.Contents {
			objects = append(objects, ObjectInfo{
				Key:          aws.ToString(obj.Key),
				StorageClass: string(obj.StorageClass),
				Size:         aws.ToInt64(obj.Size),
				Bucket:       bucket,
			})
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}
	return objects, nil
}

// PutObject uploads size bytes from data. data should be seekable so the SDK can sign the payload.
func (s *S3Store) PutObject(ctx context.Context, bucket, key, contentType string, data io.Reader, size int64) (PutResult, error) {
	out, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          data,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return PutResult{}, s3Error("put object", bucket, key, err)
	}
	return PutResult{StatusCode: http.StatusOK, ETag: strings.Trim(aws.ToString(out.ETag), `"`)}, nil
}

// GetObject opens key for reading.
func (s *S3Store) GetObject(ctx context.Context, bucket, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3Error("get object", bucket, key, err)
	}
	return &Object{
		Body:        out.Body,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
	}, nil
}

// Presign signs a GetObject or PutObject request valid for expiry.
func (s *S3Store) Presign(ctx context.Context, bucket, key string, verb Verb, expiry time.Duration) (string, error) {
	withExpiry := awss3.WithPresignExpires(expiry)

	switch verb {
	case VerbGet:
		req, err := s.presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, withExpiry)
		if err != nil {
			return "", s3Error("presign GET", bucket, key, err)
		}
		return req.URL, nil
	case VerbPut:
		req, err := s.presigner.PresignPutObject(ctx, &awss3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, withExpiry)
		if err != nil {
			return "", s3Error("presign PUT", bucket, key, err)
		}
		return req.URL, nil
	}
	return "", fmt.Errorf("presign %s/%s: unsupported verb %q", bucket, key, verb)
}

func s3Error(op, bucket, key string, err error) error {
	se := &Error{Op: op, Bucket: bucket, Key: key, Err: err}

	var re interface{ HTTPStatusCode() int }
	if errors.As(err, &re) {
		se.StatusCode = re.HTTPStatusCode()
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		se.Code = ae.ErrorCode()
	}
	return se
}

// endpointURL adds a scheme to host:port style endpoints shared with the MinIO configuration.
func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// compile-time checks
var (
	_ Store             = (*S3Store)(nil)
	_ BucketProvisioner = (*S3Store)(nil)
)
