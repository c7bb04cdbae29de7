package storage

import (
	"context"
	"fmt"
)

// Supported providers.
const (
	ProviderMinio = "minio"
	ProviderS3    = "s3"
)

// Options selects and configures a Store backend.
type Options struct {
	Provider       string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	Region         string
	UseSSL         bool
	ForcePathStyle bool
}

// New builds the Store for opts.Provider.
func New(ctx context.Context, opts Options) (Store, error) {
	switch opts.Provider {
	case ProviderMinio, "":
		s, err := NewMinioStore(opts.Endpoint, opts.AccessKey, opts.SecretKey, opts.Region, opts.UseSSL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ProviderS3:
		s, err := NewS3Store(ctx, S3Options{
			Endpoint:       opts.Endpoint,
			Region:         opts.Region,
			AccessKey:      opts.AccessKey,
			SecretKey:      opts.SecretKey,
			UseSSL:         opts.UseSSL,
			ForcePathStyle: opts.ForcePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("storage: unknown provider %q", opts.Provider)
}
