// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/radif/gateway/internal/object"
	"github.com/radif/gateway/internal/storage"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// Object storage (S3-compatible: MinIO locally, any S3 provider in production)
	StorageProvider       string
	StorageEndpoint       string
	StorageAccessKey      string
	StorageSecretKey      string
	StorageRegion         string
	StorageUseSSL         bool
	StorageForcePathStyle bool
	StorageBucket         string // ensured at start-up when set

	MaxBodyBytes      int64
	PresignTTL        time.Duration
	PresignMaxTTL     time.Duration
	UploadConcurrency int

	CORSAllowedOrigins []string
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, reading from environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageProvider:       strings.ToLower(getEnv("STORAGE_PROVIDER", storage.ProviderMinio)),
		StorageEndpoint:       getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:      getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:      getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageRegion:         getEnv("STORAGE_REGION", "us-east-1"),
		StorageUseSSL:         getBool("STORAGE_USE_SSL", false, &errs),
		StorageForcePathStyle: getBool("STORAGE_FORCE_PATH_STYLE", true, &errs),
		StorageBucket:         getEnv("STORAGE_BUCKET", ""),

		MaxBodyBytes:      getInt64("MAX_BODY_BYTES", object.DefaultMaxBodyBytes, &errs),
		PresignTTL:        getDuration("PRESIGN_TTL", object.DefaultPresignTTL, &errs),
		PresignMaxTTL:     getDuration("PRESIGN_MAX_TTL", object.DefaultPresignMaxTTL, &errs),
		UploadConcurrency: int(getInt64("UPLOAD_CONCURRENCY", 1, &errs)),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the gateway cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageProvider {
	case storage.ProviderMinio, storage.ProviderS3:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	gateway := c.Gateway()
	if err := gateway.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Gateway returns the settings passed to the object gateway.
func (c *Config) Gateway() object.Config {
	return object.Config{
		MaxBodyBytes:      c.MaxBodyBytes,
		PresignTTL:        c.PresignTTL,
		PresignMaxTTL:     c.PresignMaxTTL,
		UploadConcurrency: c.UploadConcurrency,
	}
}

// Storage returns the options used to build the object store client.
func (c *Config) Storage() storage.Options {
	return storage.Options{
		Provider:       c.StorageProvider,
		Endpoint:       c.StorageEndpoint,
		AccessKey:      c.StorageAccessKey,
		SecretKey:      c.StorageSecretKey,
		Region:         c.StorageRegion,
		UseSSL:         c.StorageUseSSL,
		ForcePathStyle: c.StorageForcePathStyle,
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func getInt64(key string, fallback int64, errs *[]error) int64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
