package storage

import (
	"fmt"
	"strings"
)

const (
	ProviderS3    = "s3"
	ProviderMinio = "minio"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the client implementation (s3, minio).
	Provider string `mapstructure:"provider" default:"s3"`
	// Endpoint is the URL of the storage service. Empty means AWS for the s3 provider.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for minio connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket is the name of the bucket card images are stored in.
	Bucket string `mapstructure:"bucket" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:"us-east-1"`
	// PublicBaseURL overrides the URL prefix recorded for uploaded objects (e.g. a CDN).
	PublicBaseURL string `mapstructure:"public_base_url" default:""`
	// ACL is an optional canned ACL applied to uploads (e.g. public-read).
	ACL string `mapstructure:"acl" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate reports configuration that makes uploads impossible.
func (c Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("storage: bucket is required (AWS_BUCKET_NAME)")
	}
	switch c.Provider {
	case ProviderS3:
	case ProviderMinio:
		if c.Endpoint == "" {
			return fmt.Errorf("storage: endpoint is required for provider minio")
		}
	default:
		return fmt.Errorf("storage: unsupported provider %q", c.Provider)
	}
	return nil
}

// PublicURL returns the URL recorded for an object key.
func PublicURL(cfg Config, key string) string {
	key = strings.TrimPrefix(key, "/")

	if cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(cfg.PublicBaseURL, "/") + "/" + key
	}

	if cfg.Endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, cfg.Region, key)
	}

	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(endpoint, "/"), cfg.Bucket, key)
}
