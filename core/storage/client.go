package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// PutOptions carries object metadata for uploads.
type PutOptions struct {
	ContentType  string
	CacheControl string
}

// Client defines the interface for storage operations.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// PutObject uploads an object, replacing any existing one under the same key.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts PutOptions) error
	// HasPrefix reports whether at least one object exists under prefix.
	HasPrefix(ctx context.Context, bucketName, prefix string) (bool, error)
}

// NewClient creates the client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderMinio:
		return newMinioClient(cfg)
	case ProviderS3, "":
		return newS3Client(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
}

// newTransport builds an http.Transport with strict connection timeouts.
func newTransport(cfg Config) *http.Transport {
	tr := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		ForceAttemptHTTP2: true,
	}
	tuneTransport(cfg, tr)
	return tr
}

// tuneTransport applies the connection timeouts and pool sizes to tr. TLS
// settings are left alone so a transport carrying custom root CAs keeps them.
func tuneTransport(cfg Config, tr *http.Transport) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	tr.DialContext = (&net.Dialer{
		Timeout:   timeoutDuration,
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.MaxIdleConns = 100
	tr.MaxIdleConnsPerHost = 32
	tr.IdleConnTimeout = 90 * time.Second
	tr.TLSHandshakeTimeout = timeoutDuration
	tr.ExpectContinueTimeout = 1 * time.Second
	tr.ResponseHeaderTimeout = timeoutDuration
}
