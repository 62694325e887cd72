package storage_test

import (
	"bytes"
	"context"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"ygo-pipelines/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("Minio", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Provider:  storage.ProviderMinio,
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "test-bucket",
		})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("S3", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Provider:  storage.ProviderS3,
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Region:    "us-east-1",
			Bucket:    "test-bucket",
		})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("Unknown", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Provider: "ftp"})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorContains(t, storage.Config{Provider: storage.ProviderS3}.Validate(), "bucket")
	assert.ErrorContains(t, storage.Config{Provider: storage.ProviderMinio, Bucket: "b"}.Validate(), "endpoint")
	assert.NoError(t, storage.Config{Provider: storage.ProviderS3, Bucket: "b"}.Validate())
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
		want string
	}{
		{"AWS", storage.Config{Bucket: "ygo", Region: "sa-east-1"}, "https://ygo.s3.sa-east-1.amazonaws.com/cards/46986414.jpg"},
		{"Override", storage.Config{Bucket: "ygo", PublicBaseURL: "https://cdn.example.com/"}, "https://cdn.example.com/cards/46986414.jpg"},
		{"MinioBareEndpoint", storage.Config{Bucket: "ygo", Endpoint: "localhost:9000"}, "http://localhost:9000/ygo/cards/46986414.jpg"},
		{"MinioSSL", storage.Config{Bucket: "ygo", Endpoint: "minio.local", UseSSL: true}, "https://minio.local/ygo/cards/46986414.jpg"},
		{"MinioScheme", storage.Config{Bucket: "ygo", Endpoint: "http://minio:9000/"}, "http://minio:9000/ygo/cards/46986414.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.PublicURL(tt.cfg, "/cards/46986414.jpg"))
		})
	}
}

func TestS3ClientAgainstServer(t *testing.T) {
	var (
		mu       sync.Mutex
		received = map[string][]byte{}
		ctypes   = map[string]string{}
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			if r.URL.Path == "/present" {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			received[r.URL.Path] = body
			ctypes[r.URL.Path] = r.Header.Get("Content-Type")
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	client, err := storage.NewClient(storage.Config{
		Provider:  storage.ProviderS3,
		Endpoint:  srv.URL,
		AccessKey: "k",
		SecretKey: "s",
		Region:    "us-east-1",
		Bucket:    "present",
	})
	require.NoError(t, err)

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, "present")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.BucketExists(ctx, "absent")
	assert.NoError(t, err)
	assert.False(t, exists)

	payload := []byte("jpeg-bytes")
	err = client.PutObject(ctx, "present", "cards/1.jpg", bytes.NewReader(payload), int64(len(payload)), storage.PutOptions{ContentType: "image/jpeg"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, payload, received["/present/cards/1.jpg"])
	assert.Equal(t, "image/jpeg", ctypes["/present/cards/1.jpg"])
}

func TestS3ClientWithCABundle(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead && r.URL.Path == "/present" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	bundle := filepath.Join(t.TempDir(), "ca.pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	require.NoError(t, os.WriteFile(bundle, certPEM, 0o600))
	t.Setenv("AWS_CA_BUNDLE", bundle)

	client, err := storage.NewClient(storage.Config{
		Provider:  storage.ProviderS3,
		Endpoint:  srv.URL,
		AccessKey: "k",
		SecretKey: "s",
		Region:    "us-east-1",
		Bucket:    "present",
	})
	require.NoError(t, err)

	// The server certificate is only trusted through the bundle.
	exists, err := client.BucketExists(context.Background(), "present")
	require.NoError(t, err)
	assert.True(t, exists)
}
