package mocks

import (
	"context"
	"io"

	"ygo-pipelines/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

var _ storage.Client = (*Client)(nil)

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts storage.PutOptions) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Error(0)
}

func (m *Client) HasPrefix(ctx context.Context, bucketName, prefix string) (bool, error) {
	args := m.Called(ctx, bucketName, prefix)
	return args.Bool(0), args.Error(1)
}
