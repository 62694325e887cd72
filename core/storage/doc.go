// Package storage provides the object-store side of the storage gateway.
//
// Client is a small interface covering what the pipeline needs: checking the
// bucket, uploading card images and probing key prefixes. Two implementations
// are selected by Config.Provider:
//   - s3 (default): aws-sdk-go-v2, for AWS S3 or any S3-compatible endpoint
//   - minio: minio-go, for self-hosted MinIO
//
// PublicURL derives the URL recorded on a card row for an uploaded key, using
// the virtual-hosted AWS form unless an endpoint or PublicBaseURL is set.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	err = client.PutObject(ctx, cfg.Storage.Bucket, "cards/89631139.jpg", r, size,
//	    storage.PutOptions{ContentType: "image/jpeg"})
//	url := storage.PublicURL(cfg.Storage, "cards/89631139.jpg")
//
// The mocks subpackage holds a testify mock of Client.
package storage
