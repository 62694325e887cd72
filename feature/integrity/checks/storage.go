package checks

import (
	"context"
	"fmt"

	"ygo-pipelines/core/storage"
	"ygo-pipelines/feature/cards/models"
)

// StorageReport is the result of a bucket integrity check.
type StorageReport struct {
	Bucket string `json:"bucket"`
	// Prefixes maps each image prefix to whether any object exists under it.
	Prefixes map[string]bool `json:"prefixes"`
	Missing  []string        `json:"missing"`
}

// CheckStorage verifies the bucket exists and holds objects under every image prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &StorageReport{Bucket: bucket, Prefixes: make(map[string]bool), Missing: []string{}}
	for _, variant := range models.AllImageVariants {
		prefix := variant.Prefix()
		found, err := client.HasPrefix(ctx, bucket, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		report.Prefixes[prefix] = found
		if !found {
			report.Missing = append(report.Missing, prefix)
		}
	}

	return report, nil
}
