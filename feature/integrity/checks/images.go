package checks

import (
	"context"

	"ygo-pipelines/feature/cards/models"
)

// PendingCounter counts cards lacking an image URL.
type PendingCounter interface {
	CountPendingImages(ctx context.Context, variant models.ImageVariant) (int64, error)
}

// ImagesReport lists, per variant, how many cards still lack an image.
type ImagesReport struct {
	Pending map[models.ImageVariant]int64 `json:"pending"`
}

// CheckImages counts the cards pending each image variant.
func CheckImages(ctx context.Context, counter PendingCounter) (*ImagesReport, error) {
	report := &ImagesReport{Pending: make(map[models.ImageVariant]int64, len(models.AllImageVariants))}
	for _, variant := range models.AllImageVariants {
		n, err := counter.CountPendingImages(ctx, variant)
		if err != nil {
			return nil, err
		}
		report.Pending[variant] = n
	}
	return report, nil
}
