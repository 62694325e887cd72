package images

import "ygo-pipelines/feature/cards/models"

// Config holds configuration for the image worker pool.
type Config struct {
	// Workers is the default pool width, overridden by --workers.
	Workers int `mapstructure:"workers" default:"10"`
	// PageSize is the number of pending cards read per query.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// ProgressEvery logs progress after this many completed cards.
	ProgressEvery int `mapstructure:"progress_every" default:"100"`
	// CacheControl is set on every uploaded image.
	CacheControl string `mapstructure:"cache_control" default:"public, max-age=31536000"`
	// CropScale is the resize factor applied to cropped art.
	CropScale float64 `mapstructure:"crop_scale" default:"0.6"`
	// JPEGQuality is the encoder quality of resized images.
	JPEGQuality int `mapstructure:"jpeg_quality" default:"85"`
}

// Options selects the cards of one image sync run.
type Options struct {
	Variant models.ImageVariant
	// Force re-processes cards that already have a stored URL.
	Force bool
	// Limit caps the number of cards processed. Zero means no cap.
	Limit int
	// Workers overrides Config.Workers when positive.
	Workers int
}
