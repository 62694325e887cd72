package integrity

import (
	"context"

	"ygo-pipelines/core/storage"
	"ygo-pipelines/feature/integrity/checks"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	db      *gorm.DB
	pending checks.PendingCounter
	logger  *zap.Logger
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket string, db *gorm.DB, pending checks.PendingCounter, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		db:      db,
		pending: pending,
		logger:  logger,
	}
}

// Report combines every check. A failed check leaves its section nil and
// contributes to Errors.
type Report struct {
	Healthy bool                  `json:"healthy"`
	Schema  *checks.SchemaReport  `json:"schema,omitempty"`
	Storage *checks.StorageReport `json:"storage,omitempty"`
	Images  *checks.ImagesReport  `json:"images,omitempty"`
	Errors  []string              `json:"errors,omitempty"`
}

// CheckSchema compares the pipeline tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckStorage verifies the bucket and its image prefixes.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

// CheckImages counts the cards pending each image variant.
func (s *Service) CheckImages(ctx context.Context) (*checks.ImagesReport, error) {
	return checks.CheckImages(ctx, s.pending)
}

// CheckAll runs every check. The returned error aggregates the checks that
// could not run; a check that ran but found problems only clears Healthy.
func (s *Service) CheckAll(ctx context.Context) (*Report, error) {
	report := &Report{Healthy: true}
	var errs error

	if schema, err := s.CheckSchema(); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		report.Schema = schema
		report.Healthy = report.Healthy && schema.Matched
	}

	if st, err := s.CheckStorage(ctx); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		report.Storage = st
		report.Healthy = report.Healthy && len(st.Missing) == 0
	}

	if images, err := s.CheckImages(ctx); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		report.Images = images
	}

	for _, err := range multierr.Errors(errs) {
		report.Errors = append(report.Errors, err.Error())
	}
	if errs != nil {
		report.Healthy = false
	}

	s.logger.Info("Integrity check completed",
		zap.Bool("healthy", report.Healthy),
		zap.Int("errors", len(report.Errors)),
	)
	return report, errs
}
