package images

import (
	"time"

	"ygo-pipelines/feature/cards/models"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Summary aggregates the outcome of an image sync run.
type Summary struct {
	Variant  models.ImageVariant
	Total    int
	Recorded int
	Failed   int
	// Bytes is the total size of the uploaded objects.
	Bytes int64
	// Errors combines every ImageTransferError of the run.
	Errors      error
	Interrupted bool
	Elapsed     time.Duration
}

func (s *Summary) add(task *Task) {
	s.Total++
	switch task.State {
	case StateRecorded:
		s.Recorded++
		s.Bytes += task.Bytes
	case StateFailed:
		s.Failed++
		s.Errors = multierr.Append(s.Errors, task.Err)
	}
}

// Fields returns the summary as zap fields.
func (s *Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.String("variant", string(s.Variant)),
		zap.Int("total", s.Total),
		zap.Int("recorded", s.Recorded),
		zap.Int("failed", s.Failed),
		zap.String("uploaded", humanize.Bytes(uint64(s.Bytes))),
		zap.Bool("interrupted", s.Interrupted),
		zap.Duration("elapsed", s.Elapsed),
	}
}
