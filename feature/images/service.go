package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"ygo-pipelines/core/retry"
	"ygo-pipelines/core/storage"
	"ygo-pipelines/feature/cards/models"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Downloader fetches card art from the remote image host.
type Downloader interface {
	Image(ctx context.Context, id int, cropped bool) ([]byte, error)
}

// Store is the relational side of the image sync.
type Store interface {
	PendingImages(ctx context.Context, variant models.ImageVariant, force bool, afterID, limit int) ([]models.CardImage, error)
	RecordImageURL(ctx context.Context, id int, variant models.ImageVariant, url string) error
}

// Service copies card images into the object store with a fixed-size pool.
type Service struct {
	downloader Downloader
	store      Store
	objects    storage.Client
	storage    storage.Config
	cfg        Config
	retry      retry.Config
	logger     *zap.Logger
}

// NewService creates a new image sync service.
func NewService(downloader Downloader, store Store, objects storage.Client, storageCfg storage.Config, cfg Config, retryCfg retry.Config, logger *zap.Logger) *Service {
	return &Service{
		downloader: downloader,
		store:      store,
		objects:    objects,
		storage:    storageCfg,
		cfg:        cfg,
		retry:      retryCfg,
		logger:     logger,
	}
}

// Sync runs one pass of the pool. A single dispatcher pages through the
// pending cards and fills a bounded queue; the workers each own one task at a
// time and hand finished tasks to the results channel, which is folded into
// the summary here.
//
// Cancelling ctx stops the dispatcher and keeps idle workers from starting
// queued cards. Cards already in flight run to completion.
func (s *Service) Sync(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()

	workers := opts.Workers
	if workers <= 0 {
		workers = s.cfg.Workers
	}
	if workers <= 0 {
		workers = 10
	}
	if opts.Variant == "" {
		opts.Variant = models.VariantFull
	}

	s.logger.Info("Starting image sync",
		zap.String("variant", string(opts.Variant)),
		zap.Bool("force", opts.Force),
		zap.Int("limit", opts.Limit),
		zap.Int("workers", workers),
	)

	queue := make(chan *Task, workers)
	results := make(chan *Task, workers)

	var g errgroup.Group
	g.Go(func() error {
		defer close(queue)
		return s.dispatch(ctx, opts, queue)
	})
	for range workers {
		g.Go(func() error {
			s.work(ctx, queue, results)
			return nil
		})
	}

	var dispatchErr error
	go func() {
		dispatchErr = g.Wait()
		close(results)
	}()

	summary := &Summary{Variant: opts.Variant}
	every := s.cfg.ProgressEvery
	if every <= 0 {
		every = 100
	}
	for task := range results {
		summary.add(task)
		if task.Err != nil {
			s.logger.Warn("Image transfer failed", zap.Int("card_id", task.Card.ID), zap.Error(task.Err))
		}
		if summary.Total%every == 0 {
			s.logger.Info("Image sync progress",
				zap.Int("completed", summary.Total),
				zap.Int("recorded", summary.Recorded),
				zap.Int("failed", summary.Failed),
				zap.String("uploaded", humanize.Bytes(uint64(summary.Bytes))),
			)
		}
	}

	summary.Elapsed = time.Since(start)
	summary.Interrupted = ctx.Err() != nil
	s.logger.Info("Image sync finished", summary.Fields()...)

	if dispatchErr != nil {
		return summary, dispatchErr
	}
	if summary.Interrupted {
		return summary, ctx.Err()
	}
	return summary, nil
}

// dispatch enqueues pending cards page by page, keyed on the last id seen,
// until the pages run out, the limit is reached or ctx is cancelled.
func (s *Service) dispatch(ctx context.Context, opts Options, queue chan<- *Task) error {
	pageSize := s.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	afterID, sent := 0, 0
	for {
		size := pageSize
		if opts.Limit > 0 {
			if sent >= opts.Limit {
				return nil
			}
			size = min(size, opts.Limit-sent)
		}
		if ctx.Err() != nil {
			return nil
		}

		cards, err := s.store.PendingImages(ctx, opts.Variant, opts.Force, afterID, size)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		for _, card := range cards {
			if ctx.Err() != nil {
				return nil
			}
			select {
			case queue <- newTask(card, opts.Variant):
				sent++
			case <-ctx.Done():
				return nil
			}
		}

		if len(cards) < size {
			return nil
		}
		afterID = cards[len(cards)-1].ID
	}
}

func (s *Service) work(ctx context.Context, queue <-chan *Task, results chan<- *Task) {
	for task := range queue {
		if ctx.Err() != nil {
			continue
		}
		s.process(context.WithoutCancel(ctx), task)
		results <- task
	}
}

// process drives a task to a terminal state.
func (s *Service) process(ctx context.Context, task *Task) {
	id := task.Card.ID

	if err := task.advance(StateDownloading); err != nil {
		task.fail(err)
		return
	}
	data, err := s.downloader.Image(ctx, id, task.Variant.Cropped())
	if err != nil {
		task.fail(err)
		return
	}
	if task.Variant.Cropped() {
		if data, err = scaleJPEG(data, s.cropScale(), s.jpegQuality()); err != nil {
			task.fail(err)
			return
		}
	}

	if err := task.advance(StateUploading); err != nil {
		task.fail(err)
		return
	}
	key := task.Variant.ObjectKey(id)
	err = retry.DoWhen(ctx, s.retry, retryUpload, func(ctx context.Context, attempt int) error {
		return s.objects.PutObject(ctx, s.storage.Bucket, key, bytes.NewReader(data), int64(len(data)), storage.PutOptions{
			ContentType:  "image/jpeg",
			CacheControl: s.cfg.CacheControl,
		})
	})
	if err != nil {
		task.fail(fmt.Errorf("failed to upload %s: %w", key, err))
		return
	}
	task.Bytes = int64(len(data))

	if err := task.advance(StateRecording); err != nil {
		task.fail(err)
		return
	}
	url := storage.PublicURL(s.storage, key)
	err = retry.Do(ctx, s.retry, func(ctx context.Context, attempt int) error {
		return s.store.RecordImageURL(ctx, id, task.Variant, url)
	})
	if err != nil {
		task.fail(err)
		return
	}
	task.URL = url

	if err := task.advance(StateRecorded); err != nil {
		task.fail(err)
	}
}

func (s *Service) cropScale() float64 {
	if s.cfg.CropScale <= 0 || s.cfg.CropScale > 1 {
		return 0.6
	}
	return s.cfg.CropScale
}

func (s *Service) jpegQuality() int {
	if s.cfg.JPEGQuality <= 0 || s.cfg.JPEGQuality > 100 {
		return 85
	}
	return s.cfg.JPEGQuality
}

// retryUpload retries every upload error except cancellation. Object store
// SDKs do not classify their errors uniformly.
func retryUpload(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
