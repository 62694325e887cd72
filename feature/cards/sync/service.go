package sync

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	corereconcile "ygo-pipelines/core/reconcile"
	"ygo-pipelines/core/retry"
	"ygo-pipelines/feature/cards/models"
	"ygo-pipelines/feature/cards/reconcile"
	"ygo-pipelines/feature/cards/store"
	"ygo-pipelines/feature/catalog"

	"go.uber.org/zap"
)

// Fetcher is the catalog side of the sync.
type Fetcher interface {
	Cards(ctx context.Context, filter catalog.Filter) iter.Seq2[catalog.Record, error]
	Banlist(ctx context.Context) ([]catalog.Record, error)
}

// Store is the relational side of the sync.
type Store interface {
	reconcile.Snapshotter
	WriteBundle(ctx context.Context, w store.BundleWrite) error
	UpsertBanlist(ctx context.Context, entries []models.BanlistEntry, now time.Time) (int, error)
}

// Service reconciles the remote catalog into the database.
type Service struct {
	fetcher Fetcher
	store   Store
	adapter *reconcile.CardAdapter
	cfg     Config
	retry   retry.Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new metadata sync service.
func NewService(fetcher Fetcher, s Store, cfg Config, retryCfg retry.Config, logger *zap.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	return &Service{
		fetcher: fetcher,
		store:   s,
		adapter: reconcile.NewAdapter(s),
		cfg:     cfg,
		retry:   retryCfg,
		logger:  logger,
		now:     time.Now,
	}
}

// SyncCards reads the whole catalog, then reconciles it chunk by chunk
// against the stored snapshot and writes the inserts and updates one card at a
// time.
//
// Nothing is written until the fetch has completed, so a fetch error aborts
// the run with zero writes. Records that cannot be decoded or mapped onto the
// schema are counted in Report.Skipped. Card write failures are retried, then
// counted in Report.Failed.
func (s *Service) SyncCards(ctx context.Context, filter catalog.Filter) (*Report, error) {
	start := time.Now()
	report := &Report{}

	s.logger.Info("Starting card sync",
		zap.String("cardset", filter.CardSet),
		zap.Bool("skip_translations", filter.SkipTranslations),
		zap.Int("batch_size", s.cfg.BatchSize),
	)

	bundles, err := s.fetch(ctx, filter, report)
	if err != nil {
		report.Elapsed = time.Since(start)
		return report, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	s.logger.Info("Fetched catalog",
		zap.Int("cards", len(bundles)),
		zap.Int("skipped", report.Skipped),
		zap.Duration("elapsed", time.Since(start)),
	)

	size := s.cfg.BatchSize
	if size <= 0 {
		size = 500
	}
	for chunk := range slices.Chunk(bundles, size) {
		if err := s.syncChunk(ctx, chunk, report); err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}
		if report.Interrupted {
			break
		}
	}

	report.Elapsed = time.Since(start)
	s.logger.Info("Card sync finished", report.Fields()...)

	if report.Interrupted {
		return report, ctx.Err()
	}
	return report, nil
}

// fetch drains the catalog into bundles in fetch order.
func (s *Service) fetch(ctx context.Context, filter catalog.Filter, report *Report) ([]models.Bundle, error) {
	var bundles []models.Bundle

	for rec, err := range s.fetcher.Cards(ctx, filter) {
		if catalog.IsRecordError(err) {
			s.logger.Warn("Skipping malformed card", zap.Error(err))
			report.Fetched++
			report.Skipped++
			continue
		}
		if err != nil {
			return nil, err
		}
		report.Fetched++

		bundle, err := reconcile.FromRecord(rec)
		if err != nil {
			s.logger.Warn("Skipping card", zap.Int("card_id", rec.ID), zap.Error(err))
			report.Skipped++
			continue
		}
		bundles = append(bundles, bundle)
	}

	return bundles, nil
}

func (s *Service) syncChunk(ctx context.Context, chunk []models.Bundle, report *Report) error {
	plan, err := corereconcile.Reconcile(ctx, corereconcile.Adapter[int, models.Bundle](s.adapter), chunk)
	if err != nil {
		return err
	}

	s.logger.Debug("Reconciled chunk",
		zap.Int("total", plan.Summary.Total),
		zap.Int("inserts", plan.Summary.Inserts),
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("unchanged", plan.Summary.Unchanged),
	)

	var sub reconcile.SubChanges
	inserted, updated := 0, 0
	applier := corereconcile.ApplierFunc[int, models.Bundle](func(ctx context.Context, change corereconcile.Change[int, models.Bundle]) error {
		w, cardSub := reconcile.Prepare(change, s.now())
		if err := s.write(ctx, w); err != nil {
			return err
		}
		if change.Kind == corereconcile.KindInsert {
			inserted++
		} else {
			updated++
			s.logger.Debug("Updated card", zap.Int("card_id", change.Key), zap.Strings("fields", change.Fields))
		}
		sub.Add(cardSub)
		return nil
	})

	result := corereconcile.ApplyPlan(ctx, plan, applier)

	report.Inserted += inserted
	report.Updated += updated
	report.Unchanged += result.Skipped
	report.Translations.Add(sub.Translations)
	report.Banlist.Add(sub.Banlist)
	report.Interrupted = report.Interrupted || result.Interrupted
	for _, f := range result.Failures {
		report.Failed++
		report.FailedIDs = append(report.FailedIDs, f.Key)
		s.logger.Error("Failed to write card", zap.Int("card_id", f.Key), zap.Error(f.Err))
	}

	return nil
}

// write runs the card's transaction on a context detached from cancellation,
// so a started write always completes. Only the waits between attempts
// observe ctx.
func (s *Service) write(ctx context.Context, w store.BundleWrite) error {
	return retry.Do(ctx, s.retry, func(_ context.Context, attempt int) error {
		err := s.store.WriteBundle(context.WithoutCancel(ctx), w)
		if err != nil && attempt < s.retry.MaxAttempts {
			s.logger.Warn("Card write failed, retrying",
				zap.Int("card_id", w.CardID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
}

// SyncBanlist fetches the merged TCG and OCG banlists and upserts every entry,
// stamping each with the sync time.
func (s *Service) SyncBanlist(ctx context.Context) (*BanlistReport, error) {
	start := time.Now()
	report := &BanlistReport{}

	records, err := s.fetcher.Banlist(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch banlist: %w", err)
	}

	now := s.now()
	entries := make([]models.BanlistEntry, 0, len(records))
	for _, rec := range records {
		entry, err := reconcile.BanlistEntry(rec, now)
		if err != nil {
			s.logger.Warn("Skipping banlist entry", zap.Int("card_id", rec.ID), zap.Error(err))
			report.Skipped++
			continue
		}
		if entry == nil {
			continue
		}
		entries = append(entries, *entry)
		countStatus(report, entry.BanTCG)
	}

	var written int
	err = retry.Do(ctx, s.retry, func(_ context.Context, _ int) error {
		var err error
		written, err = s.store.UpsertBanlist(context.WithoutCancel(ctx), entries, now)
		return err
	})
	if err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}

	report.Entries = written
	report.Elapsed = time.Since(start)
	s.logger.Info("Banlist sync finished", report.Fields()...)
	return report, nil
}

// countStatus tallies the TCG status, the format the pipeline reports on.
func countStatus(r *BanlistReport, st *models.BanStatus) {
	if st == nil {
		return
	}
	switch *st {
	case models.Forbidden:
		r.Forbidden++
	case models.Limited:
		r.Limited++
	case models.SemiLimited:
		r.SemiLimited++
	}
}
