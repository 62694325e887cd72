package store

import (
	"context"
	"fmt"
	"time"

	"ygo-pipelines/feature/cards/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// banlistBatch is the number of rows per upsert statement.
const banlistBatch = 500

// UpsertBanlist writes every entry wholesale, stamping updated_at with now on
// each row whether or not its status changed. It runs in one transaction.
func (s *Store) UpsertBanlist(ctx context.Context, entries []models.BanlistEntry, now time.Time) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	rows := make([]models.BanlistEntry, len(entries))
	for i, e := range entries {
		e.UpdatedAt = now
		rows[i] = e
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns(models.BanlistColumns),
		}).CreateInBatches(&rows, banlistBatch).Error
	})
	if err != nil {
		return 0, &StorageWriteError{Op: "upsert banlist", Err: err}
	}
	return len(rows), nil
}

// Banlist returns the stored entries ordered by card id.
func (s *Store) Banlist(ctx context.Context) ([]models.BanlistEntry, error) {
	var entries []models.BanlistEntry
	if err := s.db.WithContext(ctx).Order("card_id").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load banlist: %w", err)
	}
	return entries, nil
}
