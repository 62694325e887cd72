package store

import (
	"context"
	"fmt"

	"ygo-pipelines/core/database"
	"ygo-pipelines/feature/cards/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotChunk bounds the number of ids per IN clause.
const snapshotChunk = 500

// Store is the relational side of the storage gateway. It is safe for
// concurrent use; writes to different cards never share a transaction.
type Store struct {
	db *gorm.DB
}

// New creates a Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for schema inspection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the pipeline tables and their banlist indexes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.CardMetadata{},
		&models.CardTranslation{},
		&models.BanlistEntry{},
	); err != nil {
		return fmt.Errorf("failed to migrate card tables: %w", err)
	}

	for _, col := range []string{"ban_tcg", "ban_ocg"} {
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_ygo_banlist_%s ON ygo_banlist (%s) WHERE %s IS NOT NULL", col, col, col)
		if db.Dialector.Name() == database.DriverMySQL {
			if db.Migrator().HasIndex(&models.BanlistEntry{}, "idx_ygo_banlist_"+col) {
				continue
			}
			stmt = fmt.Sprintf("CREATE INDEX idx_ygo_banlist_%s ON ygo_banlist (%s)", col, col)
		}
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index on %s: %w", col, err)
		}
	}
	return nil
}

// Snapshot loads the stored bundles of the given card ids. Ids without a
// metadata row or a banlist entry are absent from the result.
func (s *Store) Snapshot(ctx context.Context, ids []int) (map[int]models.Bundle, error) {
	out := make(map[int]models.Bundle, len(ids))

	for start := 0; start < len(ids); start += snapshotChunk {
		chunk := ids[start:min(start+snapshotChunk, len(ids))]

		var cards []models.CardMetadata
		if err := s.db.WithContext(ctx).
			Preload("Translations").
			Where("id IN ?", chunk).
			Find(&cards).Error; err != nil {
			return nil, fmt.Errorf("failed to load card metadata: %w", err)
		}
		for _, card := range cards {
			translations := card.Translations
			card.Translations = nil
			out[card.ID] = models.Bundle{Card: card, Translations: translations}
		}

		var entries []models.BanlistEntry
		if err := s.db.WithContext(ctx).
			Where("card_id IN ?", chunk).
			Find(&entries).Error; err != nil {
			return nil, fmt.Errorf("failed to load banlist entries: %w", err)
		}
		for i := range entries {
			b := out[entries[i].CardID]
			b.Banlist = &entries[i]
			out[entries[i].CardID] = b
		}
	}

	return out, nil
}

// BundleWrite lists the rows to upsert for one card. Nil or empty members are
// left untouched.
type BundleWrite struct {
	CardID       int
	Card         *models.CardMetadata
	Translations []models.CardTranslation
	Banlist      *models.BanlistEntry
}

// Empty reports whether the write has nothing to do.
func (w BundleWrite) Empty() bool {
	return w.Card == nil && len(w.Translations) == 0 && w.Banlist == nil
}

// WriteBundle upserts the card's metadata, translations and banlist entry in
// one transaction: either every row is written or none is.
func (s *Store) WriteBundle(ctx context.Context, w BundleWrite) error {
	if w.Empty() {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if w.Card != nil {
			card := *w.Card
			card.Translations = nil
			if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns(models.CatalogColumns),
			}).Create(&card).Error; err != nil {
				return &StorageWriteError{CardID: w.CardID, Op: "upsert metadata", Err: err}
			}
		}

		if len(w.Translations) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "card_id"}, {Name: "language"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
			}).Create(&w.Translations).Error; err != nil {
				return &StorageWriteError{CardID: w.CardID, Op: "upsert translations", Err: err}
			}
		}

		if w.Banlist != nil {
			entry := *w.Banlist
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "card_id"}},
				DoUpdates: clause.AssignmentColumns(models.BanlistColumns),
			}).Create(&entry).Error; err != nil {
				return &StorageWriteError{CardID: w.CardID, Op: "upsert banlist", Err: err}
			}
		}

		return nil
	})
}
