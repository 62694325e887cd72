package store

import (
	"context"
	"fmt"

	"ygo-pipelines/feature/cards/models"
)

// PendingImages returns up to limit cards with an id above afterID, ordered by
// id, that lack the variant's URL. With force every card qualifies.
func (s *Store) PendingImages(ctx context.Context, variant models.ImageVariant, force bool, afterID, limit int) ([]models.CardImage, error) {
	q := s.db.WithContext(ctx).
		Model(&models.CardMetadata{}).
		Select("id", "name").
		Where("id > ?", afterID)
	if !force {
		q = q.Where(variant.Column() + " IS NULL")
	}

	var cards []models.CardImage
	if err := q.Order("id").Limit(limit).Scan(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards pending %s images: %w", variant, err)
	}
	return cards, nil
}

// CountPendingImages counts cards lacking the variant's URL.
func (s *Store) CountPendingImages(ctx context.Context, variant models.ImageVariant) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.CardMetadata{}).
		Where(variant.Column() + " IS NULL").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cards pending %s images: %w", variant, err)
	}
	return n, nil
}

// RecordImageURL stores the uploaded image URL on the card row, overwriting any previous one.
func (s *Store) RecordImageURL(ctx context.Context, id int, variant models.ImageVariant, url string) error {
	res := s.db.WithContext(ctx).
		Model(&models.CardMetadata{}).
		Where("id = ?", id).
		Update(variant.Column(), url)
	if res.Error != nil {
		return &StorageWriteError{CardID: id, Op: "record " + string(variant) + " image url", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &StorageWriteError{CardID: id, Op: "record " + string(variant) + " image url", Err: fmt.Errorf("card not found")}
	}
	return nil
}
