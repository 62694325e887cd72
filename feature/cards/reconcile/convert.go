package reconcile

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"ygo-pipelines/feature/cards/models"
	"ygo-pipelines/feature/catalog"

	"gorm.io/datatypes"
)

// FromRecord maps a catalog record onto the rows stored for it. The banlist
// entry is nil when the record carries no restriction.
func FromRecord(rec catalog.Record) (models.Bundle, error) {
	card := models.CardMetadata{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Desc,
		Type:        rec.Type,
		FrameType:   rec.FrameType,
		Race:        rec.Race,
		Archetype:   rec.Archetype,
		Details:     details(rec),
		PendDesc:    rec.PendDesc,
		MonsterDesc: rec.MonsterDesc,
		Atk:         rec.Atk,
		Def:         rec.Def,
		Level:       rec.Level,
		Attribute:   rec.Attribute,
		Scale:       rec.Scale,
	}

	translations := make([]models.CardTranslation, 0, len(rec.Translations))
	for lang, tr := range rec.Translations {
		translations = append(translations, models.CardTranslation{
			CardID:      rec.ID,
			Language:    lang,
			Name:        tr.Name,
			Description: tr.Description,
		})
	}
	sort.Slice(translations, func(i, j int) bool {
		return translations[i].Language < translations[j].Language
	})

	entry, err := BanlistEntry(rec, time.Time{})
	if err != nil {
		return models.Bundle{}, err
	}

	return models.Bundle{Card: card, Translations: translations, Banlist: entry}, nil
}

// BanlistEntry builds the banlist row of a record, stamped with now. It
// returns nil when no format restricts the card.
func BanlistEntry(rec catalog.Record, now time.Time) (*models.BanlistEntry, error) {
	if rec.BanlistInfo == nil {
		return nil, nil
	}

	entry := &models.BanlistEntry{CardID: rec.ID, CardName: rec.Name, UpdatedAt: now}
	var err error
	if entry.BanTCG, err = models.ParseBanStatusPtr(rec.BanlistInfo.TCG); err != nil {
		return nil, fmt.Errorf("card %d: ban_tcg: %w", rec.ID, err)
	}
	if entry.BanOCG, err = models.ParseBanStatusPtr(rec.BanlistInfo.OCG); err != nil {
		return nil, fmt.Errorf("card %d: ban_ocg: %w", rec.ID, err)
	}
	if entry.BanGoat, err = models.ParseBanStatusPtr(rec.BanlistInfo.Goat); err != nil {
		return nil, fmt.Errorf("card %d: ban_goat: %w", rec.ID, err)
	}

	if !entry.Restricted() {
		return nil, nil
	}
	return entry, nil
}

func details(rec catalog.Record) datatypes.JSON {
	raw := bytes.TrimSpace(rec.CardSets)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return datatypes.JSON(raw)
}
