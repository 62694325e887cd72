package reconcile

import (
	"time"

	"ygo-pipelines/core/reconcile"
	"ygo-pipelines/feature/cards/models"
	"ygo-pipelines/feature/cards/store"
)

// Counts tallies the row-level writes of one kind of sub-entity.
type Counts struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// Add folds other into c.
func (c *Counts) Add(other Counts) {
	c.Inserted += other.Inserted
	c.Updated += other.Updated
}

// SubChanges reports the translation and banlist rows written for a card.
type SubChanges struct {
	Translations Counts `json:"translations"`
	Banlist      Counts `json:"banlist"`
}

// Add folds other into s.
func (s *SubChanges) Add(other SubChanges) {
	s.Translations.Add(other.Translations)
	s.Banlist.Add(other.Banlist)
}

// Prepare turns a card change into the rows to upsert. Only the parts of the
// bundle that differ from the stored state are included; the banlist row is
// stamped with now. Unchanged changes produce an empty write.
func Prepare(change reconcile.Change[int, models.Bundle], now time.Time) (store.BundleWrite, SubChanges) {
	w := store.BundleWrite{CardID: change.Key}
	var sub SubChanges

	if !change.NeedsWrite() {
		return w, sub
	}

	var stored models.Bundle
	if change.Stored != nil {
		stored = *change.Stored
	}
	fetched := change.Fetched

	if change.Stored == nil || len(compareCard(fetched.Card, stored.Card)) > 0 {
		card := fetched.Card
		w.Card = &card
	}

	for _, tr := range fetched.Translations {
		current := findTranslation(stored.Translations, tr.Language)
		switch {
		case current == nil:
			sub.Translations.Inserted++
		case !sameTranslation(tr, *current):
			sub.Translations.Updated++
		default:
			continue
		}
		w.Translations = append(w.Translations, tr)
	}

	if _, changed := compareBanlist(fetched.Banlist, stored.Banlist); changed {
		var entry models.BanlistEntry
		if fetched.Banlist != nil {
			entry = *fetched.Banlist
		} else {
			// Clearing keeps the row with every format set to null.
			entry = models.BanlistEntry{CardID: fetched.Card.ID, CardName: fetched.Card.Name}
		}
		entry.UpdatedAt = now
		w.Banlist = &entry

		if stored.Banlist == nil {
			sub.Banlist.Inserted++
		} else {
			sub.Banlist.Updated++
		}
	}

	return w, sub
}
