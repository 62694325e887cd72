package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"ygo-pipelines/core/reconcile"
	"ygo-pipelines/feature/cards/models"
)

// Snapshotter loads the stored bundles of a set of cards.
type Snapshotter interface {
	Snapshot(ctx context.Context, ids []int) (map[int]models.Bundle, error)
}

// CardAdapter implements the reconcile.Adapter interface for card bundles.
type CardAdapter struct {
	store Snapshotter
}

// NewAdapter creates a new card adapter reading from store.
func NewAdapter(store Snapshotter) *CardAdapter {
	return &CardAdapter{store: store}
}

// Name returns the unique name of this adapter.
func (a *CardAdapter) Name() string {
	return "cards"
}

// Key returns the card id.
func (a *CardAdapter) Key(b models.Bundle) int {
	return b.Card.ID
}

// LoadStored loads the stored bundles of the given card ids.
func (a *CardAdapter) LoadStored(ctx context.Context, ids []int) (map[int]models.Bundle, error) {
	return a.store.Snapshot(ctx, ids)
}

// CompareFields compares a fetched bundle against the stored one. Stored
// translations in languages that were not fetched are ignored.
func (a *CardAdapter) CompareFields(fetched, stored models.Bundle) []string {
	d := compareCard(fetched.Card, stored.Card)

	for _, tr := range fetched.Translations {
		current := findTranslation(stored.Translations, tr.Language)
		switch {
		case current == nil:
			d = append(d, fmt.Sprintf("translation[%s]: new", tr.Language))
		case !sameTranslation(tr, *current):
			d = append(d, fmt.Sprintf("translation[%s]: changed", tr.Language))
		}
	}

	if line, changed := compareBanlist(fetched.Banlist, stored.Banlist); changed {
		d = append(d, line...)
	}

	return d
}

func compareCard(f, s models.CardMetadata) reconcile.Diff {
	var d reconcile.Diff
	reconcile.Value(&d, "name", f.Name, s.Name)
	reconcile.Value(&d, "description", f.Description, s.Description)
	reconcile.Value(&d, "type", f.Type, s.Type)
	reconcile.Value(&d, "frame_type", f.FrameType, s.FrameType)
	reconcile.Value(&d, "race", f.Race, s.Race)
	reconcile.Nullable(&d, "archetype", f.Archetype, s.Archetype)
	reconcile.Nullable(&d, "pend_desc", f.PendDesc, s.PendDesc)
	reconcile.Nullable(&d, "monster_desc", f.MonsterDesc, s.MonsterDesc)
	reconcile.Nullable(&d, "atk", f.Atk, s.Atk)
	reconcile.Nullable(&d, "def", f.Def, s.Def)
	reconcile.Nullable(&d, "level", f.Level, s.Level)
	reconcile.Nullable(&d, "attribute", f.Attribute, s.Attribute)
	reconcile.Nullable(&d, "scale", f.Scale, s.Scale)
	if !sameJSON(f.Details, s.Details) {
		d = append(d, "details: changed")
	}
	return d
}

func findTranslation(stored []models.CardTranslation, language string) *models.CardTranslation {
	for i := range stored {
		if stored[i].Language == language {
			return &stored[i]
		}
	}
	return nil
}

func sameTranslation(a, b models.CardTranslation) bool {
	return a.Name == b.Name && a.Description == b.Description
}

// compareBanlist treats a missing fetched entry as "unrestricted", which only
// differs from the stored state when the stored entry restricts the card.
func compareBanlist(f, s *models.BanlistEntry) ([]string, bool) {
	switch {
	case f == nil && (s == nil || !s.Restricted()):
		return nil, false
	case f == nil:
		return []string{"banlist: cleared"}, true
	case s == nil:
		return []string{"banlist: new"}, true
	}

	var d reconcile.Diff
	reconcile.Value(&d, "banlist.card_name", f.CardName, s.CardName)
	reconcile.Nullable(&d, "ban_tcg", f.BanTCG, s.BanTCG)
	reconcile.Nullable(&d, "ban_ocg", f.BanOCG, s.BanOCG)
	reconcile.Nullable(&d, "ban_goat", f.BanGoat, s.BanGoat)
	return d, len(d) > 0
}

// sameJSON compares two JSON documents by decoded value, so key order and
// whitespace introduced by a jsonb round trip are ignored. Empty and null
// documents are equal.
func sameJSON(a, b []byte) bool {
	a, b = bytes.TrimSpace(a), bytes.TrimSpace(b)
	if isNull(a) || isNull(b) {
		return isNull(a) == isNull(b)
	}
	if bytes.Equal(a, b) {
		return true
	}

	var va, vb any
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

func isNull(doc []byte) bool {
	return len(doc) == 0 || bytes.Equal(doc, []byte("null"))
}
