package reconcile

import (
	"testing"
	"time"

	"ygo-pipelines/core/reconcile"
	"ygo-pipelines/feature/cards/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Unchanged", func(t *testing.T) {
		b := bundle(t)
		w, sub := Prepare(reconcile.Change[int, models.Bundle]{Key: b.Card.ID, Kind: reconcile.KindUnchanged, Fetched: b, Stored: &b}, now)
		assert.True(t, w.Empty())
		assert.Equal(t, SubChanges{}, sub)
	})

	t.Run("OnlyChangedParts", func(t *testing.T) {
		fetched, stored := bundle(t), bundle(t)
		fetched.Translations[1].Description = "Compre dois cards."

		w, sub := Prepare(reconcile.Change[int, models.Bundle]{Key: fetched.Card.ID, Kind: reconcile.KindUpdate, Fetched: fetched, Stored: &stored}, now)
		assert.Nil(t, w.Card)
		assert.Nil(t, w.Banlist)
		require.Len(t, w.Translations, 1)
		assert.Equal(t, "pt", w.Translations[0].Language)
		assert.Equal(t, SubChanges{Translations: Counts{Updated: 1}}, sub)
	})

	t.Run("BanlistClearedToNull", func(t *testing.T) {
		fetched, stored := bundle(t), bundle(t)
		fetched.Banlist = nil

		w, sub := Prepare(reconcile.Change[int, models.Bundle]{Key: fetched.Card.ID, Kind: reconcile.KindUpdate, Fetched: fetched, Stored: &stored}, now)
		require.NotNil(t, w.Banlist)
		assert.False(t, w.Banlist.Restricted())
		assert.Equal(t, "Pot of Greed", w.Banlist.CardName)
		assert.Equal(t, now, w.Banlist.UpdatedAt)
		assert.Equal(t, Counts{Updated: 1}, sub.Banlist)
	})

	t.Run("MetadataUpdate", func(t *testing.T) {
		fetched, stored := bundle(t), bundle(t)
		fetched.Card.Description = "Draw 2 cards from your Deck."

		w, sub := Prepare(reconcile.Change[int, models.Bundle]{Key: fetched.Card.ID, Kind: reconcile.KindUpdate, Fetched: fetched, Stored: &stored}, now)
		require.NotNil(t, w.Card)
		assert.Equal(t, "Draw 2 cards from your Deck.", w.Card.Description)
		assert.Empty(t, w.Translations)
		assert.Nil(t, w.Banlist)
		assert.Equal(t, SubChanges{}, sub)
	})

	t.Run("Insert", func(t *testing.T) {
		fetched := bundle(t)
		fetched.Banlist = nil

		w, sub := Prepare(reconcile.Change[int, models.Bundle]{Key: fetched.Card.ID, Kind: reconcile.KindInsert, Fetched: fetched}, now)
		require.NotNil(t, w.Card)
		assert.Len(t, w.Translations, 2)
		assert.Nil(t, w.Banlist, "unrestricted cards get no banlist row")
		assert.Equal(t, SubChanges{Translations: Counts{Inserted: 2}}, sub)
	})
}
