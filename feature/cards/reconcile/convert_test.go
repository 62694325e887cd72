package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"ygo-pipelines/feature/cards/models"
	"ygo-pipelines/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[V any](v V) *V { return &v }

func potOfGreed() catalog.Record {
	return catalog.Record{
		ID:        55144522,
		Name:      "Pot of Greed",
		Type:      "Spell Card",
		FrameType: "spell",
		Desc:      "Draw 2 cards.",
		Race:      "Normal",
		CardSets:  json.RawMessage(`[{"set_code":"LOB-119"}]`),
		BanlistInfo: &catalog.BanlistInfo{
			TCG: ptr("Banned"),
			OCG: ptr("Forbidden"),
		},
		Translations: map[string]catalog.Translation{
			"pt": {Language: "pt", Name: "Pote da Ganância", Description: "Compre 2 cards."},
			"de": {Language: "de", Name: "Topf der Gier", Description: "Ziehe 2 Karten."},
		},
	}
}

func TestFromRecord(t *testing.T) {
	b, err := FromRecord(potOfGreed())
	require.NoError(t, err)

	assert.Equal(t, 55144522, b.Card.ID)
	assert.Equal(t, "Draw 2 cards.", b.Card.Description)
	assert.Equal(t, "spell", b.Card.FrameType)
	assert.Nil(t, b.Card.Atk)
	assert.JSONEq(t, `[{"set_code":"LOB-119"}]`, string(b.Card.Details))

	require.Len(t, b.Translations, 2)
	assert.Equal(t, "de", b.Translations[0].Language, "translations are sorted by language")
	assert.Equal(t, 55144522, b.Translations[1].CardID)

	require.NotNil(t, b.Banlist)
	assert.Equal(t, models.Forbidden, *b.Banlist.BanTCG)
	assert.Equal(t, models.Forbidden, *b.Banlist.BanOCG)
	assert.Nil(t, b.Banlist.BanGoat)
	assert.Equal(t, "Pot of Greed", b.Banlist.CardName)
}

func TestFromRecord_NullDetails(t *testing.T) {
	rec := potOfGreed()
	rec.CardSets = json.RawMessage(`null`)
	b, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Nil(t, b.Card.Details)
}

func TestBanlistEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("NoInfo", func(t *testing.T) {
		rec := potOfGreed()
		rec.BanlistInfo = nil
		entry, err := BanlistEntry(rec, now)
		assert.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("EmptyInfo", func(t *testing.T) {
		rec := potOfGreed()
		rec.BanlistInfo = &catalog.BanlistInfo{}
		entry, err := BanlistEntry(rec, now)
		assert.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("Stamped", func(t *testing.T) {
		entry, err := BanlistEntry(potOfGreed(), now)
		require.NoError(t, err)
		assert.Equal(t, now, entry.UpdatedAt)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		rec := potOfGreed()
		rec.BanlistInfo.Goat = ptr("Unlimited")
		_, err := BanlistEntry(rec, now)
		assert.ErrorContains(t, err, "ban_goat")
	})
}
