package catalog

import "encoding/json"

// Record is one card as returned by the card info endpoint.
type Record struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	FrameType   string          `json:"frameType"`
	Desc        string          `json:"desc"`
	Race        string          `json:"race"`
	Archetype   *string         `json:"archetype"`
	Atk         *int            `json:"atk"`
	Def         *int            `json:"def"`
	Level       *int            `json:"level"`
	Attribute   *string         `json:"attribute"`
	Scale       *int            `json:"scale"`
	PendDesc    *string         `json:"pend_desc"`
	MonsterDesc *string         `json:"monster_desc"`
	CardSets    json.RawMessage `json:"card_sets"`
	BanlistInfo *BanlistInfo    `json:"banlist_info"`

	// Translations holds the localized text keyed by language code. It is
	// filled by Cards unless translations are skipped.
	Translations map[string]Translation `json:"-"`
}

// BanlistInfo carries the per-format restriction of a card. Absent formats are unrestricted.
type BanlistInfo struct {
	TCG  *string `json:"ban_tcg"`
	OCG  *string `json:"ban_ocg"`
	Goat *string `json:"ban_goat"`
}

// Translation is the localized name and description of a card.
type Translation struct {
	Language    string
	Name        string
	Description string
}

// Valid reports whether the record carries the fields required to store it.
func (r Record) Valid() bool {
	return r.ID > 0 && r.Name != ""
}

// Filter narrows a catalog fetch.
type Filter struct {
	// CardSet restricts the fetch to one set name. Empty fetches everything.
	CardSet string
	// SkipTranslations disables the per-language fetches.
	SkipTranslations bool
}
