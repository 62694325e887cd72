package models

import (
	"gorm.io/datatypes"
)

// CardMetadata represents the 'ygo_card_metadata' table.
type CardMetadata struct {
	ID          int            `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name        string         `gorm:"column:name;type:text;not null"`
	Description string         `gorm:"column:description;type:text"`
	Type        string         `gorm:"column:type;type:text"`
	FrameType   string         `gorm:"column:frame_type;type:text"`
	Race        string         `gorm:"column:race;type:text"`
	Archetype   *string        `gorm:"column:archetype;type:text"`
	Details     datatypes.JSON `gorm:"column:details"` // card_sets printings
	PendDesc    *string        `gorm:"column:pend_desc;type:text"`
	MonsterDesc *string        `gorm:"column:monster_desc;type:text"`
	Atk         *int           `gorm:"column:atk;type:integer"`
	Def         *int           `gorm:"column:def;type:integer"`
	Level       *int           `gorm:"column:level;type:integer"`
	Attribute   *string        `gorm:"column:attribute;type:text"`
	Scale       *int           `gorm:"column:scale;type:integer"`

	// Written only by the image sync.
	ImageURL        *string `gorm:"column:image_url_s3;type:text"`
	ImageCroppedURL *string `gorm:"column:image_cropped_url_s3;type:text"`

	Translations []CardTranslation `gorm:"foreignKey:CardID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name.
func (CardMetadata) TableName() string {
	return "ygo_card_metadata"
}

// CatalogColumns lists the columns owned by the catalog. Upserts update only
// these, so image URLs survive a metadata sync.
var CatalogColumns = []string{
	"name", "description", "type", "frame_type", "race", "archetype", "details",
	"pend_desc", "monster_desc", "atk", "def", "level", "attribute", "scale",
}

// CardTranslation represents the 'ygo_card_translations' table.
type CardTranslation struct {
	CardID      int    `gorm:"column:card_id;primaryKey;autoIncrement:false"`
	Language    string `gorm:"column:language;primaryKey;type:text"`
	Name        string `gorm:"column:name;type:text;not null"`
	Description string `gorm:"column:description;type:text"`
}

// TableName overrides the table name.
func (CardTranslation) TableName() string {
	return "ygo_card_translations"
}

// Bundle groups everything written for one card in a single transaction.
type Bundle struct {
	Card         CardMetadata
	Translations []CardTranslation
	// Banlist is nil when the card is unrestricted and has no stored entry.
	Banlist *BanlistEntry
}
