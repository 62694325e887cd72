package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// BanStatus is the restriction of a card in one format.
type BanStatus string

const (
	Forbidden   BanStatus = "Forbidden"
	Limited     BanStatus = "Limited"
	SemiLimited BanStatus = "Semi-Limited"
)

// ParseBanStatus validates a status string. The API spells Forbidden as
// "Banned"; both are accepted.
func ParseBanStatus(s string) (BanStatus, error) {
	switch strings.TrimSpace(s) {
	case "Forbidden", "Banned":
		return Forbidden, nil
	case "Limited":
		return Limited, nil
	case "Semi-Limited", "Semi Limited":
		return SemiLimited, nil
	default:
		return "", fmt.Errorf("invalid ban status %q", s)
	}
}

// ParseBanStatusPtr is ParseBanStatus for nullable values; nil and "" mean unrestricted.
func ParseBanStatusPtr(s *string) (*BanStatus, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	st, err := ParseBanStatus(*s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Value implements driver.Valuer.
func (s BanStatus) Value() (driver.Value, error) {
	if _, err := ParseBanStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *BanStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = BanStatus(v)
	case []byte:
		*s = BanStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into BanStatus", value)
	}
	return nil
}

// BanlistEntry represents the 'ygo_banlist' table. It references a card by id
// without a foreign key, so the banlist can hold cards not yet synced.
type BanlistEntry struct {
	CardID    int        `gorm:"column:card_id;primaryKey;autoIncrement:false"`
	CardName  string     `gorm:"column:card_name;type:text;not null"`
	BanTCG    *BanStatus `gorm:"column:ban_tcg;type:text;check:ban_tcg IN ('Forbidden','Limited','Semi-Limited')"`
	BanOCG    *BanStatus `gorm:"column:ban_ocg;type:text;check:ban_ocg IN ('Forbidden','Limited','Semi-Limited')"`
	BanGoat   *BanStatus `gorm:"column:ban_goat;type:text;check:ban_goat IN ('Forbidden','Limited','Semi-Limited')"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name.
func (BanlistEntry) TableName() string {
	return "ygo_banlist"
}

// Restricted reports whether any format restricts the card.
func (b BanlistEntry) Restricted() bool {
	return b.BanTCG != nil || b.BanOCG != nil || b.BanGoat != nil
}

// BanlistColumns lists the columns rewritten on every banlist upsert.
var BanlistColumns = []string{"card_name", "ban_tcg", "ban_ocg", "ban_goat", "updated_at"}
