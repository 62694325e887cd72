// Package models defines the GORM models of the three pipeline tables
// (ygo_card_metadata, ygo_card_translations, ygo_banlist) and the small value
// types shared by the sync features: BanStatus, ImageVariant and Bundle.
package models
