package sync

import (
	"time"

	"ygo-pipelines/feature/cards/reconcile"

	"go.uber.org/zap"
)

// Report summarises a metadata sync run.
type Report struct {
	Fetched   int `json:"fetched"`
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	// Skipped counts records that could not be decoded or mapped onto the schema.
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	Translations reconcile.Counts `json:"translations"`
	Banlist      reconcile.Counts `json:"banlist"`

	// FailedIDs lists the cards counted in Failed.
	FailedIDs []int `json:"failed_ids,omitempty"`

	// Interrupted is true when the run was cancelled before every card was visited.
	Interrupted bool          `json:"interrupted"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Writes returns the number of cards written.
func (r *Report) Writes() int {
	return r.Inserted + r.Updated
}

// Fields returns the report as zap fields.
func (r *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("fetched", r.Fetched),
		zap.Int("inserted", r.Inserted),
		zap.Int("updated", r.Updated),
		zap.Int("unchanged", r.Unchanged),
		zap.Int("skipped", r.Skipped),
		zap.Int("failed", r.Failed),
		zap.Int("translations_inserted", r.Translations.Inserted),
		zap.Int("translations_updated", r.Translations.Updated),
		zap.Int("banlist_inserted", r.Banlist.Inserted),
		zap.Int("banlist_updated", r.Banlist.Updated),
		zap.Bool("interrupted", r.Interrupted),
		zap.Duration("elapsed", r.Elapsed),
	}
}

// BanlistReport summarises a banlist sync run.
type BanlistReport struct {
	Entries     int           `json:"entries"`
	Forbidden   int           `json:"forbidden"`
	Limited     int           `json:"limited"`
	SemiLimited int           `json:"semi_limited"`
	Skipped     int           `json:"skipped"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Fields returns the report as zap fields.
func (r *BanlistReport) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("entries", r.Entries),
		zap.Int("forbidden", r.Forbidden),
		zap.Int("limited", r.Limited),
		zap.Int("semi_limited", r.SemiLimited),
		zap.Int("skipped", r.Skipped),
		zap.Duration("elapsed", r.Elapsed),
	}
}
