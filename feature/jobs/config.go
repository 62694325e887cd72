package jobs

// Job names shared by the scheduler, the HTTP trigger and the CLI.
const (
	JobCards   = "sync-cards"
	JobBanlist = "sync-banlist"
	JobImages  = "sync-images"
)

// Config holds the cron expressions of the scheduled syncs. An empty
// expression disables the job's schedule; it can still be triggered manually.
type Config struct {
	// Cards schedules sync-cards.
	Cards string `mapstructure:"cards" default:"0 3 * * *"`
	// Banlist schedules sync-banlist.
	Banlist string `mapstructure:"banlist" default:"30 3 * * 1"`
	// Images schedules sync-images.
	Images string `mapstructure:"images" default:"0 4 * * *"`
	// HistorySize is the number of runs kept in memory.
	HistorySize int `mapstructure:"history_size" default:"50"`
}

// Specs maps each job name to its cron expression.
func (c Config) Specs() map[string]string {
	return map[string]string{
		JobCards:   c.Cards,
		JobBanlist: c.Banlist,
		JobImages:  c.Images,
	}
}
