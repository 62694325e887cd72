package sync

// Config holds configuration for the metadata sync.
type Config struct {
	// BatchSize is the number of cards reconciled and written per chunk.
	BatchSize int `mapstructure:"batch_size" default:"500"`
}
