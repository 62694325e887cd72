package catalog

// Config holds configuration for the remote card API.
type Config struct {
	// BaseURL is the card info endpoint.
	BaseURL string `mapstructure:"base_url" default:"https://db.ygoprodeck.com/api/v7/cardinfo.php"`
	// ImageBaseURL is the root of the card image host.
	ImageBaseURL string `mapstructure:"image_base_url" default:"https://images.ygoprodeck.com/images"`
	// Languages lists the translation languages fetched by sync-cards.
	Languages []string `mapstructure:"languages" default:"pt"`
	// TimeoutSeconds bounds a catalog request, including the body download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// ImageTimeoutSeconds bounds a single image download.
	ImageTimeoutSeconds int `mapstructure:"image_timeout_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"ygo-pipelines/1.0"`
}
