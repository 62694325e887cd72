package config

import (
	"reflect"
	"strings"

	"ygo-pipelines/core/database"
	"ygo-pipelines/core/logger"
	"ygo-pipelines/core/retry"
	"ygo-pipelines/core/server"
	"ygo-pipelines/core/storage"
	"ygo-pipelines/feature/catalog"
	"ygo-pipelines/feature/cards/sync"
	"ygo-pipelines/feature/images"
	"ygo-pipelines/feature/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the pipeline.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server used by `serve`.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object store (S3 or MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Catalog holds configuration for the remote card API.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Retry holds the backoff policy shared by fetches and writes.
	Retry retry.Config `mapstructure:"retry"`
	// Sync holds configuration for the metadata sync.
	Sync sync.Config `mapstructure:"sync"`
	// Images holds configuration for the image worker pool.
	Images images.Config `mapstructure:"images"`
	// Schedule holds the cron expressions used by `serve`.
	Schedule jobs.Config `mapstructure:"schedule"`
}

// envAliases maps nested keys to the flat variable names documented in the README.
// The nested form (e.g. STORAGE_BUCKET) still wins when both are set.
var envAliases = map[string]string{
	"database.url":       "SUPABASE_DB_URL",
	"database.key":       "SUPABASE_DB_KEY",
	"storage.region":     "AWS_REGION",
	"storage.bucket":     "AWS_BUCKET_NAME",
	"storage.access_key": "AWS_ACCESS_KEY_ID",
	"storage.secret_key": "AWS_SECRET_ACCESS_KEY",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		nested := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, nested, alias); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
