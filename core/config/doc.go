// Package config provides configuration management for ygo-pipelines.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file loaded with godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Server: HTTP port and API key used by the serve command
//   - Database: Supabase/Postgres URL or discrete connection fields
//   - Storage: S3/MinIO credentials, region and bucket
//   - Log: logging level and format
//   - Catalog: remote card API endpoints, timeouts and translation languages
//   - Retry: backoff policy for transient failures
//   - Sync, Images: batch sizes and worker counts
//   - Schedule: cron expressions for the serve command
//
// Defaults come from `default` struct tags. Every key can be overridden with its
// upper-cased, underscore-joined name (storage.bucket -> STORAGE_BUCKET). The
// README variable names (SUPABASE_DB_URL, AWS_BUCKET_NAME, ...) are bound as
// aliases.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
