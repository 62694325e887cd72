package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "s3", cfg.Storage.Provider)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 3, cfg.Retry.MaxAttempts)
		assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
		assert.Equal(t, 10, cfg.Images.Workers)
		assert.Equal(t, 500, cfg.Sync.BatchSize)
		assert.Equal(t, []string{"pt"}, cfg.Catalog.Languages)
	})

	t.Run("ReadmeAliases", func(t *testing.T) {
		t.Setenv("SUPABASE_DB_URL", "postgres://user:pw@db.example.com:5432/postgres")
		t.Setenv("SUPABASE_DB_KEY", "service-key")
		t.Setenv("AWS_REGION", "sa-east-1")
		t.Setenv("AWS_BUCKET_NAME", "ygo-images")
		t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "postgres://user:pw@db.example.com:5432/postgres", cfg.Database.URL)
		assert.Equal(t, "service-key", cfg.Database.Key)
		assert.Equal(t, "sa-east-1", cfg.Storage.Region)
		assert.Equal(t, "ygo-images", cfg.Storage.Bucket)
		assert.Equal(t, "AKIA", cfg.Storage.AccessKey)
		assert.Equal(t, "secret", cfg.Storage.SecretKey)
	})

	t.Run("NestedNameWins", func(t *testing.T) {
		t.Setenv("AWS_BUCKET_NAME", "from-alias")
		t.Setenv("STORAGE_BUCKET", "from-nested")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "from-nested", cfg.Storage.Bucket)
	})

	t.Run("DotEnvFile", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, ".env"), []byte("IMAGES_WORKERS=4\nCATALOG_LANGUAGES=pt,de\n"), 0o600)
		require.NoError(t, err)
		t.Cleanup(func() {
			os.Unsetenv("IMAGES_WORKERS")
			os.Unsetenv("CATALOG_LANGUAGES")
		})

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Images.Workers)
		assert.Equal(t, []string{"pt", "de"}, cfg.Catalog.Languages)
	})
}
