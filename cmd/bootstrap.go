package cmd

import (
	"fmt"

	"ygo-pipelines/core/config"
	"ygo-pipelines/core/database"
	"ygo-pipelines/core/logger"
	"ygo-pipelines/core/storage"
	"ygo-pipelines/feature/cards/store"
	cardsync "ygo-pipelines/feature/cards/sync"
	"ygo-pipelines/feature/catalog"
	"ygo-pipelines/feature/images"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// pipeline holds the configuration and connections shared by the commands.
type pipeline struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	store   *store.Store
	objects storage.Client
}

// bootstrap loads the configuration, applies the global flags and builds the
// logger, tagged with a fresh run_id. The database is always connected; the
// object store only when withStorage is set.
func bootstrap(withStorage bool) (*pipeline, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if jsonLogs {
		cfg.Log.Format = "json"
	}
	if debugLogs {
		cfg.Log.Level = "debug"
	}

	base, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	p := &pipeline{cfg: cfg, log: logger.WithRunID(base, uuid.NewString())}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	p.db = db
	p.store = store.New(db)
	p.log.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))

	if withStorage {
		if err := cfg.Storage.Validate(); err != nil {
			return nil, err
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		p.objects = client
	}

	return p, nil
}

func (p *pipeline) catalog(log *zap.Logger) *catalog.Client {
	return catalog.NewClient(p.cfg.Catalog, p.cfg.Retry, log)
}

func (p *pipeline) cardSync(log *zap.Logger) *cardsync.Service {
	return cardsync.NewService(p.catalog(log), p.store, p.cfg.Sync, p.cfg.Retry, log)
}

func (p *pipeline) imageSync(log *zap.Logger) *images.Service {
	return images.NewService(p.catalog(log), p.store, p.objects, p.cfg.Storage, p.cfg.Images, p.cfg.Retry, log)
}

func (p *pipeline) close() {
	_ = p.log.Sync()
	if sqlDB, err := p.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
