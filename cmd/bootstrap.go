package cmd

import (
	"context"
	"fmt"

	"resource-sync/core/client"
	"resource-sync/core/config"
	"resource-sync/core/database"
	"resource-sync/core/logger"
	"resource-sync/core/reconcile"
	"resource-sync/core/storage"
	"resource-sync/feature/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the collaborators shared by the commands.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	service *catalog.Service
}

// bootstrap loads configuration and wires the catalog service. metrics may be nil.
func bootstrap(ctx context.Context, metrics *reconcile.Metrics) (*runtime, error) {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 3. Open the configured local store backend
	var db *gorm.DB
	var objects storage.Client
	switch cfg.Catalog.Store {
	case catalog.StoreObject:
		if objects, err = storage.NewClient(cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	default:
		if db, err = database.Connect(cfg.Database); err != nil {
			return nil, err
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	store, err := catalog.NewStore(ctx, cfg.Catalog, db, objects, cfg.Storage.Bucket, logg)
	if err != nil {
		return nil, err
	}

	// 4. Remote API client
	api, err := client.New(cfg.Client, logg)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		service: catalog.NewService(store, catalog.NewRemote(api), cfg.Sync, metrics, logg),
	}, nil
}
