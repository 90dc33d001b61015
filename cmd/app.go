package cmd

import (
	"context"
	"fmt"

	"merch-manager/core/catalog"
	"merch-manager/core/config"
	"merch-manager/core/database"
	"merch-manager/core/logger"
	"merch-manager/core/reconcile"
	"merch-manager/feature/orders"
	"merch-manager/feature/products"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the state every command starts from.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *catalog.Registry
}

func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &runtime{
		cfg:      cfg,
		logger:   logg,
		registry: catalog.NewRegistry(cfg.Catalog.TypeList()),
	}, nil
}

// repositories opens the database and returns the catalog and order stores.
func (r *runtime) repositories() (*gorm.DB, *products.Repository, *orders.Repository, error) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection required: %w", err)
	}
	r.logger.Info("Connected to database",
		zap.String("driver", r.cfg.Database.Driver),
		zap.String("name", r.cfg.Database.Name),
	)
	return db, products.NewRepository(db), orders.NewRepository(db), nil
}

// catalogCache builds the snapshot cache in front of the products table.
func (r *runtime) catalogCache(repo *products.Repository) *reconcile.CatalogCache {
	return reconcile.NewCatalogCache(r.cfg.Cache.CatalogTTL(), func(ctx context.Context) ([]catalog.Entry, error) {
		return repo.LoadCatalog(ctx)
	})
}

// migrate creates or updates every table the features own.
func migrate(db *gorm.DB) error {
	models := append(products.Models(), orders.Models()...)
	return database.Migrate(db, models...)
}
