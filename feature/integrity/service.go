package integrity

import (
	"context"

	"merch-manager/core/catalog"
	"merch-manager/core/reconcile"
	"merch-manager/core/storage"
	"merch-manager/feature/integrity/checks"

	"go.uber.org/zap"
)

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	cfg      storage.Config
	registry *catalog.Registry
	catalog  *reconcile.CatalogCache
	logger   *zap.Logger
}

// NewService creates a new integrity service.
func NewService(client storage.Client, cfg storage.Config, registry *catalog.Registry, cache *reconcile.CatalogCache, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		cfg:      cfg,
		registry: registry,
		catalog:  cache,
		logger:   logger,
	}
}

// CheckCatalog validates product records and bundle recipes.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	entries, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckCatalog(entries, s.registry), nil
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.cfg)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.cfg, s.logger, missing)
}

// CheckImages compares recorded product images with the bucket contents.
func (s *Service) CheckImages(ctx context.Context) (*checks.ImageReport, error) {
	entries, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckImages(ctx, s.client, s.cfg, entries)
}
