package products

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"merch-manager/core/catalog"
	"merch-manager/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput is the product part of a create request.
type ProductInput struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

// ProductPatch is the product part of an update request; nil fields are kept.
type ProductPatch struct {
	Name  *string          `json:"name,omitempty"`
	Type  *string          `json:"type,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// ItemInput is one variant record of a request.
type ItemInput struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Variant  string `json:"variant"`
	Quantity int    `json:"quantity"`
}

// CreateItemRequest creates a product with variant stock.
type CreateItemRequest struct {
	Product ProductInput `json:"product"`
	Items   []ItemInput  `json:"items"`
}

// BundleInput is the recipe part of a bundle create request.
type BundleInput struct {
	Items []catalog.Component `json:"items"`
}

// CreateBundleRequest creates a bundle product.
type CreateBundleRequest struct {
	Product ProductInput `json:"product"`
	Bundle  BundleInput  `json:"bundle"`
}

// UpdateItemRequest patches an item product. A non-nil Items replaces every variant.
type UpdateItemRequest struct {
	Product ProductPatch `json:"product"`
	Items   []ItemInput  `json:"items"`
}

// UpdateBundleRequest patches a bundle product. A non-nil BundleItems replaces the recipe.
type UpdateBundleRequest struct {
	Product     ProductPatch        `json:"product"`
	BundleItems []catalog.Component `json:"bundleItems"`
}

// Service handles catalog operations.
type Service struct {
	repo     *Repository
	client   storage.Client
	storage  storage.Config
	registry *catalog.Registry
	logger   *zap.Logger

	mu       sync.Mutex
	onChange []func()
}

// NewService creates a new products service.
func NewService(repo *Repository, client storage.Client, cfg storage.Config, registry *catalog.Registry, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		client:   client,
		storage:  cfg,
		registry: registry,
		logger:   logger,
	}
}

// OnChange registers fn to run after every successful catalog write.
func (s *Service) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Service) changed() {
	s.mu.Lock()
	fns := append([]func(){}, s.onChange...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Types returns the accepted product types.
func (s *Service) Types() []catalog.ProductType {
	return s.registry.Types()
}

// List returns the catalog filtered by query.
func (s *Service) List(ctx context.Context, query string) ([]catalog.Entry, error) {
	entries, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return FilterEntries(entries, query), nil
}

// Get returns one catalog entry.
func (s *Service) Get(ctx context.Context, productID string) (catalog.Entry, error) {
	return s.repo.Find(ctx, productID)
}

// CreateItem validates and stores an item product.
func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (catalog.Entry, error) {
	name, err := validateName(req.Product.Name)
	if err != nil {
		return catalog.Entry{}, err
	}
	if err := validatePrice(req.Product.Price); err != nil {
		return catalog.Entry{}, err
	}
	typ, err := s.itemType(req.Product.Type)
	if err != nil {
		return catalog.Entry{}, err
	}

	product := &ProductModel{
		ProductID: newID(),
		Name:      name,
		Type:      string(typ),
		Price:     req.Product.Price,
	}
	items, err := itemModels(product.ProductID, req.Items)
	if err != nil {
		return catalog.Entry{}, err
	}

	if err := s.repo.CreateItemProduct(ctx, product, items); err != nil {
		return catalog.Entry{}, err
	}
	s.changed()

	entry := catalog.Entry{Product: product.toCatalog(), Items: make([]catalog.Item, 0, len(items))}
	for _, it := range items {
		entry.Items = append(entry.Items, it.toCatalog())
	}
	return entry, nil
}

// CreateBundle validates and stores a bundle product.
// Recipe rows without a product or with a non-positive quantity are dropped.
func (s *Service) CreateBundle(ctx context.Context, req CreateBundleRequest) (catalog.Entry, error) {
	name, err := validateName(req.Product.Name)
	if err != nil {
		return catalog.Entry{}, err
	}
	if err := validatePrice(req.Product.Price); err != nil {
		return catalog.Entry{}, err
	}
	if t := strings.TrimSpace(req.Product.Type); t != "" && !catalog.ProductType(t).IsBundle() {
		return catalog.Entry{}, fmt.Errorf("%w: bundle products must have type %q", ErrInvalidProduct, catalog.TypeBundle)
	}

	components, err := s.validComponents(ctx, req.Bundle.Items)
	if err != nil {
		return catalog.Entry{}, err
	}

	product := &ProductModel{
		ProductID: newID(),
		Name:      name,
		Type:      string(catalog.TypeBundle),
		Price:     req.Product.Price,
	}
	bundle := &BundleModel{BundleID: newID(), ProductID: product.ProductID}
	rows := componentModels(bundle.BundleID, components)

	if err := s.repo.CreateBundleProduct(ctx, product, bundle, rows); err != nil {
		return catalog.Entry{}, err
	}
	s.changed()

	return catalog.Entry{
		Product: product.toCatalog(),
		Bundle:  &catalog.Bundle{BundleID: bundle.BundleID, ProductID: product.ProductID, Items: components},
	}, nil
}

// UpdateItem applies a partial update to an item product.
func (s *Service) UpdateItem(ctx context.Context, productID string, req UpdateItemRequest) (catalog.Entry, error) {
	updates, err := s.patchColumns(req.Product, false)
	if err != nil {
		return catalog.Entry{}, err
	}

	var items []ItemModel
	if req.Items != nil {
		if items, err = itemModels(productID, req.Items); err != nil {
			return catalog.Entry{}, err
		}
		if items == nil {
			items = []ItemModel{}
		}
	}

	if err := s.repo.UpdateItemProduct(ctx, productID, updates, items); err != nil {
		return catalog.Entry{}, err
	}
	s.changed()
	return s.repo.Find(ctx, productID)
}

// UpdateBundle applies a partial update to a bundle product.
func (s *Service) UpdateBundle(ctx context.Context, productID string, req UpdateBundleRequest) (catalog.Entry, error) {
	updates, err := s.patchColumns(req.Product, true)
	if err != nil {
		return catalog.Entry{}, err
	}

	var rows []BundleItemModel
	if req.BundleItems != nil {
		components, err := s.validComponents(ctx, req.BundleItems)
		if err != nil {
			return catalog.Entry{}, err
		}
		for _, c := range components {
			if c.ProductID == productID {
				return catalog.Entry{}, fmt.Errorf("%w: a bundle cannot contain itself", ErrInvalidComponent)
			}
		}
		rows = componentModels("", components)
	}

	if err := s.repo.UpdateBundleProduct(ctx, productID, updates, rows); err != nil {
		return catalog.Entry{}, err
	}
	s.changed()
	return s.repo.Find(ctx, productID)
}

// Delete removes a product and its stored images.
func (s *Service) Delete(ctx context.Context, productID string) error {
	deleted, err := s.repo.Delete(ctx, productID)
	if err != nil {
		return err
	}
	s.changed()

	if deleted.ProductImage != nil {
		n, err := storage.RemoveFolder(ctx, s.client, s.storage.Bucket, s.storage.ProductFolder(productID))
		if err != nil {
			// The row is gone; an orphaned image is reported by the storage integrity check.
			s.logger.Warn("Failed to remove product images",
				zap.String("product_id", productID), zap.Error(err))
		} else {
			s.logger.Debug("Removed product images", zap.String("product_id", productID), zap.Int("objects", n))
		}
	}
	return nil
}

// UploadImage crops and stores a product image with its thumbnail.
func (s *Service) UploadImage(ctx context.Context, productID string, r io.Reader, crop CropRect) (catalog.Entry, error) {
	if _, err := s.repo.Find(ctx, productID); err != nil {
		return catalog.Entry{}, err
	}

	img, err := ProcessImage(r, crop)
	if err != nil {
		return catalog.Entry{}, err
	}

	key := s.storage.ImageKey(productID)
	uploads := []struct {
		key  string
		body []byte
	}{
		{key, img.Image},
		{s.storage.ThumbnailKey(productID), img.Thumbnail},
	}
	for _, u := range uploads {
		_, err := s.client.PutObject(ctx, s.storage.Bucket, u.key, bytes.NewReader(u.body), int64(len(u.body)),
			minio.PutObjectOptions{ContentType: "image/jpeg"})
		if err != nil {
			return catalog.Entry{}, fmt.Errorf("failed to upload %s: %w", u.key, err)
		}
	}

	if err := s.repo.SetImage(ctx, productID, key); err != nil {
		return catalog.Entry{}, err
	}
	s.changed()

	s.logger.Info("Stored product image",
		zap.String("product_id", productID),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))
	return s.repo.Find(ctx, productID)
}

// OpenImage streams a product's image, or its thumbnail.
func (s *Service) OpenImage(ctx context.Context, productID string, thumbnail bool) (io.ReadCloser, error) {
	entry, err := s.repo.Find(ctx, productID)
	if err != nil {
		return nil, err
	}
	if entry.Product.Image == nil || *entry.Product.Image == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoImage, productID)
	}

	key := *entry.Product.Image
	if thumbnail {
		key = s.storage.ThumbnailKey(productID)
	}
	// GetObject is lazy, so a missing object would only fail mid-stream.
	if _, err := s.client.StatObject(ctx, s.storage.Bucket, key, minio.StatObjectOptions{}); err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s is missing from storage", ErrNoImage, key)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	obj, err := s.client.GetObject(ctx, s.storage.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	return obj, nil
}

func (s *Service) itemType(raw string) (catalog.ProductType, error) {
	typ, err := s.registry.Parse(raw)
	if err != nil {
		return "", err
	}
	if typ.IsBundle() {
		return "", fmt.Errorf("%w: use create-bundle for bundle products", ErrInvalidProduct)
	}
	return typ, nil
}

func (s *Service) patchColumns(p ProductPatch, bundle bool) (map[string]any, error) {
	updates := make(map[string]any)
	if p.Name != nil {
		name, err := validateName(*p.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return nil, err
		}
		updates["price"] = *p.Price
	}
	if p.Type != nil {
		if bundle {
			if !catalog.ProductType(*p.Type).IsBundle() {
				return nil, fmt.Errorf("%w: bundle products must keep type %q", ErrInvalidProduct, catalog.TypeBundle)
			}
		} else {
			typ, err := s.itemType(*p.Type)
			if err != nil {
				return nil, err
			}
			updates["type"] = string(typ)
		}
	}
	return updates, nil
}

// validComponents drops blank rows and checks that every remaining component
// references an existing item product.
func (s *Service) validComponents(ctx context.Context, in []catalog.Component) ([]catalog.Component, error) {
	var components []catalog.Component
	var ids []string
	for _, c := range in {
		c.ProductID = strings.TrimSpace(c.ProductID)
		if c.ProductID == "" || c.Quantity <= 0 {
			continue
		}
		components = append(components, c)
		ids = append(ids, c.ProductID)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: a bundle needs at least one component", ErrInvalidComponent)
	}

	found, err := s.repo.FindProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range components {
		p, ok := found[c.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s does not exist", ErrInvalidComponent, c.ProductID)
		}
		if catalog.ProductType(p.Type).IsBundle() {
			return nil, fmt.Errorf("%w: %s is a bundle", ErrInvalidComponent, p.Name)
		}
	}
	return components, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	return name, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	return nil
}

func itemModels(productID string, in []ItemInput) ([]ItemModel, error) {
	var out []ItemModel
	for _, it := range in {
		if it.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
		}
		out = append(out, ItemModel{
			ItemID:    newID(),
			ProductID: productID,
			Size:      strings.TrimSpace(it.Size),
			Color:     strings.TrimSpace(it.Color),
			Variant:   strings.TrimSpace(it.Variant),
			Quantity:  it.Quantity,
		})
	}
	return out, nil
}

func componentModels(bundleID string, components []catalog.Component) []BundleItemModel {
	rows := make([]BundleItemModel, len(components))
	for i, c := range components {
		rows[i] = BundleItemModel{
			BundleID:    bundleID,
			ComponentID: c.ProductID,
			Quantity:    c.Quantity,
			Position:    i,
		}
	}
	return rows
}

func newID() string {
	return uuid.NewString()
}
