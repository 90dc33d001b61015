package products

import (
	"context"
	"errors"
	"fmt"

	"merch-manager/core/catalog"

	"gorm.io/gorm"
)

// Repository persists the catalog through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LoadCatalog returns every product with its variants or recipe.
func (r *Repository) LoadCatalog(ctx context.Context) ([]catalog.Entry, error) {
	return r.load(ctx, nil)
}

// Find returns the entry of one product.
func (r *Repository) Find(ctx context.Context, productID string) (catalog.Entry, error) {
	entries, err := r.load(ctx, []string{productID})
	if err != nil {
		return catalog.Entry{}, err
	}
	if len(entries) == 0 {
		return catalog.Entry{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return entries[0], nil
}

// FindProducts returns the product rows for ids, keyed by id. Unknown ids are absent.
func (r *Repository) FindProducts(ctx context.Context, ids []string) (map[string]ProductModel, error) {
	out := make(map[string]ProductModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []ProductModel
	if err := r.db.WithContext(ctx).Where("product_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	for _, p := range rows {
		out[p.ProductID] = p
	}
	return out, nil
}

func (r *Repository) load(ctx context.Context, ids []string) ([]catalog.Entry, error) {
	db := r.db.WithContext(ctx)

	var products []ProductModel
	q := db.Order("created_at, product_id")
	if ids != nil {
		q = q.Where("product_id IN ?", ids)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	if len(products) == 0 {
		return []catalog.Entry{}, nil
	}

	var items []ItemModel
	q = db.Order("product_id, size, color, variant")
	if ids != nil {
		q = q.Where("product_id IN ?", ids)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	var bundles []BundleModel
	q = db.Model(&BundleModel{})
	if ids != nil {
		q = q.Where("product_id IN ?", ids)
	}
	if err := q.Find(&bundles).Error; err != nil {
		return nil, fmt.Errorf("failed to query bundles: %w", err)
	}

	var components []BundleItemModel
	if len(bundles) > 0 {
		bundleIDs := make([]string, len(bundles))
		for i, b := range bundles {
			bundleIDs[i] = b.BundleID
		}
		if err := db.Where("bundle_id IN ?", bundleIDs).Order("bundle_id, position").Find(&components).Error; err != nil {
			return nil, fmt.Errorf("failed to query bundle items: %w", err)
		}
	}

	return assemble(products, items, bundles, components), nil
}

// CreateItemProduct inserts a product with its variant records.
func (r *Repository) CreateItemProduct(ctx context.Context, p *ProductModel, items []ItemModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to insert items: %w", err)
			}
		}
		return nil
	})
}

// CreateBundleProduct inserts a bundle product with its recipe.
func (r *Repository) CreateBundleProduct(ctx context.Context, p *ProductModel, b *BundleModel, components []BundleItemModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("failed to insert bundle: %w", err)
		}
		if err := tx.Create(&components).Error; err != nil {
			return fmt.Errorf("failed to insert bundle items: %w", err)
		}
		return nil
	})
}

// UpdateItemProduct applies column updates and, when items is non-nil,
// replaces the variant records.
func (r *Repository) UpdateItemProduct(ctx context.Context, productID string, updates map[string]any, items []ItemModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateProduct(tx, productID, updates, false); err != nil {
			return err
		}
		if items == nil {
			return nil
		}
		if err := tx.Where("product_id = ?", productID).Delete(&ItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to insert items: %w", err)
			}
		}
		return nil
	})
}

// UpdateBundleProduct applies column updates and, when components is non-nil,
// replaces the recipe.
func (r *Repository) UpdateBundleProduct(ctx context.Context, productID string, updates map[string]any, components []BundleItemModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateProduct(tx, productID, updates, true); err != nil {
			return err
		}
		if components == nil {
			return nil
		}

		var bundle BundleModel
		err := tx.Where("product_id = ?", productID).First(&bundle).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			bundle = BundleModel{BundleID: newID(), ProductID: productID}
			if err := tx.Create(&bundle).Error; err != nil {
				return fmt.Errorf("failed to insert bundle: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to query bundle: %w", err)
		default:
			if err := tx.Where("bundle_id = ?", bundle.BundleID).Delete(&BundleItemModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear bundle items: %w", err)
			}
		}

		for i := range components {
			components[i].BundleID = bundle.BundleID
		}
		if err := tx.Create(&components).Error; err != nil {
			return fmt.Errorf("failed to insert bundle items: %w", err)
		}
		return nil
	})
}

func updateProduct(tx *gorm.DB, productID string, updates map[string]any, bundle bool) error {
	var existing ProductModel
	if err := tx.Where("product_id = ?", productID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return fmt.Errorf("failed to query product: %w", err)
	}
	if catalog.ProductType(existing.Type).IsBundle() != bundle {
		return fmt.Errorf("%w: %s has type %q", ErrInvalidProduct, productID, existing.Type)
	}
	if len(updates) == 0 {
		return nil
	}
	if err := tx.Model(&ProductModel{}).Where("product_id = ?", productID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// SetImage stores the object key of a product's image.
func (r *Repository) SetImage(ctx context.Context, productID, key string) error {
	res := r.db.WithContext(ctx).Model(&ProductModel{}).Where("product_id = ?", productID).Update("product_image", key)
	if res.Error != nil {
		return fmt.Errorf("failed to save product image: %w", res.Error)
	}
	return nil
}

// Delete removes a product with its variant records and recipe.
// Recipes of other bundles that reference it are left untouched.
func (r *Repository) Delete(ctx context.Context, productID string) (ProductModel, error) {
	var existing ProductModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
			}
			return fmt.Errorf("failed to query product: %w", err)
		}

		if err := tx.Where("product_id = ?", productID).Delete(&ItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}

		var bundleIDs []string
		if err := tx.Model(&BundleModel{}).Where("product_id = ?", productID).Pluck("bundle_id", &bundleIDs).Error; err != nil {
			return fmt.Errorf("failed to query bundle: %w", err)
		}
		if len(bundleIDs) > 0 {
			if err := tx.Where("bundle_id IN ?", bundleIDs).Delete(&BundleItemModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete bundle items: %w", err)
			}
			if err := tx.Where("bundle_id IN ?", bundleIDs).Delete(&BundleModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete bundle: %w", err)
			}
		}

		if err := tx.Where("product_id = ?", productID).Delete(&ProductModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	return existing, err
}

// Import inserts catalog entries in one transaction, keeping their ids.
func (r *Repository) Import(ctx context.Context, entries []catalog.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			p, items, b, components := rows(e)
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("failed to insert product %s: %w", p.ProductID, err)
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return fmt.Errorf("failed to insert items of %s: %w", p.ProductID, err)
				}
			}
			if b == nil {
				continue
			}
			if err := tx.Create(b).Error; err != nil {
				return fmt.Errorf("failed to insert bundle of %s: %w", p.ProductID, err)
			}
			if len(components) > 0 {
				if err := tx.Create(&components).Error; err != nil {
					return fmt.Errorf("failed to insert bundle items of %s: %w", p.ProductID, err)
				}
			}
		}
		return nil
	})
}
