package products

import (
	"time"

	"merch-manager/core/catalog"

	"github.com/shopspring/decimal"
)

// ProductModel is the products table row.
type ProductModel struct {
	ProductID    string          `gorm:"column:product_id;primaryKey;size:36"`
	Name         string          `gorm:"column:name;size:255;not null;index"`
	Type         string          `gorm:"column:type;size:64;not null"`
	ProductImage *string         `gorm:"column:product_image;size:512"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (ProductModel) TableName() string { return "products" }

// ItemModel is one variant stock record.
type ItemModel struct {
	ItemID    string `gorm:"column:item_id;primaryKey;size:36"`
	ProductID string `gorm:"column:product_id;size:36;not null;index"`
	Size      string `gorm:"column:size;size:64"`
	Color     string `gorm:"column:color;size:64"`
	Variant   string `gorm:"column:variant;size:128"`
	Quantity  int    `gorm:"column:quantity;not null;default:0"`
}

func (ItemModel) TableName() string { return "items" }

// BundleModel links a bundle product to its recipe rows.
type BundleModel struct {
	BundleID  string `gorm:"column:bundle_id;primaryKey;size:36"`
	ProductID string `gorm:"column:product_id;size:36;not null;uniqueIndex"`
}

func (BundleModel) TableName() string { return "bundles" }

// BundleItemModel is one recipe row of a bundle.
type BundleItemModel struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement"`
	BundleID    string `gorm:"column:bundle_id;size:36;not null;index"`
	ComponentID string `gorm:"column:component_id;size:36;not null"`
	Quantity    int    `gorm:"column:quantity;not null"`
	Position    int    `gorm:"column:position;not null;default:0"`
}

func (BundleItemModel) TableName() string { return "bundle_items" }

// Models returns the tables owned by the products feature, for migration.
func Models() []any {
	return []any{&ProductModel{}, &ItemModel{}, &BundleModel{}, &BundleItemModel{}}
}

func (m ProductModel) toCatalog() catalog.Product {
	return catalog.Product{
		ProductID: m.ProductID,
		Name:      m.Name,
		Type:      catalog.ProductType(m.Type),
		Image:     m.ProductImage,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
	}
}

func (m ItemModel) toCatalog() catalog.Item {
	return catalog.Item{
		ItemID:    m.ItemID,
		ProductID: m.ProductID,
		Size:      m.Size,
		Color:     m.Color,
		Variant:   m.Variant,
		Quantity:  m.Quantity,
	}
}

// assemble joins rows into catalog entries, preserving product order.
func assemble(products []ProductModel, items []ItemModel, bundles []BundleModel, components []BundleItemModel) []catalog.Entry {
	itemsByProduct := make(map[string][]catalog.Item)
	for _, it := range items {
		itemsByProduct[it.ProductID] = append(itemsByProduct[it.ProductID], it.toCatalog())
	}

	componentsByBundle := make(map[string][]catalog.Component)
	for _, c := range components {
		componentsByBundle[c.BundleID] = append(componentsByBundle[c.BundleID], catalog.Component{
			ProductID: c.ComponentID,
			Quantity:  c.Quantity,
		})
	}

	bundleByProduct := make(map[string]*catalog.Bundle)
	for _, b := range bundles {
		bundleByProduct[b.ProductID] = &catalog.Bundle{
			BundleID:  b.BundleID,
			ProductID: b.ProductID,
			Items:     componentsByBundle[b.BundleID],
		}
	}

	entries := make([]catalog.Entry, 0, len(products))
	for _, p := range products {
		e := catalog.Entry{Product: p.toCatalog()}
		if e.IsBundle() {
			e.Bundle = bundleByProduct[p.ProductID]
		} else {
			e.Items = itemsByProduct[p.ProductID]
		}
		entries = append(entries, e)
	}
	return entries
}

// rows splits a catalog entry back into table rows.
func rows(e catalog.Entry) (ProductModel, []ItemModel, *BundleModel, []BundleItemModel) {
	p := ProductModel{
		ProductID:    e.Product.ProductID,
		Name:         e.Product.Name,
		Type:         string(e.Product.Type),
		ProductImage: e.Product.Image,
		Price:        e.Product.Price,
		CreatedAt:    e.Product.CreatedAt,
	}

	items := make([]ItemModel, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, ItemModel{
			ItemID:    it.ItemID,
			ProductID: p.ProductID,
			Size:      it.Size,
			Color:     it.Color,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
		})
	}

	if !e.IsBundle() || e.Bundle == nil {
		return p, items, nil, nil
	}
	b := &BundleModel{BundleID: e.Bundle.BundleID, ProductID: p.ProductID}
	components := make([]BundleItemModel, 0, len(e.Bundle.Items))
	for i, c := range e.Bundle.Items {
		components = append(components, BundleItemModel{
			BundleID:    b.BundleID,
			ComponentID: c.ProductID,
			Quantity:    c.Quantity,
			Position:    i,
		})
	}
	return p, nil, b, components
}
