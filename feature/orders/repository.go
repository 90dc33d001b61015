package orders

import (
	"context"
	"errors"
	"fmt"

	"merch-manager/core/catalog"

	"gorm.io/gorm"
)

// Repository persists orders through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates an order repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// List returns every order, newest first.
func (r *Repository) List(ctx context.Context) ([]catalog.Order, error) {
	var rows []OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Order("timestamp DESC, order_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	out := make([]catalog.Order, len(rows))
	for i, m := range rows {
		out[i] = m.toCatalog()
	}
	return out, nil
}

// Find returns one order.
func (r *Repository) Find(ctx context.Context, orderID string) (catalog.Order, error) {
	var m OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("order_id = ?", orderID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return catalog.Order{}, fmt.Errorf("failed to query order: %w", err)
	}
	return m.toCatalog(), nil
}

// Create inserts an order with its lines.
func (r *Repository) Create(ctx context.Context, o catalog.Order) error {
	m := fromCatalog(o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of an existing order.
func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status catalog.OrderStatus) error {
	db := r.db.WithContext(ctx)

	var m OrderModel
	if err := db.Select("order_id").Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return fmt.Errorf("failed to query order: %w", err)
	}

	if err := db.Model(&OrderModel{}).Where("order_id = ?", orderID).Update("status", string(status)).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}
