package dashboard

import (
	"context"
	"sort"

	"merch-manager/core/catalog"
	"merch-manager/core/reconcile"
	"merch-manager/feature/orders"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// recentOrders is how many orders the overview lists.
const recentOrders = 5

// OrderLister lists every stored order.
type OrderLister interface {
	List(ctx context.Context) ([]catalog.Order, error)
}

// LowStockVariant is a variant record at or below the low stock threshold.
type LowStockVariant struct {
	Product   string `json:"product"`
	ProductID string `json:"product_id"`
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
}

// Overview is the dashboard payload.
type Overview struct {
	OrdersByStatus map[catalog.OrderStatus]int `json:"orders_by_status"`
	TotalOrders    int                         `json:"total_orders"`
	Revenue        decimal.Decimal             `json:"revenue"`
	Products       int                         `json:"products"`
	Bundles        int                         `json:"bundles"`
	TotalStock     int                         `json:"total_stock"`
	Needs          reconcile.Summary           `json:"needs"`
	Restock        []reconcile.RestockLine     `json:"restock"`
	LowStock       []LowStockVariant           `json:"low_stock"`
	RecentOrders   []catalog.Order             `json:"recent_orders"`
}

// Service builds the dashboard overview.
type Service struct {
	orders    OrderLister
	catalog   *reconcile.CatalogCache
	threshold int
	logger    *zap.Logger
}

// NewService creates a dashboard service. Variants with at most threshold
// units are reported as low stock.
func NewService(orders OrderLister, cache *reconcile.CatalogCache, threshold int, logger *zap.Logger) *Service {
	return &Service{orders: orders, catalog: cache, threshold: threshold, logger: logger}
}

// Overview aggregates order, revenue and stock figures.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		OrdersByStatus: make(map[catalog.OrderStatus]int, len(catalog.Statuses)),
		TotalOrders:    len(all),
		Revenue:        decimal.Zero,
		LowStock:       []LowStockVariant{},
	}
	for _, st := range catalog.Statuses {
		ov.OrdersByStatus[st] = 0
	}

	for _, o := range all {
		ov.OrdersByStatus[o.Status]++
	}
	open := orders.Open(all)
	for _, o := range open {
		ov.Revenue = ov.Revenue.Add(o.TotalAmount)
	}

	for _, e := range entries {
		if e.IsBundle() {
			ov.Bundles++
			continue
		}
		ov.Products++
		ov.TotalStock += e.TotalStock()
		for _, it := range e.Items {
			if it.Quantity > s.threshold {
				continue
			}
			key := reconcile.VariantKey(it.Size, it.Color, it.Variant)
			ov.LowStock = append(ov.LowStock, LowStockVariant{
				Product:   e.Product.Name,
				ProductID: e.Product.ProductID,
				Label: reconcile.Label(key, reconcile.VariantDetails{
					Size: it.Size, Color: it.Color, Variant: it.Variant,
				}),
				Quantity: it.Quantity,
			})
		}
	}
	sort.SliceStable(ov.LowStock, func(i, j int) bool {
		return ov.LowStock[i].Quantity < ov.LowStock[j].Quantity
	})

	needs := reconcile.ComputeInventoryNeeds(open, entries)
	ov.Needs = needs.Summary()
	ov.Restock = needs.RestockPlan()

	n := len(all)
	if n > recentOrders {
		n = recentOrders
	}
	ov.RecentOrders = all[:n]

	return ov, nil
}
