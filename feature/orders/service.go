package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"merch-manager/core/catalog"
	"merch-manager/core/reconcile"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateOrderRequest is the payload of POST /orders.
type CreateOrderRequest struct {
	Email           string              `json:"email"`
	Name            string              `json:"name"`
	ContactNumber   string              `json:"contactNumber"`
	Items           []catalog.OrderItem `json:"items"`
	PaymentSchedule string              `json:"paymentSchedule"`
	ProofOfPayment  string              `json:"proofOfPayment"`
	Notes           string              `json:"notes"`
	Status          string              `json:"status"`
	TotalAmount     *decimal.Decimal    `json:"totalAmount"`
}

// Service handles order operations and the inventory needs report.
type Service struct {
	repo    *Repository
	catalog *reconcile.CatalogCache
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new orders service.
func NewService(repo *Repository, cache *reconcile.CatalogCache, logger *zap.Logger) *Service {
	return &Service{repo: repo, catalog: cache, logger: logger, now: time.Now}
}

// List returns orders matching search and status ("all" or empty for any).
func (s *Service) List(ctx context.Context, search, status string) ([]catalog.Order, error) {
	if status != "" && status != "all" {
		st, err := catalog.ParseOrderStatus(status)
		if err != nil {
			return nil, err
		}
		status = string(st)
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Order, 0, len(all))
	for _, o := range all {
		if o.Matches(search, status) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, orderID string) (catalog.Order, error) {
	return s.repo.Find(ctx, orderID)
}

// Create validates and stores an order. Lines get their product id from the
// catalog when omitted, and the total is priced from the catalog when not given.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (catalog.Order, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return catalog.Order{}, fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	}
	if len(req.Items) == 0 {
		return catalog.Order{}, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}

	status := catalog.StatusPending
	if req.Status != "" {
		st, err := catalog.ParseOrderStatus(req.Status)
		if err != nil {
			return catalog.Order{}, err
		}
		status = st
	}

	entries, err := s.catalog.Get(ctx)
	if err != nil {
		return catalog.Order{}, err
	}
	prices := newPriceList(entries)

	o := catalog.Order{
		OrderID:         uuid.NewString(),
		Timestamp:       s.now().UTC(),
		Email:           strings.TrimSpace(req.Email),
		Name:            name,
		ContactNumber:   strings.TrimSpace(req.ContactNumber),
		PaymentSchedule: req.PaymentSchedule,
		ProofOfPayment:  req.ProofOfPayment,
		Notes:           req.Notes,
		Status:          status,
	}

	total := decimal.Zero
	for _, it := range req.Items {
		it.Product = strings.TrimSpace(it.Product)
		if it.Product == "" || it.Quantity <= 0 {
			return catalog.Order{}, fmt.Errorf("%w: every item needs a product and a positive quantity", ErrInvalidOrder)
		}
		p, ok := prices.lookup(it.Product, it.ProductID)
		if ok && it.ProductID == "" {
			it.ProductID = p.ProductID
		}
		if ok {
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		o.Items = append(o.Items, it)
	}

	o.TotalAmount = total
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return catalog.Order{}, fmt.Errorf("%w: total must not be negative", ErrInvalidOrder)
		}
		o.TotalAmount = *req.TotalAmount
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return catalog.Order{}, err
	}
	return o, nil
}

// UpdateStatus validates and applies a status change.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (catalog.Order, error) {
	st, err := catalog.ParseOrderStatus(status)
	if err != nil {
		return catalog.Order{}, err
	}
	if err := s.repo.UpdateStatus(ctx, orderID, st); err != nil {
		return catalog.Order{}, err
	}
	return s.repo.Find(ctx, orderID)
}

// Open returns the orders that still consume stock: every order not cancelled.
func Open(all []catalog.Order) []catalog.Order {
	out := make([]catalog.Order, 0, len(all))
	for _, o := range all {
		if o.Status != catalog.StatusCancelled {
			out = append(out, o)
		}
	}
	return out
}

// InventoryNeeds computes the needs report over open orders.
func (s *Service) InventoryNeeds(ctx context.Context) (reconcile.Report, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return reconcile.Report{}, err
	}
	needs, err := s.catalog.Compute(ctx, Open(all))
	if err != nil {
		return reconcile.Report{}, err
	}
	return reconcile.NewReport(needs), nil
}

// Invoice renders the PDF invoice of an order.
func (s *Service) Invoice(ctx context.Context, orderID string) ([]byte, error) {
	o, err := s.repo.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	entries, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	return RenderInvoice(o, newPriceList(entries))
}

// priceList resolves catalog products the way the needs engine does:
// by id when given, otherwise by the first product with the name.
type priceList struct {
	byName map[string]catalog.Product
	byID   map[string]catalog.Product
}

func newPriceList(entries []catalog.Entry) priceList {
	pl := priceList{
		byName: make(map[string]catalog.Product, len(entries)),
		byID:   make(map[string]catalog.Product, len(entries)),
	}
	for _, e := range entries {
		if _, ok := pl.byName[e.Product.Name]; !ok {
			pl.byName[e.Product.Name] = e.Product
		}
		if _, ok := pl.byID[e.Product.ProductID]; !ok {
			pl.byID[e.Product.ProductID] = e.Product
		}
	}
	return pl
}

func (pl priceList) lookup(name, id string) (catalog.Product, bool) {
	if id != "" {
		if p, ok := pl.byID[id]; ok {
			return p, true
		}
	}
	p, ok := pl.byName[name]
	return p, ok
}
