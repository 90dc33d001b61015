package fixtures

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"merch-manager/core/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is a YAML document holding a catalog and a batch of orders.
type File struct {
	Products []Product `yaml:"products"`
	Orders   []Order   `yaml:"orders"`
}

// Product is a catalog product. Items apply to item products and
// Components to bundles.
type Product struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"`
	Price      string      `yaml:"price"`
	Image      string      `yaml:"image"`
	Items      []Item      `yaml:"items"`
	Components []Component `yaml:"components"`
}

// Item is one variant stock record.
type Item struct {
	ID       string `yaml:"id"`
	Size     string `yaml:"size"`
	Color    string `yaml:"color"`
	Variant  string `yaml:"variant"`
	Quantity int    `yaml:"quantity"`
}

// Component references another product by id or name.
type Component struct {
	Product  string `yaml:"product"`
	Quantity int    `yaml:"quantity"`
}

// Order is a customer order.
type Order struct {
	ID              string      `yaml:"id"`
	Timestamp       time.Time   `yaml:"timestamp"`
	Name            string      `yaml:"name"`
	Email           string      `yaml:"email"`
	ContactNumber   string      `yaml:"contact_number"`
	PaymentSchedule string      `yaml:"payment_schedule"`
	Notes           string      `yaml:"notes"`
	Status          string      `yaml:"status"`
	Total           string      `yaml:"total"`
	Items           []OrderItem `yaml:"items"`
}

// OrderItem is one order line; Product is the product name.
type OrderItem struct {
	Product  string `yaml:"product"`
	Size     string `yaml:"size"`
	Color    string `yaml:"color"`
	Variant  string `yaml:"variant"`
	Quantity int    `yaml:"quantity"`
}

// Load decodes a fixture document.
func Load(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFile opens and decodes the fixture at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Catalog converts the fixture products into catalog entries, validating
// types against registry. Missing ids are generated; components may name
// their product by id or by name.
func (f *File) Catalog(registry *catalog.Registry) ([]catalog.Entry, error) {
	entries := make([]catalog.Entry, 0, len(f.Products))
	ids := make(map[string]string, len(f.Products))

	for i, p := range f.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		t, err := registry.Parse(p.Type)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		price, err := parseMoney(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}

		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		ids[id] = id
		if _, taken := ids[p.Name]; !taken {
			ids[p.Name] = id
		}

		e := catalog.Entry{Product: catalog.Product{
			ProductID: id,
			Name:      p.Name,
			Type:      t,
			Price:     price,
		}}
		if p.Image != "" {
			img := p.Image
			e.Product.Image = &img
		}
		for _, it := range p.Items {
			itemID := it.ID
			if itemID == "" {
				itemID = uuid.NewString()
			}
			e.Items = append(e.Items, catalog.Item{
				ItemID:    itemID,
				ProductID: id,
				Size:      it.Size,
				Color:     it.Color,
				Variant:   it.Variant,
				Quantity:  it.Quantity,
			})
		}
		entries = append(entries, e)
	}

	// Components are resolved once every product id is known.
	for i, p := range f.Products {
		if !entries[i].IsBundle() {
			continue
		}
		b := &catalog.Bundle{BundleID: uuid.NewString(), ProductID: entries[i].Product.ProductID}
		for _, c := range p.Components {
			ref, ok := ids[c.Product]
			if !ok {
				// Kept dangling so the integrity check can report it.
				ref = c.Product
			}
			b.Items = append(b.Items, catalog.Component{ProductID: ref, Quantity: c.Quantity})
		}
		entries[i].Bundle = b
	}

	return entries, nil
}

// CatalogOrders converts the fixture orders. Status defaults to pending and
// the timestamp to now.
func (f *File) CatalogOrders(now time.Time) ([]catalog.Order, error) {
	orders := make([]catalog.Order, 0, len(f.Orders))
	for i, o := range f.Orders {
		status := catalog.StatusPending
		if o.Status != "" {
			st, err := catalog.ParseOrderStatus(o.Status)
			if err != nil {
				return nil, fmt.Errorf("order %d: %w", i, err)
			}
			status = st
		}
		total, err := parseMoney(o.Total)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}

		co := catalog.Order{
			OrderID:         o.ID,
			Timestamp:       o.Timestamp,
			Name:            o.Name,
			Email:           o.Email,
			ContactNumber:   o.ContactNumber,
			PaymentSchedule: o.PaymentSchedule,
			Notes:           o.Notes,
			Status:          status,
			TotalAmount:     total,
		}
		if co.OrderID == "" {
			co.OrderID = uuid.NewString()
		}
		if co.Timestamp.IsZero() {
			co.Timestamp = now
		}
		for _, it := range o.Items {
			co.Items = append(co.Items, catalog.OrderItem{
				Product:  it.Product,
				Size:     it.Size,
				Color:    it.Color,
				Variant:  it.Variant,
				Quantity: it.Quantity,
			})
		}
		orders = append(orders, co)
	}
	return orders, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: must not be negative", s)
	}
	return d, nil
}
