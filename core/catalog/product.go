package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductType is a validated product type name.
// "bundle" is special; every other registered type describes an item product.
type ProductType string

// TypeBundle marks products composed of other products.
const TypeBundle ProductType = "bundle"

// IsBundle reports whether the type is the bundle type, ignoring case.
func (t ProductType) IsBundle() bool {
	return strings.EqualFold(string(t), string(TypeBundle))
}

// Product is the catalog record shared by item and bundle products.
type Product struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Type      ProductType     `json:"type"`
	Image     *string         `json:"product_image"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Item is the stock record of one variant of an item product.
type Item struct {
	ItemID    string `json:"item_id"`
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

// Bundle is the recipe of a bundle product.
type Bundle struct {
	BundleID  string      `json:"bundle_id"`
	ProductID string      `json:"product_id"`
	Items     []Component `json:"items"`
}

// Component is one recipe row: how many units of a product one bundle consumes.
type Component struct {
	ProductID string
	Quantity  int
}

// MarshalJSON encodes the component as ["<product_id>", quantity].
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.ProductID, c.Quantity})
}

// UnmarshalJSON accepts ["<id>", qty], [{"product_id": "<id>"}, qty]
// and {"product_id": "<id>", "quantity": qty}.
func (c *Component) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("invalid bundle component: %w", err)
		}
		c.ProductID, c.Quantity = obj.ProductID, obj.Quantity
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid bundle component: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid bundle component: expected [product, quantity], got %d elements", len(pair))
	}

	ref := bytes.TrimSpace(pair[0])
	switch {
	case len(ref) > 0 && ref[0] == '"':
		if err := json.Unmarshal(ref, &c.ProductID); err != nil {
			return fmt.Errorf("invalid bundle component id: %w", err)
		}
	case len(ref) > 0 && ref[0] == '{':
		var p struct {
			ProductID string `json:"product_id"`
		}
		if err := json.Unmarshal(ref, &p); err != nil {
			return fmt.Errorf("invalid bundle component product: %w", err)
		}
		c.ProductID = p.ProductID
	default:
		return errors.New("invalid bundle component: product must be an id or a product object")
	}

	if err := json.Unmarshal(pair[1], &c.Quantity); err != nil {
		return fmt.Errorf("invalid bundle component quantity: %w", err)
	}
	return nil
}

// Entry pairs a product with its variant records or its bundle recipe.
type Entry struct {
	Product Product
	Items   []Item
	Bundle  *Bundle
}

// IsBundle reports whether the entry describes a bundle product.
func (e Entry) IsBundle() bool {
	return e.Product.Type.IsBundle()
}

// Components returns the bundle recipe, or nil for item products.
func (e Entry) Components() []Component {
	if !e.IsBundle() || e.Bundle == nil {
		return nil
	}
	return e.Bundle.Items
}

// TotalStock sums the quantities of every variant record.
func (e Entry) TotalStock() int {
	total := 0
	for _, it := range e.Items {
		total += it.Quantity
	}
	return total
}

type entryJSON struct {
	Product Product         `json:"product"`
	Info    json.RawMessage `json:"info"`
}

// MarshalJSON encodes the entry as {"product": ..., "info": [...] | {...}}.
func (e Entry) MarshalJSON() ([]byte, error) {
	var info any
	if e.IsBundle() {
		b := e.Bundle
		if b == nil {
			b = &Bundle{ProductID: e.Product.ProductID, Items: []Component{}}
		}
		info = b
	} else {
		items := e.Items
		if items == nil {
			items = []Item{}
		}
		info = items
	}

	raw, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{Product: e.Product, Info: raw})
}

// UnmarshalJSON decodes {"product": ..., "info": ...}; an array info is a list
// of variant records, an object info is a bundle recipe.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Product = raw.Product
	e.Items, e.Bundle = nil, nil

	info := bytes.TrimSpace(raw.Info)
	if len(info) == 0 || bytes.Equal(info, []byte("null")) {
		return nil
	}
	if info[0] == '[' {
		return json.Unmarshal(info, &e.Items)
	}
	e.Bundle = &Bundle{}
	return json.Unmarshal(info, e.Bundle)
}
