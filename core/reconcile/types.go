package reconcile

import "encoding/json"

// VariantDetails describes what a variant bucket stands for.
type VariantDetails struct {
	Size    string `json:"size,omitempty"`
	Color   string `json:"color,omitempty"`
	Variant string `json:"variant,omitempty"`
}

// VariantCount is the demand and stock of one variant bucket.
type VariantCount struct {
	// Needed is the demand attributed to this bucket.
	Needed int `json:"needed"`

	// Available is the stock on hand for this bucket.
	Available int `json:"available"`

	// Details holds the size/color/variant the bucket was derived from.
	Details VariantDetails `json:"details"`
}

// Shortage returns max(0, Needed-Available).
func (v VariantCount) Shortage() int {
	return shortage(v.Needed, v.Available)
}

// Surplus returns max(0, Available-Needed).
func (v VariantCount) Surplus() int {
	return shortage(v.Available, v.Needed)
}

// ProductCount is the aggregated demand and stock of one product.
type ProductCount struct {
	// Name is the product display name the count is keyed by.
	Name string

	// Needed is the total demand across orders and bundles.
	Needed int

	// Available is the total stock across variant records.
	Available int

	// ProductID is the catalog id, when known.
	ProductID string

	keys     []string
	variants map[string]*VariantCount
}

func newProductCount(name, productID string) *ProductCount {
	return &ProductCount{
		Name:      name,
		ProductID: productID,
		variants:  make(map[string]*VariantCount),
	}
}

// Shortage returns max(0, Needed-Available).
func (p *ProductCount) Shortage() int {
	return shortage(p.Needed, p.Available)
}

// Surplus returns max(0, Available-Needed).
func (p *ProductCount) Surplus() int {
	return shortage(p.Available, p.Needed)
}

// Variant returns the bucket for a variant key.
func (p *ProductCount) Variant(key string) (VariantCount, bool) {
	v, ok := p.variants[key]
	if !ok {
		return VariantCount{}, false
	}
	return *v, true
}

// VariantKeys returns the variant keys in first-seen order.
func (p *ProductCount) VariantKeys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// variant returns the bucket for key, creating it with details if missing.
func (p *ProductCount) variant(key string, details VariantDetails) *VariantCount {
	if v, ok := p.variants[key]; ok {
		return v
	}
	v := &VariantCount{Details: details}
	p.variants[key] = v
	p.keys = append(p.keys, key)
	return v
}

type variantJSON struct {
	Key       string         `json:"key"`
	Label     string         `json:"label"`
	Needed    int            `json:"needed"`
	Available int            `json:"available"`
	Shortage  int            `json:"shortage"`
	Details   VariantDetails `json:"details"`
}

type productJSON struct {
	Name      string        `json:"name"`
	ProductID string        `json:"product_id,omitempty"`
	Needed    int           `json:"needed"`
	Available int           `json:"available"`
	Shortage  int           `json:"shortage"`
	Surplus   int           `json:"surplus"`
	Variants  []variantJSON `json:"variants"`
}

// MarshalJSON encodes the count with its derived shortage/surplus and the
// variant buckets in first-seen order.
func (p *ProductCount) MarshalJSON() ([]byte, error) {
	out := productJSON{
		Name:      p.Name,
		ProductID: p.ProductID,
		Needed:    p.Needed,
		Available: p.Available,
		Shortage:  p.Shortage(),
		Surplus:   p.Surplus(),
		Variants:  make([]variantJSON, 0, len(p.keys)),
	}
	for _, key := range p.keys {
		v := p.variants[key]
		out.Variants = append(out.Variants, variantJSON{
			Key:       key,
			Label:     Label(key, v.Details),
			Needed:    v.Needed,
			Available: v.Available,
			Shortage:  v.Shortage(),
			Details:   v.Details,
		})
	}
	return json.Marshal(out)
}

// Needs maps product names to their counts, preserving first-seen order.
type Needs struct {
	names    []string
	products map[string]*ProductCount
}

func newNeeds() *Needs {
	return &Needs{products: make(map[string]*ProductCount)}
}

// Len returns the number of products with demand.
func (n *Needs) Len() int {
	return len(n.names)
}

// Get returns the count for a product name.
func (n *Needs) Get(name string) (*ProductCount, bool) {
	p, ok := n.products[name]
	return p, ok
}

// Names returns product names in first-seen order.
func (n *Needs) Names() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// Products returns the counts in first-seen order.
func (n *Needs) Products() []*ProductCount {
	out := make([]*ProductCount, 0, len(n.names))
	for _, name := range n.names {
		out = append(out, n.products[name])
	}
	return out
}

// product returns the count for name, creating it if missing.
func (n *Needs) product(name, productID string) *ProductCount {
	if p, ok := n.products[name]; ok {
		return p
	}
	p := newProductCount(name, productID)
	n.products[name] = p
	n.names = append(n.names, name)
	return p
}

// MarshalJSON encodes the counts as an ordered array.
func (n *Needs) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Products())
}

func shortage(needed, available int) int {
	if needed > available {
		return needed - available
	}
	return 0
}
