package reconcile

// Summary provides aggregate counts over a Needs result.
type Summary struct {
	// TotalProducts is the number of products with demand.
	TotalProducts int `json:"total_products"`

	// ProductsWithShortage counts products whose demand exceeds stock.
	ProductsWithShortage int `json:"products_with_shortage"`

	// TotalNeeded is the demand summed over all products.
	TotalNeeded int `json:"total_needed"`

	// TotalAvailable is the stock summed over all products with demand.
	TotalAvailable int `json:"total_available"`

	// TotalShortage is the sum of per-product shortages.
	TotalShortage int `json:"total_shortage"`
}

// Summary computes aggregate counts.
func (n *Needs) Summary() Summary {
	s := Summary{TotalProducts: n.Len()}
	for _, p := range n.Products() {
		s.TotalNeeded += p.Needed
		s.TotalAvailable += p.Available
		if sh := p.Shortage(); sh > 0 {
			s.ProductsWithShortage++
			s.TotalShortage += sh
		}
	}
	return s
}

// VariantShortage is the amount to order for one variant bucket.
type VariantShortage struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// RestockLine is the amount to order for one product.
type RestockLine struct {
	Product   string            `json:"product"`
	ProductID string            `json:"product_id,omitempty"`
	Quantity  int               `json:"quantity"`
	Variants  []VariantShortage `json:"variants"`
}

// RestockPlan lists the products that need restocking, in first-seen order.
// A product appears when either its total or one of its variant buckets is
// short; variant lines are listed in bucket order.
func (n *Needs) RestockPlan() []RestockLine {
	plan := make([]RestockLine, 0)
	for _, p := range n.Products() {
		line := RestockLine{
			Product:   p.Name,
			ProductID: p.ProductID,
			Quantity:  p.Shortage(),
			Variants:  []VariantShortage{},
		}
		for _, key := range p.keys {
			v := p.variants[key]
			if sh := v.Shortage(); sh > 0 {
				line.Variants = append(line.Variants, VariantShortage{
					Key:      key,
					Label:    Label(key, v.Details),
					Quantity: sh,
				})
			}
		}
		if line.Quantity > 0 || len(line.Variants) > 0 {
			plan = append(plan, line)
		}
	}
	return plan
}

// Report bundles a Needs result with its summary and restock plan.
type Report struct {
	Products *Needs        `json:"products"`
	Summary  Summary       `json:"summary"`
	Restock  []RestockLine `json:"restock"`
}

// NewReport builds the full report for a Needs result.
func NewReport(n *Needs) Report {
	return Report{
		Products: n,
		Summary:  n.Summary(),
		Restock:  n.RestockPlan(),
	}
}
