package checks

import (
	"fmt"
	"strings"

	"merch-manager/core/catalog"
)

// Issue kinds reported by CheckCatalog.
const (
	IssueDanglingComponent = "dangling_component"
	IssueNestedBundle      = "nested_bundle"
	IssueEmptyBundle       = "empty_bundle"
	IssueNegativeQuantity  = "negative_quantity"
	IssueDuplicateName     = "duplicate_name"
	IssueUnknownType       = "unknown_type"
)

// Issue is one catalog inconsistency.
type Issue struct {
	Kind      string `json:"kind"`
	ProductID string `json:"product_id"`
	Product   string `json:"product"`
	Detail    string `json:"detail"`
}

// CatalogReport is the result of CheckCatalog.
type CatalogReport struct {
	Products int     `json:"products"`
	Issues   []Issue `json:"issues"`
}

// OK reports whether no issue was found.
func (r *CatalogReport) OK() bool {
	return len(r.Issues) == 0
}

// CheckCatalog looks for data the needs report would silently skip or
// misattribute: recipes pointing at missing or bundle products, negative
// stock, names shared by several products and unregistered types.
func CheckCatalog(entries []catalog.Entry, registry *catalog.Registry) *CatalogReport {
	report := &CatalogReport{Products: len(entries), Issues: []Issue{}}

	byID := make(map[string]catalog.Entry, len(entries))
	firstByName := make(map[string]string, len(entries))
	for _, e := range entries {
		byID[e.Product.ProductID] = e
	}

	add := func(kind string, e catalog.Entry, format string, args ...any) {
		report.Issues = append(report.Issues, Issue{
			Kind:      kind,
			ProductID: e.Product.ProductID,
			Product:   e.Product.Name,
			Detail:    fmt.Sprintf(format, args...),
		})
	}

	for _, e := range entries {
		if first, ok := firstByName[e.Product.Name]; ok {
			add(IssueDuplicateName, e, "name is also used by %s; orders resolve to the first product", first)
		} else {
			firstByName[e.Product.Name] = e.Product.ProductID
		}

		if _, err := registry.Parse(string(e.Product.Type)); err != nil {
			add(IssueUnknownType, e, "type %q is not registered", e.Product.Type)
		}

		if !e.IsBundle() {
			for _, it := range e.Items {
				if it.Quantity < 0 {
					add(IssueNegativeQuantity, e, "variant %q has quantity %d", variantName(it), it.Quantity)
				}
			}
			continue
		}

		components := e.Components()
		if len(components) == 0 {
			add(IssueEmptyBundle, e, "bundle has no components")
		}
		for _, c := range components {
			target, ok := byID[c.ProductID]
			switch {
			case !ok:
				add(IssueDanglingComponent, e, "component %s does not exist", c.ProductID)
			case target.IsBundle():
				add(IssueNestedBundle, e, "component %s is itself a bundle", target.Product.Name)
			}
			if c.Quantity <= 0 {
				add(IssueNegativeQuantity, e, "component %s has quantity %d", c.ProductID, c.Quantity)
			}
		}
	}

	return report
}

func variantName(it catalog.Item) string {
	var parts []string
	for _, p := range []string{it.Size, it.Color, it.Variant} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, " - ")
}
