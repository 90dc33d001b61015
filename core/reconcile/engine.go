package reconcile

import "merch-manager/core/catalog"

// ComputeInventoryNeeds aggregates order demand against catalog stock.
//
// The demand pass decomposes bundle lines into their components and books
// every other line directly under its product name and variant key. The
// availability pass then fills in stock for every product that has demand.
// Products without demand are not part of the result.
//
// The function is pure: it reads its inputs, allocates a fresh result and
// may be called concurrently.
func ComputeInventoryNeeds(orders []catalog.Order, entries []catalog.Entry) *Needs {
	idx := buildIndex(entries)
	needs := newNeeds()

	for _, order := range orders {
		for _, line := range order.Items {
			if entry, ok := idx.byName[line.Product]; ok && entry.IsBundle() {
				addBundleDemand(needs, idx, entry, line.Quantity)
				continue
			}
			addDirectDemand(needs, line)
		}
	}

	applyAvailability(needs, entries)
	return needs
}

// catalogIndex resolves entries by name and by id. The first entry wins on
// duplicates.
type catalogIndex struct {
	byName map[string]*catalog.Entry
	byID   map[string]*catalog.Entry
}

func buildIndex(entries []catalog.Entry) catalogIndex {
	idx := catalogIndex{
		byName: make(map[string]*catalog.Entry, len(entries)),
		byID:   make(map[string]*catalog.Entry, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if _, ok := idx.byName[e.Product.Name]; !ok {
			idx.byName[e.Product.Name] = e
		}
		if _, ok := idx.byID[e.Product.ProductID]; !ok {
			idx.byID[e.Product.ProductID] = e
		}
	}
	return idx
}

func addBundleDemand(needs *Needs, idx catalogIndex, bundle *catalog.Entry, quantity int) {
	for _, c := range bundle.Components() {
		component, ok := idx.byID[c.ProductID]
		if !ok {
			continue
		}

		demand := c.Quantity * quantity
		pc := needs.product(component.Product.Name, component.Product.ProductID)
		pc.Needed += demand

		// The bundle does not say which variant it consumes; show every
		// variant of the component with zero demand so the gap is visible.
		if !component.IsBundle() {
			for _, it := range component.Items {
				pc.variant(VariantKey(it.Size, it.Color, it.Variant), VariantDetails{
					Size:    it.Size,
					Color:   it.Color,
					Variant: it.Variant,
				})
			}
		}

		pc.variant(BundleVariantKey, VariantDetails{Variant: BundleVariantLabel}).Needed += demand
	}
}

func addDirectDemand(needs *Needs, line catalog.OrderItem) {
	pc := needs.product(line.Product, line.ProductID)
	pc.Needed += line.Quantity

	key := VariantKey(line.Size, line.Color, line.Variant)
	pc.variant(key, VariantDetails{
		Size:    line.Size,
		Color:   line.Color,
		Variant: line.Variant,
	}).Needed += line.Quantity
}

func applyAvailability(needs *Needs, entries []catalog.Entry) {
	for _, e := range entries {
		pc, ok := needs.Get(e.Product.Name)
		if !ok {
			continue
		}

		if !e.IsBundle() {
			pc.Available = e.TotalStock()
			for _, it := range e.Items {
				key := VariantKey(it.Size, it.Color, it.Variant)
				pc.variant(key, VariantDetails{
					Size:    it.Size,
					Color:   it.Color,
					Variant: it.Variant,
				}).Available += it.Quantity
			}
		}
		pc.ProductID = e.Product.ProductID
	}
}
