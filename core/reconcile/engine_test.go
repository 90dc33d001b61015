package reconcile

import (
	"encoding/json"
	"testing"

	"merch-manager/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemEntry(id, name string, items ...catalog.Item) catalog.Entry {
	for i := range items {
		items[i].ProductID = id
	}
	return catalog.Entry{
		Product: catalog.Product{ProductID: id, Name: name, Type: "shirt"},
		Items:   items,
	}
}

func bundleEntry(id, name string, components ...catalog.Component) catalog.Entry {
	return catalog.Entry{
		Product: catalog.Product{ProductID: id, Name: name, Type: catalog.TypeBundle},
		Bundle:  &catalog.Bundle{BundleID: "bd-" + id, ProductID: id, Items: components},
	}
}

func order(lines ...catalog.OrderItem) catalog.Order {
	return catalog.Order{OrderID: "o", Status: catalog.StatusPending, Items: lines}
}

// sampleCatalog mirrors the merch sold by the student council.
func sampleCatalog() []catalog.Entry {
	return []catalog.Entry{
		itemEntry("p-shirt", "CCS T-Shirt",
			catalog.Item{ItemID: "i-1", Size: "Medium", Color: "Black", Quantity: 5},
			catalog.Item{ItemID: "i-2", Size: "Large", Color: "Black", Quantity: 2},
		),
		itemEntry("p-lanyard", "CCS Lanyard",
			catalog.Item{ItemID: "i-3", Quantity: 10},
		),
		bundleEntry("p-bundle", "Bundle A",
			catalog.Component{ProductID: "p-shirt", Quantity: 1},
			catalog.Component{ProductID: "p-lanyard", Quantity: 2},
		),
	}
}

func TestVariantKey(t *testing.T) {
	tests := []struct {
		name                 string
		size, color, variant string
		want                 string
	}{
		{"AllEmpty", "", "", "", DefaultVariantKey},
		{"SizeOnly", "Medium", "", "", "Medium"},
		{"SizeColor", "Medium", "Black", "", "Medium - Black"},
		{"ColorVariant", "", "Black", "Holo", "Black - Holo"},
		{"All", "S", "Red", "V-Neck", "S - Red - V-Neck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VariantKey(tt.size, tt.color, tt.variant))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Size: M, Color: Black", Label("M - Black", VariantDetails{Size: "M", Color: "Black"}))
	assert.Equal(t, BundleVariantLabel, Label(BundleVariantKey, VariantDetails{Variant: BundleVariantLabel}))
	assert.Equal(t, DefaultVariantKey, Label(DefaultVariantKey, VariantDetails{}))
}

func TestComputeInventoryNeeds_Empty(t *testing.T) {
	t.Run("NoOrders", func(t *testing.T) {
		needs := ComputeInventoryNeeds(nil, sampleCatalog())
		assert.Equal(t, 0, needs.Len())
	})

	t.Run("OrdersWithoutItems", func(t *testing.T) {
		needs := ComputeInventoryNeeds([]catalog.Order{order(), order()}, sampleCatalog())
		assert.Equal(t, 0, needs.Len())
		assert.Empty(t, needs.RestockPlan())
	})
}

func TestComputeInventoryNeeds_SingleVariantlessItem(t *testing.T) {
	entries := []catalog.Entry{
		itemEntry("p-1", "Lanyard", catalog.Item{ItemID: "i-1", Quantity: 10}),
	}
	orders := []catalog.Order{order(catalog.OrderItem{Product: "Lanyard", Quantity: 4})}

	needs := ComputeInventoryNeeds(orders, entries)

	require.Equal(t, 1, needs.Len())
	pc, ok := needs.Get("Lanyard")
	require.True(t, ok)
	assert.Equal(t, 4, pc.Needed)
	assert.Equal(t, 10, pc.Available)
	assert.Equal(t, "p-1", pc.ProductID)
	assert.Equal(t, 0, pc.Shortage())
	assert.Equal(t, 6, pc.Surplus())

	assert.Equal(t, []string{DefaultVariantKey}, pc.VariantKeys())
	v, ok := pc.Variant(DefaultVariantKey)
	require.True(t, ok)
	assert.Equal(t, 4, v.Needed)
	assert.Equal(t, 10, v.Available)
}

func TestComputeInventoryNeeds_DirectVariantDemand(t *testing.T) {
	orders := []catalog.Order{
		order(catalog.OrderItem{Product: "CCS T-Shirt", Size: "Medium", Color: "Black", Quantity: 2}),
		order(catalog.OrderItem{Product: "CCS T-Shirt", Size: "Medium", Color: "Black", Quantity: 3}),
	}

	needs := ComputeInventoryNeeds(orders, sampleCatalog())

	pc, ok := needs.Get("CCS T-Shirt")
	require.True(t, ok)
	assert.Equal(t, 5, pc.Needed)
	assert.Equal(t, 7, pc.Available)

	medium, _ := pc.Variant("Medium - Black")
	assert.Equal(t, 5, medium.Needed)
	assert.Equal(t, 5, medium.Available)
	assert.Equal(t, VariantDetails{Size: "Medium", Color: "Black"}, medium.Details)

	// Stock-only variants are still listed for products with demand.
	large, ok := pc.Variant("Large - Black")
	require.True(t, ok)
	assert.Equal(t, 0, large.Needed)
	assert.Equal(t, 2, large.Available)

	_, ok = needs.Get("CCS Lanyard")
	assert.False(t, ok, "products without demand are omitted")
}

func TestComputeInventoryNeeds_SumsAcrossOrders(t *testing.T) {
	orders := []catalog.Order{
		order(catalog.OrderItem{Product: "Sticker", Quantity: 3}),
		order(catalog.OrderItem{Product: "Sticker", Quantity: 9}),
	}

	needs := ComputeInventoryNeeds(orders, nil)

	pc, ok := needs.Get("Sticker")
	require.True(t, ok)
	assert.Equal(t, 12, pc.Needed)
	assert.Equal(t, 0, pc.Available)
	assert.Equal(t, 12, pc.Shortage())
	assert.Equal(t, 0, pc.Surplus())
}

func TestComputeInventoryNeeds_BundleDecomposition(t *testing.T) {
	entries := []catalog.Entry{
		itemEntry("p-a", "A",
			catalog.Item{ItemID: "i-1", Size: "S", Quantity: 1},
			catalog.Item{ItemID: "i-2", Size: "M", Quantity: 1},
		),
		itemEntry("p-b", "B", catalog.Item{ItemID: "i-3", Quantity: 20}),
		bundleEntry("p-x", "Bundle X",
			catalog.Component{ProductID: "p-a", Quantity: 2},
			catalog.Component{ProductID: "p-b", Quantity: 3},
		),
	}
	orders := []catalog.Order{order(catalog.OrderItem{Product: "Bundle X", Quantity: 4, Variant: "A (2x) + B (3x)"})}

	needs := ComputeInventoryNeeds(orders, entries)

	_, ok := needs.Get("Bundle X")
	assert.False(t, ok, "the bundle itself is never counted")

	a, ok := needs.Get("A")
	require.True(t, ok)
	assert.Equal(t, 8, a.Needed)
	assert.Equal(t, 2, a.Available)
	assert.Equal(t, []string{"S", "M", BundleVariantKey}, a.VariantKeys())

	for _, key := range []string{"S", "M"} {
		v, _ := a.Variant(key)
		assert.Equal(t, 0, v.Needed, "bundle demand must not be attributed to %s", key)
		assert.Equal(t, 1, v.Available)
	}

	sentinel, _ := a.Variant(BundleVariantKey)
	assert.Equal(t, 8, sentinel.Needed)
	assert.Equal(t, 0, sentinel.Available)
	assert.Equal(t, BundleVariantLabel, sentinel.Details.Variant)

	b, ok := needs.Get("B")
	require.True(t, ok)
	assert.Equal(t, 12, b.Needed)
	assert.Equal(t, 20, b.Available)
	assert.Equal(t, []string{DefaultVariantKey, BundleVariantKey}, b.VariantKeys())

	def, _ := b.Variant(DefaultVariantKey)
	assert.Equal(t, 0, def.Needed)
	assert.Equal(t, 20, def.Available)
}

func TestComputeInventoryNeeds_UnresolvableComponent(t *testing.T) {
	entries := []catalog.Entry{
		itemEntry("p-a", "A", catalog.Item{ItemID: "i-1", Quantity: 5}),
		bundleEntry("p-x", "Bundle X",
			catalog.Component{ProductID: "p-missing", Quantity: 7},
			catalog.Component{ProductID: "p-a", Quantity: 1},
		),
	}
	orders := []catalog.Order{order(catalog.OrderItem{Product: "Bundle X", Quantity: 2})}

	needs := ComputeInventoryNeeds(orders, entries)

	assert.Equal(t, []string{"A"}, needs.Names())
	a, _ := needs.Get("A")
	assert.Equal(t, 2, a.Needed)
}

func TestComputeInventoryNeeds_UnknownProduct(t *testing.T) {
	orders := []catalog.Order{
		order(catalog.OrderItem{Product: "Mystery Pin", ProductID: "p-pin", Color: "Gold", Quantity: 1}),
	}

	needs := ComputeInventoryNeeds(orders, sampleCatalog())

	pc, ok := needs.Get("Mystery Pin")
	require.True(t, ok)
	assert.Equal(t, "p-pin", pc.ProductID)
	assert.Equal(t, 1, pc.Needed)
	assert.Equal(t, 0, pc.Available)

	v, ok := pc.Variant("Gold")
	require.True(t, ok)
	assert.Equal(t, 1, v.Needed)
}

func TestComputeInventoryNeeds_NestedBundleComponent(t *testing.T) {
	entries := []catalog.Entry{
		itemEntry("p-a", "A", catalog.Item{ItemID: "i-1", Quantity: 3}),
		bundleEntry("p-inner", "Inner", catalog.Component{ProductID: "p-a", Quantity: 1}),
		bundleEntry("p-outer", "Outer", catalog.Component{ProductID: "p-inner", Quantity: 2}),
	}
	orders := []catalog.Order{order(catalog.OrderItem{Product: "Outer", Quantity: 1})}

	needs := ComputeInventoryNeeds(orders, entries)

	inner, ok := needs.Get("Inner")
	require.True(t, ok)
	assert.Equal(t, 2, inner.Needed)
	assert.Equal(t, 0, inner.Available)
	assert.Equal(t, []string{BundleVariantKey}, inner.VariantKeys())

	_, ok = needs.Get("A")
	assert.False(t, ok, "components are decomposed one level only")
}

func TestComputeInventoryNeeds_MixedOrders(t *testing.T) {
	orders := []catalog.Order{
		order(catalog.OrderItem{Product: "CCS T-Shirt", Color: "Black", Size: "Medium", Quantity: 2}),
		order(catalog.OrderItem{Product: "CCS Lanyard", Quantity: 3}),
		order(catalog.OrderItem{Product: "Bundle A", Quantity: 1}),
		order(catalog.OrderItem{Product: "CCS Lanyard", Quantity: 5}),
		order(catalog.OrderItem{Product: "Bundle A", Quantity: 2}),
		order(
			catalog.OrderItem{Product: "Bundle A", Quantity: 1},
			catalog.OrderItem{Product: "CCS Lanyard", Quantity: 1},
		),
	}

	needs := ComputeInventoryNeeds(orders, sampleCatalog())

	assert.Equal(t, []string{"CCS T-Shirt", "CCS Lanyard"}, needs.Names())

	shirt, _ := needs.Get("CCS T-Shirt")
	assert.Equal(t, 6, shirt.Needed) // 2 direct + 4 from bundles
	assert.Equal(t, 7, shirt.Available)
	assert.Equal(t, []string{"Medium - Black", "Large - Black", BundleVariantKey}, shirt.VariantKeys())

	lanyard, _ := needs.Get("CCS Lanyard")
	assert.Equal(t, 17, lanyard.Needed) // 9 direct + 8 from bundles
	assert.Equal(t, 10, lanyard.Available)
	assert.Equal(t, 7, lanyard.Shortage())

	def, _ := lanyard.Variant(DefaultVariantKey)
	assert.Equal(t, 9, def.Needed)
	sentinel, _ := lanyard.Variant(BundleVariantKey)
	assert.Equal(t, 8, sentinel.Needed)
}

func TestComputeInventoryNeeds_Idempotent(t *testing.T) {
	orders := []catalog.Order{order(catalog.OrderItem{Product: "Bundle A", Quantity: 3})}
	entries := sampleCatalog()

	first, err := json.Marshal(ComputeInventoryNeeds(orders, entries))
	require.NoError(t, err)
	second, err := json.Marshal(ComputeInventoryNeeds(orders, entries))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, 10, entries[1].Items[0].Quantity, "inputs are not mutated")
}

func TestNeeds_MarshalJSON(t *testing.T) {
	entries := []catalog.Entry{
		itemEntry("p-1", "Lanyard", catalog.Item{ItemID: "i-1", Quantity: 10}),
	}
	orders := []catalog.Order{order(catalog.OrderItem{Product: "Lanyard", Quantity: 4})}

	data, err := json.Marshal(ComputeInventoryNeeds(orders, entries))
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"name": "Lanyard",
		"product_id": "p-1",
		"needed": 4,
		"available": 10,
		"shortage": 0,
		"surplus": 6,
		"variants": [{"key": "default", "label": "default", "needed": 4, "available": 10, "shortage": 0, "details": {}}]
	}]`, string(data))
}
