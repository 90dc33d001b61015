package reconcile

import (
	"testing"

	"merch-manager/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeeds_Summary(t *testing.T) {
	orders := []catalog.Order{
		order(catalog.OrderItem{Product: "CCS T-Shirt", Size: "Medium", Color: "Black", Quantity: 9}),
		order(catalog.OrderItem{Product: "CCS Lanyard", Quantity: 4}),
	}

	s := ComputeInventoryNeeds(orders, sampleCatalog()).Summary()

	assert.Equal(t, Summary{
		TotalProducts:        2,
		ProductsWithShortage: 1,
		TotalNeeded:          13,
		TotalAvailable:       17,
		TotalShortage:        2,
	}, s)
}

// TestShortageSurplus_Exclusive checks that at most one of shortage and
// surplus is positive for any pair of counts.
func TestShortageSurplus_Exclusive(t *testing.T) {
	for needed := 0; needed <= 5; needed++ {
		for available := 0; available <= 5; available++ {
			v := VariantCount{Needed: needed, Available: available}
			sh, su := v.Shortage(), v.Surplus()

			assert.GreaterOrEqual(t, sh, 0)
			assert.GreaterOrEqual(t, su, 0)
			assert.False(t, sh > 0 && su > 0)
			if needed == available {
				assert.Zero(t, sh)
				assert.Zero(t, su)
			}
			assert.Equal(t, needed-available, sh-su)
		}
	}
}

func TestNeeds_RestockPlan(t *testing.T) {
	orders := []catalog.Order{
		order(catalog.OrderItem{Product: "CCS T-Shirt", Size: "Large", Color: "Black", Quantity: 4}),
		order(catalog.OrderItem{Product: "CCS Lanyard", Quantity: 4}),
		order(catalog.OrderItem{Product: "Bundle A", Quantity: 2}),
	}

	plan := ComputeInventoryNeeds(orders, sampleCatalog()).RestockPlan()

	// Shirt: 6 needed, 7 available overall, but Large is short by 2 and the
	// bundle bucket by 2. Lanyard: 8 needed, 10 available, bundle bucket short by 4.
	require.Len(t, plan, 2)

	assert.Equal(t, "CCS T-Shirt", plan[0].Product)
	assert.Equal(t, "p-shirt", plan[0].ProductID)
	assert.Equal(t, 0, plan[0].Quantity)
	assert.Equal(t, []VariantShortage{
		{Key: "Large - Black", Label: "Size: Large, Color: Black", Quantity: 2},
		{Key: BundleVariantKey, Label: BundleVariantLabel, Quantity: 2},
	}, plan[0].Variants)

	assert.Equal(t, "CCS Lanyard", plan[1].Product)
	assert.Equal(t, []VariantShortage{
		{Key: BundleVariantKey, Label: BundleVariantLabel, Quantity: 4},
	}, plan[1].Variants)
}

func TestNewReport(t *testing.T) {
	orders := []catalog.Order{order(catalog.OrderItem{Product: "Poster", Quantity: 2})}

	report := NewReport(ComputeInventoryNeeds(orders, nil))

	assert.Equal(t, 1, report.Summary.TotalProducts)
	assert.Equal(t, 2, report.Summary.TotalShortage)
	require.Len(t, report.Restock, 1)
	assert.Equal(t, 2, report.Restock[0].Quantity)
}
