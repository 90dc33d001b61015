package orders

import (
	"bytes"
	"testing"
	"time"

	"merch-manager/core/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoice(t *testing.T) {
	o := catalog.Order{
		OrderID:     "o-1",
		Timestamp:   time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
		Name:        "Ana Cruz",
		Email:       "ana@school.edu",
		Status:      catalog.StatusPending,
		TotalAmount: decimal.NewFromInt(941),
		Notes:       "Pickup at the org room",
		Items: []catalog.OrderItem{
			{Product: "CCS T-Shirt", Size: "Large", Color: "Black", Quantity: 2},
			{Product: "Poster", Quantity: 1},
		},
	}

	pdf, err := RenderInvoice(o, newPriceList(sampleCatalog()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Greater(t, len(pdf), 1000)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Large / Black", describe(catalog.OrderItem{Size: "Large", Color: "Black"}))
	assert.Equal(t, "Holo", describe(catalog.OrderItem{Variant: "Holo"}))
	assert.Equal(t, "-", describe(catalog.OrderItem{}))
}

func TestPriceList_Lookup(t *testing.T) {
	entries := append(sampleCatalog(), catalog.Entry{
		Product: catalog.Product{ProductID: "p-shirt-2", Name: "CCS T-Shirt", Price: decimal.NewFromInt(999)},
	})
	pl := newPriceList(entries)

	p, ok := pl.lookup("CCS T-Shirt", "")
	require.True(t, ok)
	assert.Equal(t, "p-shirt", p.ProductID)

	p, ok = pl.lookup("CCS T-Shirt", "p-shirt-2")
	require.True(t, ok)
	assert.Equal(t, "999", p.Price.String())

	_, ok = pl.lookup("Mug", "")
	assert.False(t, ok)
}
