package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"printcart/internal/cart"
)

func TestExportQuoteToExcel(t *testing.T) {
	items := []cart.LineItem{
		{
			ID:          "item-1",
			ProductSlug: "business-cards",
			Quantity:    1000,
			Configuration: cart.Configuration{
				Format:     "a4",
				Paper:      "coated-300",
				Colors:     "4/4",
				Finishings: []string{"matte-lamination"},
			},
			Fingerprint: "abc123",
			Estimate: cart.Estimate{
				UnitPrice:    0.22425,
				PrintingCost: 224.25,
				DeliveryCost: 15.90,
				NetPrice:     240.15,
			},
			OrderName: "spring campaign",
		},
	}
	itemsJSON, err := json.Marshal(items)
	require.NoError(t, err)

	quote := Quote{
		ID:          7,
		SessionID:   "sess-1",
		ItemCount:   1000,
		PrintingNet: 224.25,
		DeliveryNet: 15.90,
		TotalNet:    240.15,
		VATAmount:   55.23,
		TotalGross:  295.38,
		Currency:    "PLN",
		Contact:     "jan@example.com",
		Status:      "new",
		ItemsJSON:   itemsJSON,
		CreatedAt:   time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}

	dir := t.TempDir()
	s := &PostgresStorage{}

	path, err := s.ExportQuoteToExcel(quote, dir)
	require.NoError(t, err)
	require.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Quote ID", cell("Quote", "A1"))
	assert.Equal(t, "7", cell("Quote", "B1"))
	assert.Equal(t, "sess-1", cell("Quote", "B2"))
	assert.Equal(t, "jan@example.com", cell("Quote", "B5"))
	assert.Equal(t, "PLN", cell("Quote", "B7"))
	assert.Equal(t, "240.15", cell("Quote", "B10"))
	assert.Equal(t, "295.38", cell("Quote", "B12"))

	assert.Equal(t, "Product", cell("Items", "A1"))
	assert.Equal(t, "business-cards", cell("Items", "A2"))
	assert.Equal(t, "1000", cell("Items", "B2"))
	assert.Equal(t, "abc123", cell("Items", "G2"))
}

func TestExportQuoteToExcelWithoutItemsSheet(t *testing.T) {
	quote := Quote{
		ID:        8,
		SessionID: "sess-2",
		Currency:  "EUR",
		ItemsJSON: []byte(`[]`),
		CreatedAt: time.Now(),
	}

	s := &PostgresStorage{}
	path, err := s.ExportQuoteToExcel(quote, t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	idx, err := f.GetSheetIndex("Items")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}
