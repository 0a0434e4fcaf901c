package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"printcart/internal/cart"
)

// ExportQuoteToExcel writes a single quote, with its line items, to an
// .xlsx file under dir and returns the file path.
func (s *PostgresStorage) ExportQuoteToExcel(quote Quote, dir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Quote")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetCellValue("Quote", "A1", "Quote ID")
	f.SetCellValue("Quote", "B1", quote.ID)
	f.SetCellValue("Quote", "A2", "Session")
	f.SetCellValue("Quote", "B2", quote.SessionID)
	f.SetCellValue("Quote", "A3", "Created At")
	f.SetCellValue("Quote", "B3", quote.CreatedAt.Format("2006-01-02 15:04"))
	f.SetCellValue("Quote", "A4", "Status")
	f.SetCellValue("Quote", "B4", quote.Status)
	f.SetCellValue("Quote", "A5", "Contact")
	f.SetCellValue("Quote", "B5", quote.Contact)

	f.SetCellValue("Quote", "A7", "Totals")
	f.SetCellValue("Quote", "B7", quote.Currency)
	f.SetCellValue("Quote", "A8", "Printing (net)")
	f.SetCellValue("Quote", "B8", quote.PrintingNet)
	f.SetCellValue("Quote", "A9", "Delivery (net)")
	f.SetCellValue("Quote", "B9", quote.DeliveryNet)
	f.SetCellValue("Quote", "A10", "Total (net)")
	f.SetCellValue("Quote", "B10", quote.TotalNet)
	f.SetCellValue("Quote", "A11", "VAT")
	f.SetCellValue("Quote", "B11", quote.VATAmount)
	f.SetCellValue("Quote", "A12", "Total (gross)")
	f.SetCellValue("Quote", "B12", quote.TotalGross)
	f.SetCellValue("Quote", "A13", "Items")
	f.SetCellValue("Quote", "B13", quote.ItemCount)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle("Quote", "A1", "A13", style)

	// Line items get their own sheet when the stored JSON parses.
	var items []cart.LineItem
	if err := json.Unmarshal(quote.ItemsJSON, &items); err == nil && len(items) > 0 {
		if _, err := f.NewSheet("Items"); err == nil {
			writeItemsSheet(f, items)
		}
	}

	f.SetActiveSheet(index)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filename := fmt.Sprintf("quote_%d_%s.xlsx",
		quote.ID,
		quote.CreatedAt.Format("20060102_1504"))
	path := filepath.Join(dir, filename)

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return path, nil
}

func writeItemsSheet(f *excelize.File, items []cart.LineItem) {
	headers := []string{
		"Product", "Quantity", "Format", "Paper", "Colors", "Finishings",
		"Fingerprint", "Unit Price", "Printing", "Delivery", "Net", "Order Name",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("Items", cell, header)
	}

	for row, item := range items {
		data := []interface{}{
			item.ProductSlug,
			item.Quantity,
			item.Configuration.Format,
			item.Configuration.Paper,
			item.Configuration.Colors,
			fmt.Sprintf("%v", item.Configuration.Finishings),
			item.Fingerprint,
			item.Estimate.UnitPrice,
			item.Estimate.PrintingCost,
			item.Estimate.DeliveryCost,
			item.Estimate.NetPrice,
			item.OrderName,
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("Items", cell, value)
		}
	}
}
