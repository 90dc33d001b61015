package orders

import (
	"bytes"
	"fmt"
	"strings"

	"merch-manager/core/catalog"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

// RenderInvoice lays out an A4 invoice with one row per order line and a QR
// code of the order id for lookup at pickup.
func RenderInvoice(o catalog.Order, prices priceList) ([]byte, error) {
	qrPNG, err := qrcode.Encode(o.OrderID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+o.OrderID, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	for _, line := range []string{
		"Order: " + o.OrderID,
		"Date: " + o.Timestamp.Format("2006-01-02 15:04"),
		"Customer: " + o.Name,
		"Email: " + o.Email,
		"Contact: " + o.ContactNumber,
		"Status: " + string(o.Status),
		"Payment: " + o.PaymentSchedule,
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 155, 15, 40, 40, false, imageOpts, 0, "")

	pdf.Ln(6)
	widths := []float64{60, 60, 20, 25, 25}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range []string{"Product", "Variant", "Qty", "Unit", "Amount"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, it := range o.Items {
		unit := decimal.Zero
		if p, ok := prices.lookup(it.Product, it.ProductID); ok {
			unit = p.Price
		}
		amount := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))

		pdf.CellFormat(widths[0], 7, it.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, describe(it), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, unit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, o.TotalAmount.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	if o.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+o.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func describe(it catalog.OrderItem) string {
	var parts []string
	for _, p := range []string{it.Size, it.Color, it.Variant} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " / ")
}
