// Package report renders downloadable PDF versions of the sales and repair
// reports. Layout is a plain header + table; the HTML pages stay the
// primary view.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"shoptrack/internal/services"
)

func newDoc(title, window string) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, title)
	doc.Ln(12)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Window: %s", window))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04 UTC")))
	doc.Ln(10)
	return doc
}

func tableHeader(doc *fpdf.Fpdf, widths []float64, labels []string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for i, label := range labels {
		doc.CellFormat(widths[i], 8, label, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)
	doc.SetFont("Helvetica", "", 10)
}

// SalesPDF renders one timeframe's sales report as PDF bytes.
func SalesPDF(rep services.SalesReport) ([]byte, error) {
	title := fmt.Sprintf("%s sales report", rep.Timeframe)
	doc := newDoc(title, rep.Window.String())

	widths := []float64{60, 20, 30, 30, 50}
	tableHeader(doc, widths, []string{"Item", "Qty", "Price", "Profit", "Sold at"})
	for _, s := range rep.Sales {
		doc.CellFormat(widths[0], 7, s.ItemName, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 7, fmt.Sprintf("%d", s.QuantitySold), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[2], 7, s.SellingPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 7, s.Profit().StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[4], 7, s.SoldAt, "1", 0, "L", false, 0, "")
		doc.Ln(-1)
	}
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 8, fmt.Sprintf("Total profit: %s", rep.TotalProfit.StringFixed(2)))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RepairsPDF renders one timeframe's repair revenue report as PDF bytes.
func RepairsPDF(rep services.RepairReport) ([]byte, error) {
	title := fmt.Sprintf("%s repair report", rep.Timeframe)
	doc := newDoc(title, rep.Window.String())

	widths := []float64{45, 45, 30, 30, 40}
	tableHeader(doc, widths, []string{"Owner", "Device", "Charges", "Status", "Collected at"})
	for _, r := range rep.Repairs {
		collected := ""
		if r.CollectedAt != nil {
			collected = *r.CollectedAt
		}
		doc.CellFormat(widths[0], 7, r.OwnerName, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 7, r.PhoneName+" "+r.PhoneModel, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[2], 7, r.Charges.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 7, r.Status, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[4], 7, collected, "1", 0, "L", false, 0, "")
		doc.Ln(-1)
	}
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 8, fmt.Sprintf("Total revenue: %s", rep.TotalCharges.StringFixed(2)))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
