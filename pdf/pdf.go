// Package pdf renders a finalized invoice draft into a downloadable PDF.
// The caller must hand it an internally consistent snapshot: totals
// recomputed, every derived field populated.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"invoice-webapp/models"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "EUR ",
	"GBP": "GBP ",
	"INR": "Rs ",
}

func symbol(currency string) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	if currency == "" {
		return "$"
	}
	return currency + " "
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%s%.2f", symbol(currency), amount)
}

// Filename names the download artifact after the invoice number, falling
// back to "draft" for unnumbered invoices.
func Filename(inv *models.Invoice) string {
	number := inv.InvoiceDetails.Number
	if number == "" {
		number = "draft"
	}
	return fmt.Sprintf("invoice-%s.pdf", number)
}

// Render produces the A4 PDF rendition of the invoice.
func Render(inv *models.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	// Title row: INVOICE + number/status on the right
	doc.SetFont("Arial", "B", 22)
	doc.CellFormat(120, 10, "INVOICE", "", 0, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(70, 10, inv.InvoiceDetails.Number, "", 1, "R", false, 0, "")
	doc.SetFont("Arial", "I", 9)
	doc.CellFormat(120, 5, "", "", 0, "L", false, 0, "")
	doc.CellFormat(70, 5, inv.Status, "", 1, "R", false, 0, "")
	doc.Ln(4)

	// Sender block
	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(0, 6, inv.SenderDetails.Name, "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.MultiCell(90, 5, inv.SenderDetails.Address, "", "L", false)
	doc.Ln(3)

	// Bill to / Ship to / metadata columns
	top := doc.GetY()
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(63, 5, "Bill To", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.MultiCell(63, 5, inv.RecipientDetails.BillTo.Name+"\n"+inv.RecipientDetails.BillTo.Address, "", "L", false)
	billBottom := doc.GetY()

	if inv.RecipientDetails.ShipTo.Name != "" || inv.RecipientDetails.ShipTo.Address != "" {
		doc.SetXY(75, top)
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(63, 5, "Ship To", "", 2, "L", false, 0, "")
		doc.SetFont("Arial", "", 10)
		doc.MultiCell(63, 5, inv.RecipientDetails.ShipTo.Name+"\n"+inv.RecipientDetails.ShipTo.Address, "", "L", false)
		if doc.GetY() > billBottom {
			billBottom = doc.GetY()
		}
	}

	doc.SetXY(140, top)
	meta := [][2]string{
		{"Date", inv.InvoiceDetails.Date},
		{"Due Date", inv.InvoiceDetails.DueDate},
		{"Terms", inv.InvoiceDetails.PaymentTerms},
		{"PO Number", inv.InvoiceDetails.PONumber},
	}
	for _, row := range meta {
		if row[1] == "" {
			continue
		}
		doc.SetX(140)
		doc.SetFont("Arial", "B", 9)
		doc.CellFormat(25, 5, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "", 9)
		doc.CellFormat(35, 5, row[1], "", 1, "R", false, 0, "")
	}
	if doc.GetY() > billBottom {
		billBottom = doc.GetY()
	}
	doc.SetY(billBottom + 6)

	renderItemTable(doc, inv)
	renderTotals(doc, inv)

	if inv.Notes != "" {
		doc.Ln(6)
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(0, 5, "Notes", "", 1, "L", false, 0, "")
		doc.SetFont("Arial", "", 9)
		doc.MultiCell(0, 5, inv.Notes, "", "L", false)
	}
	if inv.Terms != "" {
		doc.Ln(3)
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(0, 5, "Terms", "", 1, "L", false, 0, "")
		doc.SetFont("Arial", "", 9)
		doc.MultiCell(0, 5, inv.Terms, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// renderItemTable lays out the dynamic-header grid: the freeform columns
// share the space left of the fixed quantity/rate/amount block.
func renderItemTable(doc *gofpdf.Fpdf, inv *models.Invoice) {
	const fixedWidth = 20.0 + 25.0 + 25.0
	pageWidth, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	usable := pageWidth - left - right
	headerWidth := (usable - fixedWidth) / float64(len(inv.ItemHeaders))

	doc.SetFont("Arial", "B", 9)
	doc.SetFillColor(235, 235, 235)
	for _, h := range inv.ItemHeaders {
		doc.CellFormat(headerWidth, 7, h, "1", 0, "L", true, 0, "")
	}
	doc.CellFormat(20, 7, "Quantity", "1", 0, "R", true, 0, "")
	doc.CellFormat(25, 7, "Rate", "1", 0, "R", true, 0, "")
	doc.CellFormat(25, 7, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Arial", "", 9)
	currency := inv.InvoiceDetails.Currency
	for _, item := range inv.Items {
		for _, h := range inv.ItemHeaders {
			doc.CellFormat(headerWidth, 7, item.Data[h], "1", 0, "L", false, 0, "")
		}
		doc.CellFormat(20, 7, fmt.Sprintf("%g", item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 7, money(item.Rate, currency), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 7, money(item.Amount, currency), "1", 1, "R", false, 0, "")
	}
}

func renderTotals(doc *gofpdf.Fpdf, inv *models.Invoice) {
	currency := inv.InvoiceDetails.Currency
	t := inv.Totals
	rows := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Subtotal", t.Subtotal, false},
		{fmt.Sprintf("Tax (%g%%)", t.TaxRate), t.Tax, false},
		{"Discount", t.Discount, false},
		{"Shipping", t.Shipping, false},
		{"Total", t.Total, true},
		{"Amount Paid", t.AmountPaid, false},
		{"Balance Due", t.BalanceDue, true},
	}
	doc.Ln(4)
	for _, row := range rows {
		if row.bold {
			doc.SetFont("Arial", "B", 10)
		} else {
			doc.SetFont("Arial", "", 10)
		}
		doc.CellFormat(130, 6, "", "", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, row.label, "", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, money(row.value, currency), "", 1, "R", false, 0, "")
	}
}
