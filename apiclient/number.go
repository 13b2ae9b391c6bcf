package apiclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"invoice-webapp/models"
)

const firstInvoiceNumber = "INV-0001"

// NextNumber derives the next sequential invoice number from the user's
// invoice list: the numeric suffix of the most recent invoice plus one,
// zero-padded to four digits. With no prior invoices (or an unparsable
// suffix) it falls back to INV-0001.
func NextNumber(invoices []models.Invoice) string {
	if len(invoices) == 0 {
		return firstInvoiceNumber
	}
	latest := invoices[len(invoices)-1].InvoiceDetails.Number
	if latest == "" {
		return firstInvoiceNumber
	}
	last, err := strconv.Atoi(strings.Replace(latest, "INV-", "", 1))
	if err != nil {
		return firstInvoiceNumber
	}
	return fmt.Sprintf("INV-%04d", last+1)
}

// GenerateNumber fetches the user's invoices and derives the next number.
func (c *Client) GenerateNumber(ctx context.Context, userID string) (string, error) {
	invoices, err := c.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return NextNumber(invoices), nil
}
