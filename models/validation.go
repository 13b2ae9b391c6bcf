package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs pre-submission validation and returns the aggregated
// user-facing messages the UI surfaces as notifications. An empty slice
// means the draft may be submitted.
func (inv *Invoice) Validate() []string {
	var msgs []string

	if err := validate.Struct(inv); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				if m := messageFor(fe); m != "" {
					msgs = append(msgs, m)
				}
			}
		}
	}

	// Every column of every row must be filled in.
	for i, item := range inv.Items {
		for _, header := range inv.ItemHeaders {
			if strings.TrimSpace(item.Data[header]) == "" {
				msgs = append(msgs, fmt.Sprintf("Item %d: %s is required", i+1, header))
			}
		}
	}

	return msgs
}

func messageFor(fe validator.FieldError) string {
	switch ns := fe.StructNamespace(); ns {
	case "Invoice.SenderDetails.Name":
		if fe.Tag() == "max" {
			return "Sender Name must be at most 50 characters"
		}
		return "Business Name is required"
	case "Invoice.SenderDetails.Address":
		if fe.Tag() == "max" {
			return "Sender Address must be at most 60 characters"
		}
		return "Business Address is required"
	case "Invoice.RecipientDetails.BillTo.Name":
		if fe.Tag() == "max" {
			return "Billing Name must be at most 50 characters"
		}
		return "Bill To Name is required"
	case "Invoice.RecipientDetails.BillTo.Address":
		if fe.Tag() == "max" {
			return "Billing Address must be at most 60 characters"
		}
		return "Bill To Address is required"
	case "Invoice.RecipientDetails.ShipTo.Name":
		return "Shipping Name must be at most 50 characters"
	case "Invoice.RecipientDetails.ShipTo.Address":
		return "Shipping Address must be at most 60 characters"
	case "Invoice.InvoiceDetails.Number":
		return "Invoice Number is required"
	case "Invoice.InvoiceDetails.Date":
		return "Invoice Date is required"
	case "Invoice.InvoiceDetails.DueDate":
		return "Due Date is required"
	case "Invoice.ItemHeaders":
		return "At least one header is required"
	default:
		if _, ok := indexedField(ns, "Invoice.ItemHeaders["); ok {
			return "Header name is required"
		}
		if i, ok := indexedField(ns, "Invoice.Items["); ok {
			switch fe.StructField() {
			case "Quantity":
				return fmt.Sprintf("Item %d: Quantity is required", i+1)
			case "Rate":
				return fmt.Sprintf("Item %d: Rate is required", i+1)
			}
		}
	}
	return ""
}

// indexedField extracts the slice index from namespaces like
// "Invoice.Items[2].Quantity".
func indexedField(ns, prefix string) (int, bool) {
	if !strings.HasPrefix(ns, prefix) {
		return 0, false
	}
	rest := ns[len(prefix):]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return 0, false
	}
	i, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return i, true
}
