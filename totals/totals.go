// Package totals is the pure derivation layer for an invoice's monetary
// fields. Nothing here mutates state except Recompute and ApplyStatus,
// which rewrite the derived fields of the invoice they are handed; all
// arithmetic is a function of current inputs only.
package totals

import (
	"invoice-webapp/models"
	"invoice-webapp/utils"
)

// Subtotal sums the derived amount of every row.
func Subtotal(items []models.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Amount
	}
	return sum
}

// Tax applies the percentage tax rate to the subtotal.
func Tax(subtotal, taxRate float64) float64 {
	return subtotal * taxRate / 100
}

// Discount applies as a flat subtractive amount. The discountType selector
// exists on the wire but does not change the computation.
func Discount(subtotal, amount float64) float64 {
	_ = subtotal
	return amount
}

// ShippingCost interprets the configured shipping amount: a percentage of
// the subtotal when shippingType is "percentage", otherwise a flat amount.
func ShippingCost(subtotal, amount float64, shippingType string) float64 {
	if shippingType == models.ShippingPercentage {
		return amount * subtotal / 100
	}
	return amount
}

// Total combines the intermediates and rounds to currency precision. This
// is the only rounding step; intermediates stay unrounded so errors don't
// compound.
func Total(subtotal, tax, discount, shipping float64) float64 {
	return utils.Round2(subtotal + tax + shipping - discount)
}

// BalanceDue is total minus amount paid. Not clamped: overpayment goes
// negative.
func BalanceDue(total, amountPaid float64) float64 {
	return total - amountPaid
}

// Recompute rewrites every derived field of the invoice's totals from the
// current items and configuration. Full recomputation, no deltas.
func Recompute(inv *models.Invoice) {
	t := &inv.Totals
	t.Subtotal = Subtotal(inv.Items)
	t.Tax = Tax(t.Subtotal, t.TaxRate)
	shipping := ShippingCost(t.Subtotal, t.Shipping, t.ShippingType)
	t.Total = Total(t.Subtotal, t.Tax, Discount(t.Subtotal, t.Discount), shipping)
	t.BalanceDue = BalanceDue(t.Total, t.AmountPaid)
}

// ApplyStatus switches the invoice between "Paid" and "pending" and forces
// the payment fields accordingly: marking paid settles the full total,
// marking pending resets any partial payment.
func ApplyStatus(inv *models.Invoice, status string) {
	inv.Status = status
	if status == models.StatusPaid {
		inv.Totals.AmountPaid = inv.Totals.Total
		inv.Totals.BalanceDue = 0
		return
	}
	inv.Totals.AmountPaid = 0
	inv.Totals.BalanceDue = inv.Totals.Total
}
