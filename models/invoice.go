package models

import "time"

// Invoice is the aggregate the editor works on. Field names and JSON tags
// follow the record shape the invoice API persists; ID is the server-side
// identifier and is empty while the draft is unsaved.
type Invoice struct {
	ID               string           `json:"_id,omitempty"`
	UserID           string           `json:"userId"`
	SenderDetails    SenderDetails    `json:"senderDetails"`
	RecipientDetails RecipientDetails `json:"recipientDetails"`
	InvoiceDetails   InvoiceDetails   `json:"invoiceDetails"`
	ItemHeaders      []string         `json:"itemHeaders" validate:"min=1,dive,required"`
	Items            []LineItem       `json:"items" validate:"dive"`
	Totals           Totals           `json:"totals"`
	Notes            string           `json:"notes"`
	Terms            string           `json:"terms"`
	Status           string           `json:"status"`
}

type SenderDetails struct {
	Logo    string `json:"logo"`
	Name    string `json:"name" validate:"required,max=50"`
	Address string `json:"address" validate:"required,max=60"`
}

type Party struct {
	Name    string `json:"name" validate:"max=50"`
	Address string `json:"address" validate:"max=60"`
}

type RecipientDetails struct {
	BillTo BillTo `json:"billTo"`
	ShipTo Party  `json:"shipTo"`
}

// BillTo is required; ShipTo may stay empty.
type BillTo struct {
	Name    string `json:"name" validate:"required,max=50"`
	Address string `json:"address" validate:"required,max=60"`
}

type InvoiceDetails struct {
	Number       string `json:"number" validate:"required"`
	Date         string `json:"date" validate:"required"`
	DueDate      string `json:"dueDate" validate:"required"`
	PaymentTerms string `json:"paymentTerms"`
	PONumber     string `json:"poNumber"`
	Currency     string `json:"currency"`
}

// LineItem is one row of the item grid. Data is keyed by the invoice's
// current ItemHeaders; display order follows ItemHeaders, not map order.
type LineItem struct {
	ID       string            `json:"id"`
	Data     map[string]string `json:"data"`
	Quantity float64           `json:"quantity" validate:"min=1"`
	Rate     float64           `json:"rate" validate:"min=0"`
	Amount   float64           `json:"amount"`
}

// Totals carries both the user-entered configuration (taxRate, discount,
// shipping, amountPaid and the two type selectors) and the derived fields
// rewritten on every recompute. DiscountType is persisted but inert: the
// discount always applies as a flat amount.
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	TaxRate      float64 `json:"taxRate" validate:"min=0"`
	Shipping     float64 `json:"shipping"`
	ShippingType string  `json:"shippingType"`
	Discount     float64 `json:"discount"`
	DiscountType string  `json:"discountType"`
	Total        float64 `json:"total"`
	AmountPaid   float64 `json:"amountPaid"`
	BalanceDue   float64 `json:"balanceDue"`
}

const (
	StatusPaid    = "Paid"
	StatusPending = "pending"

	ShippingPercentage = "percentage"
	ShippingFixed      = "fixed"

	// DiscountFixed is the only discount mode the computation honors;
	// the selector is persisted but inert.
	DiscountFixed = "fixed"
)

// NewDraft returns a fresh invoice with the editor defaults: one
// "description" column, no items, USD, dated today, pending.
func NewDraft(userID string) *Invoice {
	return &Invoice{
		UserID:      userID,
		ItemHeaders: []string{"description"},
		Items:       []LineItem{},
		InvoiceDetails: InvoiceDetails{
			Date:     time.Now().Format("2006-01-02"),
			Currency: "USD",
		},
		Totals: Totals{
			ShippingType: ShippingPercentage,
			DiscountType: DiscountFixed,
		},
		Status: StatusPending,
	}
}
