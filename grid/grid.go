// Package grid owns the invoice item table: an ordered list of line items
// whose freeform columns are governed by a shared, mutable header list.
// Every operation is a synchronous state transition on the invoice; callers
// recompute totals afterwards.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"invoice-webapp/models"
)

// ErrLastHeader rejects removing the only remaining column.
var ErrLastHeader = errors.New("At least one header is required.")

// Field names an editable line-item field for cell edits and paste targets.
type Field string

const (
	FieldData     Field = "data"
	FieldQuantity Field = "quantity"
	FieldRate     Field = "rate"
)

// ParseField validates a wire-level field name.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldData, FieldQuantity, FieldRate:
		return Field(s), nil
	}
	return "", fmt.Errorf("unknown item field %q", s)
}

// newItem builds a blank row shaped by the current headers:
// every column empty, quantity 1, rate 0, amount 0.
func newItem(headers []string) models.LineItem {
	data := make(map[string]string, len(headers))
	for _, h := range headers {
		data[h] = ""
	}
	return models.LineItem{
		ID:       uuid.NewString(),
		Data:     data,
		Quantity: 1,
		Rate:     0,
		Amount:   0,
	}
}

// AddItem appends one blank row.
func AddItem(inv *models.Invoice) {
	inv.Items = append(inv.Items, newItem(inv.ItemHeaders))
}

// AddItems appends n blank rows in a single transition. The editor's
// "Add 10 Rows" button calls this with n=10.
func AddItems(inv *models.Invoice, n int) {
	for i := 0; i < n; i++ {
		inv.Items = append(inv.Items, newItem(inv.ItemHeaders))
	}
}

// RemoveItem drops the row with the given id; unknown ids are a no-op.
func RemoveItem(inv *models.Invoice, id string) {
	kept := inv.Items[:0]
	for _, item := range inv.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	inv.Items = kept
}

// UpdateItemData replaces the row's whole data record. The caller supplies
// the fully-merged record; partial cell edits are merged before calling.
// Unknown ids are a no-op.
func UpdateItemData(inv *models.Invoice, id string, data map[string]string) {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			inv.Items[i].Data = data
			return
		}
	}
}

// UpdateItemQuantity sets the quantity and rederives amount from the
// row's current rate.
func UpdateItemQuantity(inv *models.Invoice, id string, quantity float64) {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			inv.Items[i].Quantity = quantity
			inv.Items[i].Amount = quantity * inv.Items[i].Rate
			return
		}
	}
}

// UpdateItemRate sets the rate and rederives amount from the row's
// current quantity.
func UpdateItemRate(inv *models.Invoice, id string, rate float64) {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			inv.Items[i].Rate = rate
			inv.Items[i].Amount = inv.Items[i].Quantity * rate
			return
		}
	}
}

// AddHeader appends a deterministically named column ("Header N") and gives
// every row an empty cell for it.
func AddHeader(inv *models.Invoice) {
	name := fmt.Sprintf("Header %d", len(inv.ItemHeaders)+1)
	inv.ItemHeaders = append(inv.ItemHeaders, name)
	for i := range inv.Items {
		if inv.Items[i].Data == nil {
			inv.Items[i].Data = map[string]string{}
		}
		inv.Items[i].Data[name] = ""
	}
}

// UpdateHeader renames the column at index, moving each row's cell value
// from the old key to the new one. Out-of-range indexes are a no-op.
func UpdateHeader(inv *models.Invoice, index int, name string) {
	if index < 0 || index >= len(inv.ItemHeaders) {
		return
	}
	old := inv.ItemHeaders[index]
	inv.ItemHeaders[index] = name
	if old == name {
		return
	}
	for i := range inv.Items {
		data := inv.Items[i].Data
		if v, ok := data[old]; ok {
			data[name] = v
			delete(data, old)
		}
	}
}

// RemoveHeader drops the column at index and its cell from every row.
// Removing the last remaining header is rejected with ErrLastHeader;
// out-of-range indexes are a silent no-op.
func RemoveHeader(inv *models.Invoice, index int) error {
	if index < 0 || index >= len(inv.ItemHeaders) {
		return nil
	}
	if len(inv.ItemHeaders) == 1 {
		return ErrLastHeader
	}
	name := inv.ItemHeaders[index]
	inv.ItemHeaders = append(inv.ItemHeaders[:index], inv.ItemHeaders[index+1:]...)
	for i := range inv.Items {
		delete(inv.Items[i].Data, name)
	}
	return nil
}

// SyncData rewrites every row's data record to match the current headers:
// missing columns gain an empty cell, stale keys are dropped. Used when a
// whole header list or an externally loaded invoice is applied at once.
func SyncData(inv *models.Invoice) {
	for i := range inv.Items {
		data := make(map[string]string, len(inv.ItemHeaders))
		for _, h := range inv.ItemHeaders {
			data[h] = inv.Items[i].Data[h]
		}
		inv.Items[i].Data = data
	}
}

// Paste ingests a spreadsheet clipboard block starting at the row with
// originID. Values are split on newlines and tabs, trimmed, empties
// dropped, then written downwards from the origin row; rows are appended
// as needed. A data paste targets the first header's column only;
// quantity/rate pastes parse each value as a number (invalid -> 0) and
// rederive amount. The whole block applies as one transition. Unknown
// origin ids are a no-op.
func Paste(inv *models.Invoice, originID string, field Field, raw string) {
	values := splitClipboard(raw)
	if len(values) == 0 {
		return
	}
	origin := -1
	for i := range inv.Items {
		if inv.Items[i].ID == originID {
			origin = i
			break
		}
	}
	if origin < 0 {
		return
	}
	for offset, value := range values {
		target := origin + offset
		if target >= len(inv.Items) {
			inv.Items = append(inv.Items, newItem(inv.ItemHeaders))
		}
		switch field {
		case FieldData:
			if len(inv.ItemHeaders) > 0 {
				if inv.Items[target].Data == nil {
					inv.Items[target].Data = map[string]string{}
				}
				inv.Items[target].Data[inv.ItemHeaders[0]] = value
			}
		case FieldQuantity:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				n = 0
			}
			inv.Items[target].Quantity = n
			inv.Items[target].Amount = n * inv.Items[target].Rate
		case FieldRate:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				n = 0
			}
			inv.Items[target].Rate = n
			inv.Items[target].Amount = inv.Items[target].Quantity * n
		}
	}
}

func splitClipboard(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\t'
	})
	values := parts[:0]
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}
