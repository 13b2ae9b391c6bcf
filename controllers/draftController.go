package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"invoice-webapp/grid"
	"invoice-webapp/middlewares"
	"invoice-webapp/models"
	"invoice-webapp/totals"
	"invoice-webapp/utils"
)

// CreateDraft opens a fresh editing session. The invoice number is
// prefilled from the user's invoice list; if the number service is down
// the draft is still created and the UI gets a notice instead.
func CreateDraft(c *fiber.Ctx) error {
	userID := currentUser(c)
	inv := models.NewDraft(userID)

	var notice string
	number, err := api.GenerateNumber(c.Context(), userID)
	if err != nil {
		log.Printf("invoice number generation failed: %v", err)
		notice = "Could not generate an invoice number; fill it in manually"
	} else {
		inv.InvoiceDetails.Number = number
	}

	id := drafts.Create(inv)
	resp := fiber.Map{"draftId": id, "invoice": inv}
	if notice != "" {
		resp["message"] = notice
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func GetDraft(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}
	return respondDraft(c, c.Params("id"), inv)
}

// DiscardDraft abandons the editing session. Nothing remote is touched.
func DiscardDraft(c *fiber.Ctx) error {
	if _, ok := ownedDraft(c); !ok {
		return nil
	}
	drafts.Delete(c.Params("id"))
	return c.JSON(fiber.Map{"message": "draft discarded"})
}

// maxItemBatch caps one AddItems call. The UI batches at most 10 rows;
// anything past the cap is a malformed or hostile request.
const maxItemBatch = 100

// AddItems appends blank rows; {"count": 10} backs the "Add 10 Rows"
// button, the default is a single row.
func AddItems(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	var body struct {
		Count int `json:"count"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
		}
	}
	if body.Count <= 0 {
		body.Count = 1
	}
	if body.Count > maxItemBatch {
		body.Count = maxItemBatch
	}

	grid.AddItems(inv, body.Count)
	totals.Recompute(inv)
	return respondDraft(c, c.Params("id"), inv)
}

type itemUpdate struct {
	Field string            `json:"field"`
	Data  map[string]string `json:"data"`
	Value float64           `json:"value"`
}

// UpdateItem edits one row. A "data" update replaces the whole merged
// record; "quantity"/"rate" updates rederive the row amount.
func UpdateItem(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	var body itemUpdate
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	field, err := grid.ParseField(body.Field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	itemID := c.Params("itemId")
	switch field {
	case grid.FieldData:
		grid.UpdateItemData(inv, itemID, body.Data)
	case grid.FieldQuantity:
		grid.UpdateItemQuantity(inv, itemID, body.Value)
	case grid.FieldRate:
		grid.UpdateItemRate(inv, itemID, body.Value)
	}
	totals.Recompute(inv)
	return respondDraft(c, c.Params("id"), inv)
}

func RemoveItem(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}
	grid.RemoveItem(inv, c.Params("itemId"))
	totals.Recompute(inv)
	return respondDraft(c, c.Params("id"), inv)
}

func AddHeader(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}
	grid.AddHeader(inv)
	return respondDraft(c, c.Params("id"), inv)
}

func UpdateHeader(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid header index"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	grid.UpdateHeader(inv, index, body.Name)
	return respondDraft(c, c.Params("id"), inv)
}

// RemoveHeader deletes a column. Removing the last one is rejected with a
// single user-visible notice.
func RemoveHeader(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid header index"})
	}
	if err := grid.RemoveHeader(inv, index); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	}
	return respondDraft(c, c.Params("id"), inv)
}

// Paste ingests a clipboard block pasted into a cell: one bulk transition,
// appending rows as needed.
func Paste(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	var body struct {
		ItemID string `json:"itemId"`
		Field  string `json:"field"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	field, err := grid.ParseField(body.Field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	grid.Paste(inv, body.ItemID, field, body.Text)
	totals.Recompute(inv)
	return respondDraft(c, c.Params("id"), inv)
}

type totalsConfig struct {
	TaxRate      float64 `json:"taxRate" validate:"min=0"`
	Discount     float64 `json:"discount" validate:"min=0"`
	DiscountType string  `json:"discountType"`
	Shipping     float64 `json:"shipping" validate:"min=0"`
	ShippingType string  `json:"shippingType"`
	AmountPaid   float64 `json:"amountPaid" validate:"min=0"`
}

// UpdateTotals replaces the totals configuration and rederives everything.
func UpdateTotals(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	var cfg totalsConfig
	if err := middlewares.BindAndValidate(c, &cfg); err != nil {
		return err
	}

	inv.Totals.TaxRate = cfg.TaxRate
	inv.Totals.Discount = cfg.Discount
	inv.Totals.DiscountType = cfg.DiscountType
	inv.Totals.Shipping = cfg.Shipping
	inv.Totals.ShippingType = cfg.ShippingType
	inv.Totals.AmountPaid = cfg.AmountPaid
	totals.Recompute(inv)
	return respondDraft(c, c.Params("id"), inv)
}

type detailsUpdate struct {
	SenderDetails    *models.SenderDetails    `json:"senderDetails"`
	RecipientDetails *models.RecipientDetails `json:"recipientDetails"`
	InvoiceDetails   *models.InvoiceDetails   `json:"invoiceDetails"`
	Notes            *string                  `json:"notes"`
	Terms            *string                  `json:"terms"`
}

// UpdateDetails replaces whole detail sub-records; omitted sections stay
// untouched, matching how the editor submits them.
func UpdateDetails(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	var body detailsUpdate
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	utils.NormalizeDTO(&body)

	if body.SenderDetails != nil {
		inv.SenderDetails = *body.SenderDetails
	}
	if body.RecipientDetails != nil {
		inv.RecipientDetails = *body.RecipientDetails
	}
	if body.InvoiceDetails != nil {
		inv.InvoiceDetails = *body.InvoiceDetails
	}
	if body.Notes != nil {
		inv.Notes = *body.Notes
	}
	if body.Terms != nil {
		inv.Terms = *body.Terms
	}
	return respondDraft(c, c.Params("id"), inv)
}
