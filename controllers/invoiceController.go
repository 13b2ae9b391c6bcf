package controllers

import (
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"invoice-webapp/apiclient"
	"invoice-webapp/grid"
	"invoice-webapp/models"
	"invoice-webapp/share"
	"invoice-webapp/totals"
)

// SaveDraft validates the draft, recomputes its totals and persists it
// through the invoice API: POST for new invoices, PUT for loaded ones.
// The local draft is never rolled back on a failed save.
func SaveDraft(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	if msgs := inv.Validate(); len(msgs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message":  "validation failed",
			"messages": msgs,
		})
	}

	totals.Recompute(inv)

	if inv.ID == "" {
		created, err := api.Create(c.Context(), inv)
		if err != nil {
			log.Printf("invoice create failed: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		}
		drafts.Delete(c.Params("id"))
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Invoice saved successfully",
			"invoice": created,
		})
	}

	updated, err := api.Update(c.Context(), inv.ID, inv)
	if err != nil {
		log.Printf("invoice update failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": "Invoice updated successfully",
		"invoice": updated,
	})
}

// ListInvoices returns the caller's invoices as the API orders them.
func ListInvoices(c *fiber.Ctx) error {
	invoices, err := api.ListByUser(c.Context(), currentUser(c))
	if err != nil {
		log.Printf("invoice list failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(invoices)
}

// LoadInvoice fetches a stored invoice and opens it as a new draft,
// repairing the header/data shape of older records on the way in.
func LoadInvoice(c *fiber.Ctx) error {
	inv, err := api.Get(c.Context(), c.Params("id"))
	if err != nil {
		log.Printf("invoice fetch failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}

	prepareLoaded(inv)
	inv.UserID = currentUser(c)
	draftID := drafts.Create(inv)
	return respondDraft(c, draftID, inv)
}

// prepareLoaded normalizes a stored record into grid shape: headers fall
// back to the first item's data keys (minus record-internal markers) or
// to the default column, rows get ids if missing, and every row's keys
// are synced to the headers.
func prepareLoaded(inv *models.Invoice) {
	if len(inv.ItemHeaders) == 0 {
		if len(inv.Items) > 0 {
			keys := make([]string, 0, len(inv.Items[0].Data))
			for key := range inv.Items[0].Data {
				if key != "_id" && key != "__v" {
					keys = append(keys, key)
				}
			}
			// the stored record kept no column order, so impose one
			sort.Strings(keys)
			inv.ItemHeaders = keys
		}
		if len(inv.ItemHeaders) == 0 {
			inv.ItemHeaders = []string{"description"}
		}
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.NewString()
		}
	}
	grid.SyncData(inv)
	if inv.Status == "" {
		inv.Status = models.StatusPending
	}
}

// ToggleStatus flips the stored invoice between Paid and pending. Marking
// paid settles the full total; marking pending resets the payment,
// whatever partial amount was there before.
func ToggleStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	if body.Status != models.StatusPaid && body.Status != models.StatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid status"})
	}

	id := c.Params("id")
	inv, err := api.Get(c.Context(), id)
	if err != nil {
		log.Printf("invoice fetch failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}

	totals.ApplyStatus(inv, body.Status)
	upd := apiclient.StatusUpdate{
		Status:     inv.Status,
		Total:      inv.Totals.Total,
		AmountPaid: inv.Totals.AmountPaid,
		BalanceDue: inv.Totals.BalanceDue,
	}
	if err := api.UpdateStatus(c.Context(), id, upd); err != nil {
		log.Printf("status update failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status": inv.Status,
		"totals": inv.Totals,
	})
}

// DeleteInvoice removes the stored invoice, forwarding the caller's
// bearer token for authorization.
func DeleteInvoice(c *fiber.Ctx) error {
	if err := api.Delete(c.Context(), c.Params("id"), bearerToken(c)); err != nil {
		log.Printf("invoice delete failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Invoice deleted"})
}

// ShareInvoice returns the share URL and messaging intents for a saved
// invoice. The URL doubles as the clipboard payload.
func ShareInvoice(c *fiber.Ctx) error {
	return c.JSON(share.For(shareOrigin, c.Params("id")))
}
