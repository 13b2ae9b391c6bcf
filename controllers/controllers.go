package controllers

import (
	"github.com/gofiber/fiber/v2"

	"invoice-webapp/apiclient"
	"invoice-webapp/models"
	"invoice-webapp/store"
)

var (
	drafts      *store.Drafts
	api         *apiclient.Client
	shareOrigin string
)

// Init wires the package's collaborators. Called once from main before
// routes are registered.
func Init(d *store.Drafts, client *apiclient.Client, origin string) {
	drafts = d
	api = client
	shareOrigin = origin
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}

func bearerToken(c *fiber.Ctx) string {
	token, _ := c.Locals("token").(string)
	return token
}

// ownedDraft resolves the draft for the request or replies 404.
func ownedDraft(c *fiber.Ctx) (*models.Invoice, bool) {
	inv := drafts.GetOwned(c.Params("id"), currentUser(c))
	if inv == nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "draft not found"})
		return nil, false
	}
	return inv, true
}

func respondDraft(c *fiber.Ctx, draftID string, inv *models.Invoice) error {
	return c.JSON(fiber.Map{
		"draftId": draftID,
		"invoice": inv,
	})
}
