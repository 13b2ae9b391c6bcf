package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"invoice-webapp/pdf"
	"invoice-webapp/totals"
)

// DownloadPDF renders the draft as an attachment. Totals are recomputed
// first so the export always carries a consistent snapshot.
func DownloadPDF(c *fiber.Ctx) error {
	inv, ok := ownedDraft(c)
	if !ok {
		return nil
	}

	totals.Recompute(inv)
	out, err := pdf.Render(inv)
	if err != nil {
		log.Printf("pdf render failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not generate PDF"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+pdf.Filename(inv)+`"`)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(out)))
	return c.Send(out)
}
