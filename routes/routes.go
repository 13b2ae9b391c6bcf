package routes

import (
	"github.com/gofiber/fiber/v2"

	"invoice-webapp/controllers"
	"invoice-webapp/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api/v1")

	// Everything requires a session bearer token
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Draft editing sessions
	protected.Post("/drafts", controllers.CreateDraft)
	protected.Get("/drafts/:id", controllers.GetDraft)
	protected.Delete("/drafts/:id", controllers.DiscardDraft)

	// Item grid
	protected.Post("/drafts/:id/items", controllers.AddItems) // batch via {"count": n}
	protected.Put("/drafts/:id/items/:itemId", controllers.UpdateItem)
	protected.Delete("/drafts/:id/items/:itemId", controllers.RemoveItem)
	protected.Post("/drafts/:id/headers", controllers.AddHeader)
	protected.Put("/drafts/:id/headers/:index", controllers.UpdateHeader)
	protected.Delete("/drafts/:id/headers/:index", controllers.RemoveHeader)
	protected.Post("/drafts/:id/paste", controllers.Paste)

	// Totals config, details, export, persistence
	protected.Put("/drafts/:id/totals", controllers.UpdateTotals)
	protected.Put("/drafts/:id/details", controllers.UpdateDetails)
	protected.Get("/drafts/:id/pdf", controllers.DownloadPDF)
	protected.Post("/drafts/:id/save", controllers.SaveDraft)

	// Stored invoices (remote API boundary)
	protected.Get("/invoices", controllers.ListInvoices)
	protected.Get("/invoices/:id", controllers.LoadInvoice)
	protected.Put("/invoices/:id/status", controllers.ToggleStatus)
	protected.Delete("/invoices/:id", controllers.DeleteInvoice)
	protected.Get("/invoices/:id/share", controllers.ShareInvoice)
}
