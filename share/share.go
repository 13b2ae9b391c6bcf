// Package share builds the public share link for a saved invoice and the
// messaging intents that carry it. It touches no invoice state beyond the
// identifier.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

// URL returns the shareable link for an invoice on the given origin,
// e.g. https://app.example.com/share/6512f0a1.
func URL(origin, invoiceID string) string {
	return strings.TrimRight(origin, "/") + "/share/" + invoiceID
}

func message(shareURL string) string {
	return "Check out this invoice: " + shareURL
}

// WhatsAppLink is a prefilled wa.me message intent.
func WhatsAppLink(shareURL string) string {
	return "https://wa.me/?text=" + url.QueryEscape(message(shareURL))
}

// MailtoLink is a prefilled email intent.
func MailtoLink(shareURL string) string {
	return fmt.Sprintf("mailto:?subject=%s&body=%s",
		url.QueryEscape("Invoice Share"), url.QueryEscape(message(shareURL)))
}

// Links bundles everything the share sheet needs: the raw URL doubles as
// the clipboard payload.
type Links struct {
	URL      string `json:"url"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
}

// For builds the full link set for one invoice.
func For(origin, invoiceID string) Links {
	u := URL(origin, invoiceID)
	return Links{
		URL:      u,
		WhatsApp: WhatsAppLink(u),
		Email:    MailtoLink(u),
	}
}
