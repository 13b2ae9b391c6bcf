package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "https://app.example.com/share/abc123", URL("https://app.example.com", "abc123"))
	// trailing slash on the origin doesn't double up
	assert.Equal(t, "https://app.example.com/share/abc123", URL("https://app.example.com/", "abc123"))
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("https://app.example.com/share/abc123")
	assert.Equal(t, "https://wa.me/?text=Check+out+this+invoice%3A+https%3A%2F%2Fapp.example.com%2Fshare%2Fabc123", link)
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("https://app.example.com/share/abc123")
	assert.Contains(t, link, "mailto:?subject=Invoice+Share&body=")
	assert.Contains(t, link, "Check+out+this+invoice")
}

func TestFor(t *testing.T) {
	links := For("https://app.example.com", "abc123")
	assert.Equal(t, URL("https://app.example.com", "abc123"), links.URL)
	assert.Equal(t, WhatsAppLink(links.URL), links.WhatsApp)
	assert.Equal(t, MailtoLink(links.URL), links.Email)
}
