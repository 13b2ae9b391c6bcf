// Package store holds the in-flight invoice drafts of editing sessions.
// Drafts are working copies only; the invoice API remains the source of
// truth once a draft is saved.
package store

import (
	"sync"

	"github.com/google/uuid"

	"invoice-webapp/models"
)

// Drafts is a session-scoped draft registry. All methods are safe for
// concurrent use by request handlers.
type Drafts struct {
	mu     sync.RWMutex
	drafts map[string]*models.Invoice
}

func New() *Drafts {
	return &Drafts{drafts: make(map[string]*models.Invoice)}
}

// Create registers the invoice as a new draft and returns its draft id.
func (d *Drafts) Create(inv *models.Invoice) string {
	id := uuid.NewString()
	d.mu.Lock()
	d.drafts[id] = inv
	d.mu.Unlock()
	return id
}

// Get returns the draft for id, or nil when it does not exist.
func (d *Drafts) Get(id string) *models.Invoice {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.drafts[id]
}

// GetOwned returns the draft only when it belongs to userID.
func (d *Drafts) GetOwned(id, userID string) *models.Invoice {
	inv := d.Get(id)
	if inv == nil || inv.UserID != userID {
		return nil
	}
	return inv
}

// Delete discards the draft; absent ids are a no-op.
func (d *Drafts) Delete(id string) {
	d.mu.Lock()
	delete(d.drafts, id)
	d.mu.Unlock()
}

// Len reports how many drafts are live.
func (d *Drafts) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.drafts)
}
