// Package apiclient talks to the remote invoice REST API. It is the only
// place network I/O happens; callers finish all local mutation before
// invoking it, so a failed call never leaves a draft half-updated.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"invoice-webapp/models"
)

// Client is a thin wrapper over the invoice service endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// StatusUpdate is the payload of the status toggle endpoint.
type StatusUpdate struct {
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
	AmountPaid float64 `json:"amountPaid"`
	BalanceDue float64 `json:"balanceDue"`
}

// CreateResponse wraps the created record the API returns.
type CreateResponse struct {
	Invoice models.Invoice `json:"invoice"`
}

// Get fetches a single invoice by its server id.
func (c *Client) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+id, nil, "", &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListByUser fetches the user's invoices, oldest first, as the API orders
// them. The last entry drives sequential numbering.
func (c *Client) ListByUser(ctx context.Context, userID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/userId/"+userID, nil, "", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Create persists a new invoice and returns the stored record.
func (c *Client) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	payload, err := Sanitize(inv)
	if err != nil {
		return nil, err
	}
	var resp CreateResponse
	if err := c.do(ctx, http.MethodPost, "/invoices", payload, "", &resp); err != nil {
		return nil, err
	}
	return &resp.Invoice, nil
}

// Update overwrites the stored invoice with the full draft payload.
func (c *Client) Update(ctx context.Context, id string, inv *models.Invoice) (*models.Invoice, error) {
	payload, err := Sanitize(inv)
	if err != nil {
		return nil, err
	}
	var updated models.Invoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+id, payload, "", &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus toggles the paid/pending state server-side.
func (c *Client) UpdateStatus(ctx context.Context, id string, upd StatusUpdate) error {
	return c.do(ctx, http.MethodPut, "/invoices/"+id+"/status", upd, "", nil)
}

// Delete removes the invoice. The caller's bearer token authorizes the
// call; the client never inspects it.
func (c *Client) Delete(ctx context.Context, id, bearerToken string) error {
	return c.do(ctx, http.MethodDelete, "/invoices/"+id, nil, bearerToken, nil)
}

// apiError is the {"message": ...} body the service returns on failures.
type apiError struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, bearer string, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("invoice service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		if json.NewDecoder(resp.Body).Decode(&ae) == nil && ae.Message != "" {
			return fmt.Errorf("invoice service: %s", ae.Message)
		}
		return fmt.Errorf("invoice service returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding invoice service response: %w", err)
	}
	return nil
}
