package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-webapp/apiclient"
	"invoice-webapp/controllers"
	"invoice-webapp/middlewares"
	"invoice-webapp/models"
	"invoice-webapp/routes"
	"invoice-webapp/store"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET_KEY", "test-secret")
	os.Exit(m.Run())
}

// backendRecorder captures what the editor forwards to the invoice
// service, so tests can assert on the outbound wire payloads.
type backendRecorder struct {
	statusUpdate apiclient.StatusUpdate
	deleteAuth   string
}

// fakeInvoiceAPI is a stand-in for the remote invoice service. The stored
// record it serves is deliberately old-style: no itemHeaders, rows without
// ids, record-internal markers mixed into the data.
func fakeInvoiceAPI(t *testing.T, rec *backendRecorder) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /invoices/userId/{userId}", func(w http.ResponseWriter, r *http.Request) {
		prior := models.Invoice{}
		prior.InvoiceDetails.Number = "INV-0042"
		_ = json.NewEncoder(w).Encode([]models.Invoice{prior})
	})
	mux.HandleFunc("POST /invoices", func(w http.ResponseWriter, r *http.Request) {
		var payload models.Invoice
		_ = json.NewDecoder(r.Body).Decode(&payload)
		payload.ID = "srv-1"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(apiclient.CreateResponse{Invoice: payload})
	})
	mux.HandleFunc("GET /invoices/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"_id":    r.PathValue("id"),
			"userId": "someone-else",
			"items": []map[string]any{{
				"data": map[string]string{
					"zeta":  "wires",
					"alpha": "labor",
					"_id":   "651f0c",
					"__v":   "0",
				},
				"quantity": 2,
				"rate":     5,
				"amount":   10,
			}},
			"totals": map[string]any{"subtotal": 10, "total": 10, "balanceDue": 10},
		})
	})
	mux.HandleFunc("PUT /invoices/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&rec.statusUpdate)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("DELETE /invoices/{id}", func(w http.ResponseWriter, r *http.Request) {
		rec.deleteAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invoice deleted"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type draftResponse struct {
	DraftID string         `json:"draftId"`
	Invoice models.Invoice `json:"invoice"`
	Message string         `json:"message"`
}

type editorApp struct {
	app     *fiber.App
	token   string
	backend *backendRecorder
}

func newEditorApp(t *testing.T) *editorApp {
	t.Helper()
	rec := &backendRecorder{}
	backend := fakeInvoiceAPI(t, rec)
	controllers.Init(store.New(), apiclient.New(backend.URL, backend.Client()), "https://app.example.com")

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(app)

	token, err := middlewares.GenerateJWT("user-1")
	require.NoError(t, err)
	return &editorApp{app: app, token: token, backend: rec}
}

func (e *editorApp) do(t *testing.T, method, path string, body any) (*http.Response, draftResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+e.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var dr draftResponse
	_ = json.Unmarshal(raw, &dr)
	return resp, dr
}

func TestRequiresBearerToken(t *testing.T) {
	e := newEditorApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts", nil)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateDraftPrefillsNextNumber(t *testing.T) {
	e := newEditorApp(t)
	resp, dr := e.do(t, http.MethodPost, "/api/v1/drafts", nil)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, dr.DraftID)
	assert.Equal(t, "INV-0043", dr.Invoice.InvoiceDetails.Number)
	assert.Equal(t, models.StatusPending, dr.Invoice.Status)
}

func TestGridEditingFlow(t *testing.T) {
	e := newEditorApp(t)
	_, dr := e.do(t, http.MethodPost, "/api/v1/drafts", nil)
	base := "/api/v1/drafts/" + dr.DraftID

	// two rows
	_, dr = e.do(t, http.MethodPost, base+"/items", fiber.Map{"count": 2})
	require.Len(t, dr.Invoice.Items, 2)

	// edit the first row
	itemID := dr.Invoice.Items[0].ID
	_, dr = e.do(t, http.MethodPut, base+"/items/"+itemID, fiber.Map{"field": "rate", "value": 50})
	_, dr = e.do(t, http.MethodPut, base+"/items/"+itemID, fiber.Map{"field": "quantity", "value": 2})
	assert.Equal(t, 100.0, dr.Invoice.Items[0].Amount)
	assert.Equal(t, 100.0, dr.Invoice.Totals.Subtotal)

	// paste a quantity column starting at row 2: grows the grid
	_, dr = e.do(t, http.MethodPost, base+"/paste", fiber.Map{
		"itemId": dr.Invoice.Items[1].ID,
		"field":  "quantity",
		"text":   "5\n6",
	})
	require.Len(t, dr.Invoice.Items, 3)
	assert.Equal(t, 5.0, dr.Invoice.Items[1].Quantity)
	assert.Equal(t, 6.0, dr.Invoice.Items[2].Quantity)

	// headers: add, rename, guard the last one
	_, dr = e.do(t, http.MethodPost, base+"/headers", nil)
	assert.Equal(t, []string{"description", "Header 2"}, dr.Invoice.ItemHeaders)

	_, dr = e.do(t, http.MethodPut, base+"/headers/1", fiber.Map{"name": "sku"})
	assert.Equal(t, []string{"description", "sku"}, dr.Invoice.ItemHeaders)

	resp, dr := e.do(t, http.MethodDelete, base+"/headers/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, dr = e.do(t, http.MethodDelete, base+"/headers/0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "At least one header is required.", dr.Message)
}

func TestAddItemsClampsBatchSize(t *testing.T) {
	e := newEditorApp(t)
	_, dr := e.do(t, http.MethodPost, "/api/v1/drafts", nil)
	base := "/api/v1/drafts/" + dr.DraftID

	resp, dr := e.do(t, http.MethodPost, base+"/items", fiber.Map{"count": 1000000})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, dr.Invoice.Items, 100)
}

func TestTotalsConfigEndpoint(t *testing.T) {
	e := newEditorApp(t)
	_, dr := e.do(t, http.MethodPost, "/api/v1/drafts", nil)
	base := "/api/v1/drafts/" + dr.DraftID

	_, dr = e.do(t, http.MethodPost, base+"/items", fiber.Map{"count": 1})
	itemID := dr.Invoice.Items[0].ID
	_, dr = e.do(t, http.MethodPut, base+"/items/"+itemID, fiber.Map{"field": "rate", "value": 200})

	_, dr = e.do(t, http.MethodPut, base+"/totals", fiber.Map{
		"taxRate":      10,
		"discount":     20,
		"discountType": "fixed",
		"shipping":     5,
		"shippingType": "percentage",
		"amountPaid":   50,
	})
	assert.Equal(t, 200.0, dr.Invoice.Totals.Subtotal)
	assert.Equal(t, 20.0, dr.Invoice.Totals.Tax)
	assert.Equal(t, 210.0, dr.Invoice.Totals.Total) // 200 + 20 + 10 - 20
	assert.Equal(t, 160.0, dr.Invoice.Totals.BalanceDue)
}

func TestSaveDraft(t *testing.T) {
	e := newEditorApp(t)
	_, dr := e.do(t, http.MethodPost, "/api/v1/drafts", nil)
	base := "/api/v1/drafts/" + dr.DraftID

	// saving an incomplete draft is blocked with aggregated messages
	resp, _ := e.do(t, http.MethodPost, base+"/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	_, dr = e.do(t, http.MethodPut, base+"/details", fiber.Map{
		"senderDetails":    fiber.Map{"name": "Acme Corp", "address": "1 Main St"},
		"recipientDetails": fiber.Map{"billTo": fiber.Map{"name": "Globex", "address": "2 Side St"}},
		"invoiceDetails": fiber.Map{
			"number": dr.Invoice.InvoiceDetails.Number,
			"date":   dr.Invoice.InvoiceDetails.Date,
			"dueDate": "2026-09-30",
			"currency": "USD",
		},
	})

	_, dr = e.do(t, http.MethodPost, base+"/items", fiber.Map{"count": 1})
	itemID := dr.Invoice.Items[0].ID
	_, _ = e.do(t, http.MethodPut, base+"/items/"+itemID, fiber.Map{
		"field": "data",
		"data":  map[string]string{"description": "consulting"},
	})
	_, _ = e.do(t, http.MethodPut, base+"/items/"+itemID, fiber.Map{"field": "rate", "value": 150})

	resp, dr = e.do(t, http.MethodPost, base+"/save", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Invoice saved successfully", dr.Message)
	assert.Equal(t, "srv-1", dr.Invoice.ID)
	assert.Equal(t, 150.0, dr.Invoice.Totals.Total)

	// the draft is gone once the create succeeded
	resp, _ = e.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShareLinks(t *testing.T) {
	e := newEditorApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/srv-1/share", nil)
	req.Header.Set("Authorization", "Bearer "+e.token)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var links struct {
		URL      string `json:"url"`
		WhatsApp string `json:"whatsapp"`
		Email    string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(raw, &links))
	assert.Equal(t, "https://app.example.com/share/srv-1", links.URL)
	assert.True(t, strings.HasPrefix(links.WhatsApp, "https://wa.me/?text="))
	assert.True(t, strings.HasPrefix(links.Email, "mailto:?subject="))
}

func TestDraftOwnershipEnforced(t *testing.T) {
	e := newEditorApp(t)
	_, dr := e.do(t, http.MethodPost, "/api/v1/drafts", nil)

	other, err := middlewares.GenerateJWT("user-2")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts/"+dr.DraftID, nil)
	req.Header.Set("Authorization", "Bearer "+other)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
