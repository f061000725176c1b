package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/solar-epc-api/internal/application/analytics"
	"github.com/jhoicas/solar-epc-api/internal/application/auth"
	"github.com/jhoicas/solar-epc-api/internal/application/billing"
	"github.com/jhoicas/solar-epc-api/internal/application/inventory"
	"github.com/jhoicas/solar-epc-api/internal/application/project"
	"github.com/jhoicas/solar-epc-api/internal/application/usecase"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/memory"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/solar-epc-api/internal/infrastructure/pdf"
	"github.com/jhoicas/solar-epc-api/internal/infrastructure/tally"
	apphttp "github.com/jhoicas/solar-epc-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildFullApp(t *testing.T) (*fiber.App, *metrics.Metrics) {
	t.Helper()
	store := memory.New()
	m := metrics.New()

	tokens := testSigner(t)

	ledgerUC := inventory.NewLedgerUseCase(store, store.Items(), store.Projects(), store.Ledger(), m, inventory.Config{})
	deps := apphttp.RouterDeps{
		CompanyUC:       usecase.NewCompanyUseCase(store.Companies()),
		UserUC:          usecase.NewUserUseCase(store.Users()),
		ItemUC:          usecase.NewItemUseCase(store, store.Items(), ledgerUC),
		LedgerUC:        ledgerUC,
		ReplenishmentUC: inventory.NewReplenishmentUseCase(store.Items()),
		CustomerUC:      billing.NewCustomerUseCase(store.Customers()),
		QuotationUC:     billing.NewQuotationUseCase(store, store.Companies(), store.Customers(), store.Items(), store.Quotations(), m),
		InvoiceUC: billing.NewInvoiceUseCase(store, ledgerUC, store.Companies(), store.Customers(), store.Items(),
			store.Quotations(), store.Projects(), store.Invoices(), m),
		PaymentUC: billing.NewPaymentUseCase(store, store.Invoices(), store.Projects(), store.Payments(), m),
		DocumentUC: billing.NewDocumentUseCase(store.Invoices(), store.Quotations(), store.Companies(), store.Customers(),
			infrapdf.NewMarotoPDFGenerator(), tally.NewExporter(), nil, time.Hour),
		ProjectUC:   project.NewUseCase(store.Projects(), store.Customers(), store.Quotations()),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Analytics(), store.Items()),
		AuthUC:         auth.NewAuthUseCase(store.Users(), store.Companies(), tokens),
		Tokens:         tokens,
		MetricsHandler: m.Handler(),
	}

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	app.Use(apphttp.MetricsMiddleware(m))
	apphttp.Router(app, deps)
	return app, m
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

// num normaliza un decimal serializado (con o sin comillas) a texto.
func num(v any) string { return fmt.Sprint(v) }

// onboard crea empresa + usuario con el rol indicado y devuelve el token.
func onboard(t *testing.T, app *fiber.App, role string) string {
	t.Helper()
	status, company := call(t, app, http.MethodPost, "/api/companies", "", map[string]any{
		"name": "Suryaprakash Solar", "gstin": "29ABCDE1234F1Z5",
	})
	require.Equal(t, http.StatusCreated, status, company)

	email := role + "@surya.in"
	status, _ = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "password123", "company_id": company["id"], "role": role,
	})
	require.Equal(t, http.StatusCreated, status)

	status, login := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	return login["token"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo: empresa → usuario → artículo → libro mayor → cálculo de cotización
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_FlujoInventarioYCotizacion(t *testing.T) {
	app, _ := buildFullApp(t)
	token := onboard(t, app, "admin")

	status, item := call(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"sku": "PNL-540", "name": "Mono PERC 540Wp", "unit": "Nos", "hsn_code": "8541",
		"gst_rate": 12, "sale_price": 11000, "purchase_price": 9000, "reorder_level": 20,
		"opening_stock": 10,
	})
	require.Equal(t, http.StatusCreated, status, item)
	itemID := item["id"].(string)

	// Venta mayor que el saldo: rechazada sin dejar rastro.
	status, errBody := call(t, app, http.MethodPost, "/api/inventory/transactions", token, map[string]any{
		"item_id": itemID, "transaction_type": "Sale", "quantity": 25,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody["code"])

	status, entry := call(t, app, http.MethodPost, "/api/inventory/transactions", token, map[string]any{
		"item_id": itemID, "transaction_type": "Transfer to Site", "quantity": 4,
	})
	require.Equal(t, http.StatusCreated, status, entry)
	assert.Equal(t, "6", num(entry["balance_quantity"]))

	status, ledger := call(t, app, http.MethodGet, "/api/inventory/ledger?item_id="+itemID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), ledger["total"])

	status, low := call(t, app, http.MethodGet, "/api/inventory/low-stock", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), low["total"])

	// 10 × 11000 a 12% intraestatal: 110000 + 6600 + 6600.
	status, preview := call(t, app, http.MethodPost, "/api/quotations/preview", token, map[string]any{
		"place_of_supply": "Karnataka",
		"lines":           []map[string]any{{"item_id": itemID, "quantity": 10}},
	})
	require.Equal(t, http.StatusOK, status, preview)
	assert.Equal(t, false, preview["interstate"])
	totals := preview["totals"].(map[string]any)
	assert.Equal(t, "123200", num(totals["grand_total"]))
	assert.Equal(t, "6600", num(totals["cgst"]))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores y RBAC
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ErroresYRoles(t *testing.T) {
	app, _ := buildFullApp(t)
	token := onboard(t, app, "store")

	status, _ := call(t, app, http.MethodGet, "/api/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := call(t, app, http.MethodGet, "/api/items/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"sku": "X", "name": "Cable", "unit": "m", "gst_rate": 19,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	// store no emite cotizaciones.
	status, body = call(t, app, http.MethodPost, "/api/quotations", token, map[string]any{})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRouter_Metrics(t *testing.T) {
	app, _ := buildFullApp(t)
	_ = onboard(t, app, "admin")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), `solar_epc_http_requests_total{method="POST",path="/api/auth/login",status="200"} 1`)
}
