package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/solar-epc-api/internal/interfaces/http"
	"github.com/jhoicas/solar-epc-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "solar-epc-test"
)

func testSigner(t *testing.T, opts ...jwt.SignerOption) *jwt.Signer {
	t.Helper()
	s, err := jwt.NewSigner(testJWTSecret, testIssuer, time.Hour, opts...)
	require.NoError(t, err)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: token ausente, malformado o expirado
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_TokenAusenteOMalformado(t *testing.T) {
	app, _ := buildFullApp(t)

	status, body := call(t, app, http.MethodGet, "/api/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])

	status, body = call(t, app, http.MethodGet, "/api/items", "token.invalido.aqui", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_TokenExpirado(t *testing.T) {
	app, _ := buildFullApp(t)
	old := testSigner(t, jwt.WithClock(func() time.Time { return time.Now().Add(-3 * time.Hour) }))
	tok, err := old.Issue(jwt.Session{UserID: "u-1", CompanyID: "co-1", Role: jwt.RoleAdmin})
	require.NoError(t, err)

	status, body := call(t, app, http.MethodGet, "/api/inventory/ledger", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_CargaLaSesion(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", apphttp.AuthMiddleware(testSigner(t)), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})
	tok, err := testSigner(t).Issue(jwt.Session{UserID: "u-7", CompanyID: "co-9", Role: jwt.RoleStore})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"user_id": "u-7", "company_id": "co-9", "role": "store"}, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC sobre las rutas de la API
// ──────────────────────────────────────────────────────────────────────────────

func TestRBAC_AlmacenNoFacturaNiCobra(t *testing.T) {
	app, _ := buildFullApp(t)
	token := onboard(t, app, "store")

	status, body := call(t, app, http.MethodPost, "/api/invoices", token, map[string]any{})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = call(t, app, http.MethodPost, "/api/payments", token, map[string]any{"amount": 1000})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodPut, "/api/company", token, map[string]any{"name": "Otra"})
	assert.Equal(t, http.StatusForbidden, status, "editar la empresa es solo para admin")

	// Su propia ruta pasa el RBAC y llega a la validación del caso de uso.
	status, body = call(t, app, http.MethodPost, "/api/inventory/transactions", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestRBAC_VentasCotizaPeroNoTocaInventario(t *testing.T) {
	app, _ := buildFullApp(t)
	token := onboard(t, app, "sales")

	status, customer := call(t, app, http.MethodPost, "/api/customers", token, map[string]any{
		"name": "Lakshmi Textiles", "state": "Karnataka",
	})
	require.Equal(t, http.StatusCreated, status, customer)

	// 25000 + 18% intraestatal.
	status, quotation := call(t, app, http.MethodPost, "/api/quotations", token, map[string]any{
		"customer_id": customer["id"],
		"lines": []map[string]any{{
			"description": "Instalación sistema 5kW", "hsn_code": "995442", "unit": "Job",
			"quantity": 1, "unit_price": 25000, "gst_rate": 18,
		}},
	})
	require.Equal(t, http.StatusCreated, status, quotation)
	assert.Contains(t, quotation["number"], "QT/")
	totals := quotation["totals"].(map[string]any)
	assert.Equal(t, "29500", num(totals["grand_total"]))

	status, body := call(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"sku": "PNL-540", "name": "Panel", "unit": "Nos", "gst_rate": 12,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRBAC_AdminPasaEnRutasDeOtrosRoles(t *testing.T) {
	app, _ := buildFullApp(t)
	token := onboard(t, app, "admin")

	status, item := call(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"sku": "INV-5K", "name": "Inversor 5kW", "unit": "Nos", "gst_rate": 12, "sale_price": 45000,
	})
	assert.Equal(t, http.StatusCreated, status, item)

	status, _ = call(t, app, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRBAC_TokenSinRol(t *testing.T) {
	app, _ := buildFullApp(t)
	legacy := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"iss": testIssuer, "sub": "u-1", "company_id": "co-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok, err := legacy.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	status, body := call(t, app, http.MethodPost, "/api/quotations", tok, map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}
