package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wiring "github.com/jhoicas/inventory-ledger-api/internal/app"
	"github.com/jhoicas/inventory-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/mail"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventory-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/inventory-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiEnv struct {
	app       *fiber.App
	companyID string
	admin     string // Authorization header del admin de la empresa
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	renderer, err := mail.NewRenderer()
	require.NoError(t, err)

	deps := wiring.Build(wiring.MemoryStorage(memory.NewStore()), wiring.Options{
		JWT:                      auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		DefaultLowStockThreshold: 10,
		Mailer:                   mail.NewLogMailer(renderer, logger.NewNop()),
		Renderer:                 infrapdf.NewMarotoReportRenderer(),
		Spreadsheet:              xlsx.NewExcelizeReportExporter(),
	})
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, deps)

	e := &apiEnv{app: app}
	e.companyID = e.createCompany(t, "Tienda Central")
	e.admin = e.userToken(t, e.companyID, "admin@central.co", "admin")
	return e
}

func (e *apiEnv) call(t *testing.T, method, path, authHeader string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// mustCall exige el status esperado y decodifica la respuesta en out (si no es nil).
func (e *apiEnv) mustCall(t *testing.T, want int, method, path, authHeader string, body, out any) {
	t.Helper()
	status, raw := e.call(t, method, path, authHeader, body)
	require.Equal(t, want, status, "%s %s: %s", method, path, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &er), string(raw))
	return er.Code
}

func (e *apiEnv) createCompany(t *testing.T, name string) string {
	t.Helper()
	var c dto.CompanyResponse
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/companies", "",
		fiber.Map{"name": name + " " + uuid.NewString()[:8], "email": "alertas@tienda.co"}, &c)
	return c.ID
}

// userToken registra un usuario con los roles dados y devuelve su header Authorization.
func (e *apiEnv) userToken(t *testing.T, companyID, email string, roles ...string) string {
	t.Helper()
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name": "Usuario", "email": email, "password": "secreto123", "company_id": companyID, "roles": roles,
	}, nil)
	var login dto.LoginResponse
	e.mustCall(t, http.StatusOK, http.MethodPost, "/api/v1/auth/login", "",
		fiber.Map{"email": email, "password": "secreto123"}, &login)
	require.NotEmpty(t, login.Token)
	return "Bearer " + login.Token
}

func (e *apiEnv) createWarehouse(t *testing.T, authHeader string) string {
	t.Helper()
	var w dto.WarehouseResponse
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/inventory/warehouses", authHeader,
		fiber.Map{"name": "Bodega Norte"}, &w)
	return w.ID
}

func (e *apiEnv) createProduct(t *testing.T, authHeader, sku string) string {
	t.Helper()
	var p dto.ProductResponse
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/inventory/products", authHeader,
		fiber.Map{"sku": sku, "name": "Café molido 500g", "unit_price": "18500"}, &p)
	return p.ID
}

func (e *apiEnv) level(t *testing.T, productID, warehouseID string) int {
	t.Helper()
	var l dto.StockLevelResponse
	e.mustCall(t, http.StatusOK, http.MethodGet,
		fmt.Sprintf("/api/v1/inventory/stock/%s/%s", productID, warehouseID), e.admin, nil, &l)
	return l.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroLoginYPerfil(t *testing.T) {
	e := newAPI(t)

	var me dto.UserResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/users/me", e.admin, nil, &me)
	assert.Equal(t, "admin@central.co", me.Email)
	assert.Equal(t, []string{"admin"}, me.Roles)
	assert.Equal(t, e.companyID, me.CompanyID)

	status, raw := e.call(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email": "ADMIN@central.co", "password": "otraclave1", "company_id": e.companyID,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeConflict, errorCode(t, raw))

	status, raw = e.call(t, http.MethodPost, "/api/v1/auth/login", "",
		fiber.Map{"email": "admin@central.co", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthorized, errorCode(t, raw))
}

func TestAPI_RolPorDefectoYCambioDeRoles(t *testing.T) {
	e := newAPI(t)
	vendedor := e.userToken(t, e.companyID, "ventas@central.co")

	var me dto.UserResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/users/me", vendedor, nil, &me)
	assert.Equal(t, []string{"sales_rep"}, me.Roles)

	status, _ := e.call(t, http.MethodGet, "/api/v1/users", vendedor, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var updated dto.UserResponse
	e.mustCall(t, http.StatusOK, http.MethodPatch, "/api/v1/users/"+me.ID+"/roles", e.admin,
		fiber.Map{"roles": []string{"warehouse_staff", "sales_rep"}}, &updated)
	assert.Equal(t, []string{"sales_rep", "warehouse_staff"}, updated.Roles)

	var list dto.UserListResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/users?limit=10", e.admin, nil, &list)
	assert.Len(t, list.Items, 2)
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, http.MethodGet, "/api/v1/inventory/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock y libro
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AjusteDeStockYStockInsuficiente(t *testing.T) {
	e := newAPI(t)
	wh := e.createWarehouse(t, e.admin)
	prod := e.createProduct(t, e.admin, "caf-500")

	var res dto.AdjustmentResult
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/inventory/stock/adjust", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "type": "IN", "quantity": 5, "reference": "Compra inicial",
	}, &res)
	assert.Equal(t, 5, res.StockLevel.Quantity)
	assert.Equal(t, 5, res.Transaction.SignedQuantity)

	status, raw := e.call(t, http.MethodPost, "/api/v1/inventory/stock/adjust", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "type": "OUT", "quantity": 8,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInsufficientStock, errorCode(t, raw))
	assert.Equal(t, 5, e.level(t, prod, wh), "un ajuste rechazado no toca el nivel")

	var ledger dto.TransactionListResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/transactions?product_id="+prod, e.admin, nil, &ledger)
	require.Len(t, ledger.Items, 1, "el rechazo no deja entrada en el libro")
}

func TestAPI_AjusteSinDireccion_Retorna400(t *testing.T) {
	e := newAPI(t)
	wh := e.createWarehouse(t, e.admin)
	prod := e.createProduct(t, e.admin, "caf-250")

	status, raw := e.call(t, http.MethodPost, "/api/v1/inventory/stock/adjust", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "type": "ADJUSTMENT", "quantity": 2,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(t, raw))
}

func TestAPI_CantidadFueraDeRango_Retorna400(t *testing.T) {
	e := newAPI(t)
	wh := e.createWarehouse(t, e.admin)
	prod := e.createProduct(t, e.admin, "caf-500")

	for _, path := range []string{"/api/v1/inventory/stock/adjust", "/api/v1/inventory/purchases"} {
		status, raw := e.call(t, http.MethodPost, path, e.admin, fiber.Map{
			"product_id": prod, "warehouse_id": wh, "type": "IN", "quantity": 3_000_000_000, "unit_cost": "1",
		})
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, apphttp.CodeValidation, errorCode(t, raw), path)
	}
}

func TestAPI_ConteoFisicoYReversion(t *testing.T) {
	e := newAPI(t)
	wh := e.createWarehouse(t, e.admin)
	prod := e.createProduct(t, e.admin, "te-verde")

	var res dto.AdjustmentResult
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/inventory/transactions", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "type": "IN", "quantity": 12,
	}, nil)
	levelID := func() string {
		var list dto.StockLevelListResponse
		e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/stock-levels?warehouse_id="+wh, e.admin, nil, &list)
		require.Len(t, list.Items, 1)
		return list.Items[0].ID
	}()

	var counted dto.StockLevelResponse
	e.mustCall(t, http.StatusOK, http.MethodPut, "/api/v1/inventory/stock-levels/"+levelID, e.admin,
		fiber.Map{"quantity": 9, "reference": "Conteo mensual"}, &counted)
	assert.Equal(t, 9, counted.Quantity)

	var ledger dto.TransactionListResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/transactions?type=ADJUSTMENT", e.admin, nil, &ledger)
	require.Len(t, ledger.Items, 1)
	assert.Equal(t, -3, ledger.Items[0].SignedQuantity)

	e.mustCall(t, http.StatusCreated, http.MethodPost,
		"/api/v1/inventory/transactions/"+ledger.Items[0].ID+"/reverse", e.admin, nil, &res)
	assert.Equal(t, 12, res.StockLevel.Quantity)
	assert.Equal(t, "Reversal of "+ledger.Items[0].ID, res.Transaction.Reference)
}

func TestAPI_LibroNoAdmiteEdicion(t *testing.T) {
	e := newAPI(t)
	status, _ := e.call(t, http.MethodPatch, "/api/v1/inventory/transactions/"+uuid.NewString(), e.admin, fiber.Map{"quantity": 1})
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	status, _ = e.call(t, http.MethodDelete, "/api/v1/inventory/transactions/"+uuid.NewString(), e.admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras, ventas y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CompraVentaYConciliacion(t *testing.T) {
	e := newAPI(t)
	wh := e.createWarehouse(t, e.admin)
	prod := e.createProduct(t, e.admin, "arroz-1k")

	var purchase dto.PurchaseResponse
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/inventory/purchases", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "quantity": 10, "unit_cost": "3200",
	}, &purchase)
	assert.Equal(t, "32000", purchase.TotalCost.String())
	assert.Equal(t, 10, e.level(t, prod, wh))

	var sale dto.SaleResponse
	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/inventory/sales", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "quantity": 4, "unit_price": "4500",
	}, &sale)
	assert.Equal(t, 6, e.level(t, prod, wh))

	e.mustCall(t, http.StatusOK, http.MethodPatch, "/api/v1/inventory/sales/"+sale.ID, e.admin, fiber.Map{"quantity": 6}, nil)
	assert.Equal(t, 4, e.level(t, prod, wh))

	status, raw := e.call(t, http.MethodPost, "/api/v1/inventory/sales", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "quantity": 50, "unit_price": "4500",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInsufficientStock, errorCode(t, raw))

	e.mustCall(t, http.StatusNoContent, http.MethodDelete, "/api/v1/inventory/sales/"+sale.ID, e.admin, nil, nil)
	assert.Equal(t, 10, e.level(t, prod, wh))

	var rec dto.ReconciliationResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/reports/reconciliation", e.admin, nil, &rec)
	assert.True(t, rec.Consistent)
	assert.Empty(t, rec.Items)

	var summary dto.PurchaseSummaryResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/reports/purchases", e.admin, nil, &summary)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 10, summary.Items[0].TotalQuantity)
}

func TestAPI_ReporteStockBajo(t *testing.T) {
	e := newAPI(t)
	wh := e.createWarehouse(t, e.admin)
	prod := e.createProduct(t, e.admin, "sal-1k")
	e.createProduct(t, e.admin, "azucar-1k") // sin niveles: también aparece

	e.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/inventory/stock/adjust", e.admin, fiber.Map{
		"product_id": prod, "warehouse_id": wh, "type": "IN", "quantity": 7,
	}, nil)

	var report dto.LowStockReportResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/reports/low-stock", e.admin, nil, &report)
	assert.Equal(t, 10, report.Threshold)
	assert.Len(t, report.Items, 2)

	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/stock-levels/low-stock?threshold=5", e.admin, nil, &report)
	assert.Equal(t, 5, report.Threshold)
	require.Len(t, report.Items, 1)
	assert.Nil(t, report.Items[0].WarehouseID)

	status, raw := e.call(t, http.MethodGet, "/api/v1/inventory/reports/low-stock?threshold=muchos", e.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(t, raw))
}

func TestAPI_ReportePDF(t *testing.T) {
	e := newAPI(t)
	e.createProduct(t, e.admin, "aceite-1l")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/reports/low-stock?format=pdf", nil)
	req.Header.Set("Authorization", e.admin)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock-bajo-")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_ReporteXLSX(t *testing.T) {
	e := newAPI(t)
	e.createProduct(t, e.admin, "aceite-1l")

	for _, path := range []string{
		"/api/v1/inventory/reports/purchases?format=xlsx",
		"/api/v1/inventory/reports/reconciliation?format=xlsx",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", e.admin)
		resp, err := e.app.Test(req, -1)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		// XLSX es un ZIP.
		assert.True(t, bytes.HasPrefix(body, []byte("PK")), path)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC, validación y aislamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_PermisosPorRol(t *testing.T) {
	e := newAPI(t)
	wh := e.createWarehouse(t, e.admin)
	prod := e.createProduct(t, e.admin, "harina-1k")

	bodega := e.userToken(t, e.companyID, "bodega@central.co", "warehouse_staff")
	ventas := e.userToken(t, e.companyID, "ventas@central.co", "sales_rep")
	gerente := e.userToken(t, e.companyID, "gerente@central.co", "store_manager")

	cases := []struct {
		name   string
		token  string
		method string
		path   string
		body   any
		want   int
	}{
		{"bodega ajusta stock", bodega, http.MethodPost, "/api/v1/inventory/stock/adjust",
			fiber.Map{"product_id": prod, "warehouse_id": wh, "type": "IN", "quantity": 3}, http.StatusCreated},
		{"bodega no crea productos", bodega, http.MethodPost, "/api/v1/inventory/products",
			fiber.Map{"sku": "x-1", "name": "X"}, http.StatusForbidden},
		{"ventas no ajusta stock", ventas, http.MethodPost, "/api/v1/inventory/stock/adjust",
			fiber.Map{"product_id": prod, "warehouse_id": wh, "type": "IN", "quantity": 3}, http.StatusForbidden},
		{"ventas lista productos", ventas, http.MethodGet, "/api/v1/inventory/products", nil, http.StatusOK},
		{"ventas ve resumen de ventas", ventas, http.MethodGet, "/api/v1/inventory/reports/sales", nil, http.StatusOK},
		{"ventas no ve compras", ventas, http.MethodGet, "/api/v1/inventory/reports/purchases", nil, http.StatusForbidden},
		{"gerente no borra productos", gerente, http.MethodDelete, "/api/v1/inventory/products/" + prod, nil, http.StatusForbidden},
		{"gerente no ve auditoría", gerente, http.MethodGet, "/api/v1/inventory/audit-logs", nil, http.StatusForbidden},
		{"gerente no concilia", gerente, http.MethodGet, "/api/v1/inventory/reports/reconciliation", nil, http.StatusForbidden},
		{"admin ve auditoría", e.admin, http.MethodGet, "/api/v1/inventory/audit-logs", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := e.call(t, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.want, status, string(raw))
		})
	}
}

func TestAPI_ErroresDeValidacionConDetalle(t *testing.T) {
	e := newAPI(t)

	status, raw := e.call(t, http.MethodPost, "/api/v1/inventory/products", e.admin, fiber.Map{"name": "Sin SKU"})
	require.Equal(t, http.StatusBadRequest, status)
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &er))
	assert.Equal(t, apphttp.CodeValidation, er.Code)
	require.NotEmpty(t, er.Details)
	assert.Equal(t, "sku", er.Details[0].Field)

	status, raw = e.call(t, http.MethodPost, "/api/v1/inventory/products", e.admin, "{no es json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInvalidBody, errorCode(t, raw))

	e.createProduct(t, e.admin, "dup-1")
	status, raw = e.call(t, http.MethodPost, "/api/v1/inventory/products", e.admin, fiber.Map{"sku": "DUP-1", "name": "Otro"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeConflict, errorCode(t, raw))
}

func TestAPI_AislamientoEntreEmpresas(t *testing.T) {
	e := newAPI(t)
	prod := e.createProduct(t, e.admin, "leche-1l")

	otraEmpresa := e.createCompany(t, "Tienda Sur")
	otroAdmin := e.userToken(t, otraEmpresa, "admin@sur.co", "admin")

	status, raw := e.call(t, http.MethodGet, "/api/v1/inventory/products/"+prod, otroAdmin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, errorCode(t, raw))

	var list dto.ProductListResponse
	e.mustCall(t, http.StatusOK, http.MethodGet, "/api/v1/inventory/products", otroAdmin, nil, &list)
	assert.Empty(t, list.Items)

	// Mismo SKU en otra empresa no es duplicado.
	e.createProduct(t, otroAdmin, "leche-1l")
}

func TestAPI_AuditoriaDeProductos(t *testing.T) {
	e := newAPI(t)
	prod := e.createProduct(t, e.admin, "pan-tajado")
	e.mustCall(t, http.StatusOK, http.MethodPut, "/api/v1/inventory/products/"+prod, e.admin, fiber.Map{"name": "Pan tajado integral"}, nil)

	var logs dto.AuditLogListResponse
	e.mustCall(t, http.StatusOK, http.MethodGet,
		"/api/v1/inventory/audit-logs/by-entity?entity=product&entity_id="+prod, e.admin, nil, &logs)
	require.Len(t, logs.Items, 2)
	for _, l := range logs.Items {
		assert.Equal(t, "product", l.Entity)
		assert.Equal(t, prod, l.EntityID)
	}

	status, raw := e.call(t, http.MethodGet, "/api/v1/inventory/audit-logs/by-entity?entity=product", e.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(t, raw))
}

func TestAPI_NotificacionManual(t *testing.T) {
	e := newAPI(t)

	var out dto.NotificationResponse
	e.mustCall(t, http.StatusAccepted, http.MethodPost, "/api/v1/inventory/notifications/low-stock", e.admin,
		fiber.Map{"email": "compras@central.co", "product_name": "Café molido", "quantity": 2}, &out)

	status, raw := e.call(t, http.MethodPost, "/api/v1/inventory/notifications/stock-adjustment", e.admin,
		fiber.Map{"email": "no-es-correo", "product_name": "Café", "type": "IN", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, errorCode(t, raw))
}
