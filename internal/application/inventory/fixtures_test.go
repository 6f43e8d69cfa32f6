package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Entorno de pruebas sobre el store en memoria
// ─────────────────────────────────────────────────────────────────────────────

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	To       string
	Template string
	Data     map[string]any
}

func (m *fakeMailer) Send(_ context.Context, recipient, templateName string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: recipient, Template: templateName, Data: data})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type env struct {
	store     *memory.Store
	mailer    *fakeMailer
	agg       *inventory.StockAggregator
	stock     *inventory.StockUseCase
	txs       *inventory.TransactionUseCase
	purchases *inventory.PurchaseUseCase
	sales     *inventory.SaleUseCase
	reports   *inventory.ReportUseCase
	principal domain.Principal
	company   *entity.Company
	warehouse *entity.Warehouse
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	mailer := &fakeMailer{}
	alerts := inventory.NewLowStockAlerter(store.Companies(), store.Products(), store.Warehouses(), mailer, nil)
	agg := inventory.NewStockAggregator(store, alerts, nil, nil)

	now := time.Now().UTC()
	company := &entity.Company{
		ID:                uuid.New().String(),
		Name:              "Tienda Central " + uuid.New().String()[:8],
		LowStockThreshold: entity.DefaultLowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, store.Companies().Create(context.Background(), company))

	e := &env{
		store:     store,
		mailer:    mailer,
		agg:       agg,
		stock:     inventory.NewStockUseCase(agg, store, store.StockLevels(), nil),
		txs:       inventory.NewTransactionUseCase(agg, store, store.Transactions(), nil),
		purchases: inventory.NewPurchaseUseCase(agg, store, store.Purchases(), store.Suppliers(), nil),
		sales:     inventory.NewSaleUseCase(agg, store, store.Sales(), nil),
		reports:   inventory.NewReportUseCase(store.Reports(), store.Companies(), nil, nil),
		principal: domain.Principal{
			UserID:    uuid.New().String(),
			CompanyID: company.ID,
			Roles:     []string{domain.RoleAdmin},
		},
		company: company,
	}
	e.warehouse = e.addWarehouse(t, "Bodega Norte")
	return e
}

func (e *env) addWarehouse(t *testing.T, name string) *entity.Warehouse {
	t.Helper()
	now := time.Now().UTC()
	w := &entity.Warehouse{ID: uuid.New().String(), CompanyID: e.company.ID, Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.store.Warehouses().Create(context.Background(), w))
	return w
}

func (e *env) addProduct(t *testing.T, sku string) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: e.company.ID,
		SKU:       sku,
		Barcode:   uuid.New().String()[:12],
		Name:      "Producto " + sku,
		UnitPrice: decimal.NewFromInt(1000),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.store.Products().Create(context.Background(), p))
	return p
}

func (e *env) adjust(t *testing.T, productID, txType, direction string, qty int) (*inventory.AdjustResult, error) {
	t.Helper()
	return e.agg.Adjust(context.Background(), e.principal, inventory.Movement{
		ProductID:   productID,
		WarehouseID: e.warehouse.ID,
		Type:        txType,
		Direction:   direction,
		Quantity:    qty,
	})
}

func (e *env) level(t *testing.T, productID, warehouseID string) int {
	t.Helper()
	l, err := e.store.StockLevels().Get(context.Background(), e.company.ID, productID, warehouseID)
	require.NoError(t, err)
	if l == nil {
		return 0
	}
	return l.Quantity
}

func (e *env) ledger(t *testing.T, productID string) []*entity.Transaction {
	t.Helper()
	list, err := e.store.Transactions().List(context.Background(), repository.TransactionFilter{CompanyID: e.company.ID, ProductID: productID})
	require.NoError(t, err)
	return list
}
