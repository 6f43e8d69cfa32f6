package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

func ptrInt(v int) *int { return &v }

// ─────────────────────────────────────────────────────────────────────────────
// Compras
// ─────────────────────────────────────────────────────────────────────────────

func TestPurchase_CrearYEliminarDejaElStockIgual(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "COMP-001")
	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 4)
	require.NoError(t, err)

	out, err := e.purchases.Create(ctx, e.principal, dto.CreatePurchaseRequest{
		ProductID:   p.ID,
		WarehouseID: e.warehouse.ID,
		Quantity:    25,
		UnitCost:    decimal.RequireFromString("1500.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, 29, e.level(t, p.ID, e.warehouse.ID))
	assert.True(t, decimal.RequireFromString("37512.5").Equal(out.TotalCost))

	ledger := e.ledger(t, p.ID)
	require.Len(t, ledger, 2)
	assert.Equal(t, entity.TransactionTypeIN, ledger[0].Type)
	assert.Equal(t, "Purchase#"+out.ID, ledger[0].Reference)

	require.NoError(t, e.purchases.Delete(ctx, e.principal, out.ID))
	assert.Equal(t, 4, e.level(t, p.ID, e.warehouse.ID))
	assert.Len(t, e.ledger(t, p.ID), 3)

	_, err = e.purchases.GetByID(ctx, e.principal, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchase_ActualizarMueveSoloLaDiferencia(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "COMP-002")

	out, err := e.purchases.Create(ctx, e.principal, dto.CreatePurchaseRequest{
		ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 10, UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, e.level(t, p.ID, e.warehouse.ID))

	_, err = e.purchases.Update(ctx, e.principal, out.ID, dto.UpdatePurchaseRequest{Quantity: ptrInt(16)})
	require.NoError(t, err)
	assert.Equal(t, 16, e.level(t, p.ID, e.warehouse.ID), "Q1=10 → Q2=16 mueve +6, no +16 ni +26")

	updated, err := e.purchases.Update(ctx, e.principal, out.ID, dto.UpdatePurchaseRequest{Quantity: ptrInt(12)})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)
	assert.Equal(t, 12, e.level(t, p.ID, e.warehouse.ID))

	// Solo cambia el costo: sin movimiento de stock.
	before := len(e.ledger(t, p.ID))
	cost := decimal.NewFromInt(120)
	_, err = e.purchases.Update(ctx, e.principal, out.ID, dto.UpdatePurchaseRequest{UnitCost: &cost})
	require.NoError(t, err)
	assert.Len(t, e.ledger(t, p.ID), before)

	logs, err := e.store.AuditLogs().List(ctx, repository.AuditLogFilter{CompanyID: e.company.ID, Entity: entity.AuditEntityPurchase})
	require.NoError(t, err)
	assert.Len(t, logs, 4)
	assert.Equal(t, entity.AuditUpdate, logs[0].Action)
}

func TestPurchase_EliminarConStockConsumidoFallaSinCambios(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "COMP-003")

	out, err := e.purchases.Create(ctx, e.principal, dto.CreatePurchaseRequest{
		ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 5, UnitCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = e.adjust(t, p.ID, entity.TransactionTypeOUT, "", 4)
	require.NoError(t, err)

	err = e.purchases.Delete(ctx, e.principal, out.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, e.level(t, p.ID, e.warehouse.ID))

	still, err := e.purchases.GetByID(ctx, e.principal, out.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, still.Quantity)

	// La auditoría va en la misma transacción: el DELETE fallido no deja rastro.
	logs, err := e.store.AuditLogs().List(ctx, repository.AuditLogFilter{
		CompanyID: e.company.ID, Entity: entity.AuditEntityPurchase, EntityID: out.ID,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditCreate, logs[0].Action)
}

func TestPurchase_Validaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "COMP-004")

	_, err := e.purchases.Create(ctx, e.principal, dto.CreatePurchaseRequest{
		ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 0,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Fields[0].Field)

	_, err = e.purchases.Create(ctx, e.principal, dto.CreatePurchaseRequest{
		ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 1, UnitCost: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	missing := "0b7f0c3e-2d7a-4d7e-9a51-3a8f1f1a2b3c"
	_, err = e.purchases.Create(ctx, e.principal, dto.CreatePurchaseRequest{
		SupplierID: &missing, ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, e.level(t, p.ID, e.warehouse.ID))
}

// ─────────────────────────────────────────────────────────────────────────────
// Ventas
// ─────────────────────────────────────────────────────────────────────────────

func TestSale_DescuentaStockYRechazaSiNoAlcanza(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "VTA-001")
	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 8)
	require.NoError(t, err)

	sale, err := e.sales.Create(ctx, e.principal, dto.CreateSaleRequest{
		ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, e.level(t, p.ID, e.warehouse.ID))
	assert.True(t, decimal.NewFromInt(7500).Equal(sale.Total))

	_, err = e.sales.Create(ctx, e.principal, dto.CreateSaleRequest{
		ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(2500),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, e.level(t, p.ID, e.warehouse.ID))

	list, err := e.sales.List(ctx, e.principal, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1, "la venta rechazada no debe persistir")
}

func TestSale_ActualizarYEliminarAjustanLaDiferencia(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "VTA-002")
	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 10)
	require.NoError(t, err)

	sale, err := e.sales.Create(ctx, e.principal, dto.CreateSaleRequest{
		ProductID: p.ID, WarehouseID: e.warehouse.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, e.level(t, p.ID, e.warehouse.ID))

	_, err = e.sales.Update(ctx, e.principal, sale.ID, dto.UpdateSaleRequest{Quantity: ptrInt(7)})
	require.NoError(t, err)
	assert.Equal(t, 3, e.level(t, p.ID, e.warehouse.ID))

	_, err = e.sales.Update(ctx, e.principal, sale.ID, dto.UpdateSaleRequest{Quantity: ptrInt(20)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, e.level(t, p.ID, e.warehouse.ID))

	_, err = e.sales.Update(ctx, e.principal, sale.ID, dto.UpdateSaleRequest{Quantity: ptrInt(2)})
	require.NoError(t, err)
	assert.Equal(t, 8, e.level(t, p.ID, e.warehouse.ID))

	require.NoError(t, e.sales.Delete(ctx, e.principal, sale.ID))
	assert.Equal(t, 10, e.level(t, p.ID, e.warehouse.ID))

	err = e.sales.Delete(ctx, e.principal, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Conteo físico y reversos
// ─────────────────────────────────────────────────────────────────────────────

func TestCount_RegistraSoloLaDiferencia(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "CNT-001")
	res, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 12)
	require.NoError(t, err)

	out, err := e.stock.Count(ctx, e.principal, res.Level.ID, dto.StockCountRequest{Quantity: ptrInt(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, out.Quantity)

	ledger := e.ledger(t, p.ID)
	require.Len(t, ledger, 2)
	assert.Equal(t, entity.TransactionTypeADJUSTMENT, ledger[0].Type)
	assert.Equal(t, entity.DirectionDecrease, ledger[0].Direction)
	assert.Equal(t, 3, ledger[0].Quantity)

	_, err = e.stock.Count(ctx, e.principal, res.Level.ID, dto.StockCountRequest{Quantity: ptrInt(9)})
	require.NoError(t, err)
	assert.Len(t, e.ledger(t, p.ID), 2, "sin diferencia no se escribe entrada")

	_, err = e.stock.Count(ctx, e.principal, res.Level.ID, dto.StockCountRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReverse_CompensaLaEntradaOriginal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "REV-001")
	res, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 7)
	require.NoError(t, err)

	rev, err := e.txs.Reverse(ctx, e.principal, res.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, rev.StockLevel.Quantity)
	assert.Equal(t, entity.DirectionDecrease, rev.Transaction.Direction)
	assert.Equal(t, "Reversal of "+res.Transaction.ID, rev.Transaction.Reference)

	_, err = e.txs.Reverse(ctx, e.principal, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionList_FiltrosYOrden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.addProduct(t, "LST-001")
	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 5)
	require.NoError(t, err)
	_, err = e.adjust(t, p.ID, entity.TransactionTypeOUT, "", 2)
	require.NoError(t, err)

	all, err := e.txs.List(ctx, e.principal, dto.TransactionFilterRequest{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, entity.TransactionTypeOUT, all.Items[0].Type)
	assert.Equal(t, -2, all.Items[0].SignedQuantity)

	ins, err := e.txs.List(ctx, e.principal, dto.TransactionFilterRequest{Type: entity.TransactionTypeIN})
	require.NoError(t, err)
	assert.Len(t, ins.Items, 1)

	_, err = e.txs.List(ctx, e.principal, dto.TransactionFilterRequest{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ─────────────────────────────────────────────────────────────────────────────
// Reportes
// ─────────────────────────────────────────────────────────────────────────────

func TestLowStock_DevuelveNivelesBajoUmbralYProductosSinNivel(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addProduct(t, "LOW-005")
	b := e.addProduct(t, "LOW-015")
	c := e.addProduct(t, "LOW-010")
	sinNivel := e.addProduct(t, "LOW-NONE")
	for prod, qty := range map[string]int{a.ID: 5, b.ID: 15, c.ID: 10} {
		_, err := e.adjust(t, prod, entity.TransactionTypeIN, "", qty)
		require.NoError(t, err)
	}

	report, err := e.reports.LowStock(ctx, e.principal, ptrInt(10))
	require.NoError(t, err)
	assert.Equal(t, 10, report.Threshold)

	byProduct := map[string]dto.LowStockItemResponse{}
	for _, it := range report.Items {
		byProduct[it.ProductID] = it
	}
	require.Len(t, byProduct, 3)
	assert.Equal(t, 5, byProduct[a.ID].Quantity)
	assert.Equal(t, 10, byProduct[c.ID].Quantity)
	assert.NotContains(t, byProduct, b.ID)
	assert.Nil(t, byProduct[sinNivel.ID].WarehouseID)
	assert.Equal(t, 0, byProduct[sinNivel.ID].Quantity)

	// Sin threshold usa el de la empresa (10).
	def, err := e.reports.LowStock(ctx, e.principal, nil)
	require.NoError(t, err)
	assert.Len(t, def.Items, 3)

	_, err = e.reports.LowStock(ctx, e.principal, ptrInt(-1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPurchaseSummary_AgrupaPorProducto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addProduct(t, "SUM-A")
	b := e.addProduct(t, "SUM-B")
	for _, in := range []dto.CreatePurchaseRequest{
		{ProductID: a.ID, WarehouseID: e.warehouse.ID, Quantity: 2, UnitCost: decimal.NewFromInt(100)},
		{ProductID: a.ID, WarehouseID: e.warehouse.ID, Quantity: 3, UnitCost: decimal.NewFromInt(110)},
		{ProductID: b.ID, WarehouseID: e.warehouse.ID, Quantity: 1, UnitCost: decimal.NewFromInt(50)},
	} {
		_, err := e.purchases.Create(ctx, e.principal, in)
		require.NoError(t, err)
	}

	sum, err := e.reports.PurchaseSummary(ctx, e.principal)
	require.NoError(t, err)
	require.Len(t, sum.Items, 2)
	assert.Equal(t, a.ID, sum.Items[0].ProductID)
	assert.Equal(t, 5, sum.Items[0].TotalQuantity)
	assert.True(t, decimal.NewFromInt(530).Equal(sum.Items[0].TotalCost))
	assert.True(t, decimal.NewFromInt(580).Equal(sum.TotalCost))

	_, err = e.reports.LowStockPDF(ctx, e.principal, nil)
	assert.ErrorIs(t, err, domain.ErrInternal)
	_, err = e.reports.PurchaseSummaryXLSX(ctx, e.principal)
	assert.ErrorIs(t, err, inventory.ErrXLSXUnavailable)
}
