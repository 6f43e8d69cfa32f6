package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
)

func open(t *testing.T, doc []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	require.NoError(t, err)
	return v
}

func TestLowStockXLSX_FilasYProductoSinNiveles(t *testing.T) {
	wh := "Principal"
	wid := "w1"
	doc, err := NewExcelizeReportExporter().LowStockXLSX(context.Background(), "Ferretería", &dto.LowStockReportResponse{
		Threshold:   10,
		GeneratedAt: time.Now(),
		Items: []dto.LowStockItemResponse{
			{ProductID: "p1", SKU: "A-1", ProductName: "Martillo", WarehouseID: &wid, WarehouseName: &wh, Quantity: 2},
			{ProductID: "p2", SKU: "B-1", ProductName: "Clavos"},
		},
	})
	require.NoError(t, err)

	f := open(t, doc)
	assert.Equal(t, []string{"Stock bajo"}, f.GetSheetList())
	assert.Equal(t, "Ferretería", cell(t, f, "Stock bajo", "A1"))
	assert.Equal(t, "Stock bajo (umbral 10)", cell(t, f, "Stock bajo", "B1"))
	assert.Equal(t, "SKU", cell(t, f, "Stock bajo", "A4"))
	assert.Equal(t, "A-1", cell(t, f, "Stock bajo", "A5"))
	assert.Equal(t, "2", cell(t, f, "Stock bajo", "D5"))
	assert.Equal(t, "Sin niveles", cell(t, f, "Stock bajo", "C6"))
}

func TestPurchaseSummaryXLSX_Total(t *testing.T) {
	doc, err := NewExcelizeReportExporter().PurchaseSummaryXLSX(context.Background(), "Ferretería", &dto.PurchaseSummaryResponse{
		GeneratedAt: time.Now(),
		Items:       []dto.PurchaseSummaryItem{{SKU: "A-1", ProductName: "Martillo", TotalQuantity: 3, TotalCost: decimal.RequireFromString("75.50")}},
		TotalCost:   decimal.RequireFromString("75.50"),
	})
	require.NoError(t, err)

	f := open(t, doc)
	assert.Equal(t, "3", cell(t, f, "Compras", "C5"))
	assert.Equal(t, "75.5", cell(t, f, "Compras", "D5"))
	assert.Equal(t, "Total", cell(t, f, "Compras", "C6"))
	assert.Equal(t, "75.5", cell(t, f, "Compras", "D6"))
}

func TestReconciliationXLSX_Diferencia(t *testing.T) {
	doc, err := NewExcelizeReportExporter().ReconciliationXLSX(context.Background(), "Ferretería", &dto.ReconciliationResponse{
		GeneratedAt: time.Now(),
		Items:       []dto.ReconciliationItem{{ProductID: "p1", WarehouseID: "w1", LevelQuantity: 7, LedgerSum: 5}},
	})
	require.NoError(t, err)

	f := open(t, doc)
	assert.Equal(t, "2", cell(t, f, "Conciliación", "E5"))
}

func TestXLSX_ReporteNil(t *testing.T) {
	_, err := NewExcelizeReportExporter().SalesSummaryXLSX(context.Background(), "x", nil)
	assert.Error(t, err)
}
