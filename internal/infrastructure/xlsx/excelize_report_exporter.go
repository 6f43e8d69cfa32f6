// Package xlsx exporta los reportes de inventario a Excel con excelize.
//
// Cada libro tiene una sola hoja: fila 1 con empresa y título, fila 2 con la
// fecha de generación, fila 4 con los encabezados y los datos desde la fila 5.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
)

const (
	headerRow = 4
	firstRow  = headerRow + 1
)

var _ ports.ReportSpreadsheet = (*ExcelizeReportExporter)(nil)

// ExcelizeReportExporter implementa ports.ReportSpreadsheet.
type ExcelizeReportExporter struct{}

// NewExcelizeReportExporter construye el exportador.
func NewExcelizeReportExporter() *ExcelizeReportExporter { return &ExcelizeReportExporter{} }

// LowStockXLSX hoja "Stock bajo".
func (e *ExcelizeReportExporter) LowStockXLSX(_ context.Context, companyName string, report *dto.LowStockReportResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("xlsx: reporte nil")
	}
	b := newBook("Stock bajo", companyName, fmt.Sprintf("Stock bajo (umbral %d)", report.Threshold), report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	b.headers("SKU", "Producto", "Bodega", "Cantidad")
	for _, it := range report.Items {
		warehouse := "Sin niveles"
		if it.WarehouseName != nil {
			warehouse = *it.WarehouseName
		}
		b.row(it.SKU, it.ProductName, warehouse, it.Quantity)
	}
	return b.bytes()
}

// PurchaseSummaryXLSX hoja "Compras" con fila de total.
func (e *ExcelizeReportExporter) PurchaseSummaryXLSX(_ context.Context, companyName string, report *dto.PurchaseSummaryResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("xlsx: reporte nil")
	}
	b := newBook("Compras", companyName, "Resumen de compras", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	b.headers("SKU", "Producto", "Cantidad", "Costo total")
	for _, it := range report.Items {
		b.row(it.SKU, it.ProductName, it.TotalQuantity, money(it.TotalCost))
	}
	b.total("Total", money(report.TotalCost))
	return b.bytes()
}

// SalesSummaryXLSX hoja "Ventas" con fila de total.
func (e *ExcelizeReportExporter) SalesSummaryXLSX(_ context.Context, companyName string, report *dto.SalesSummaryResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("xlsx: reporte nil")
	}
	b := newBook("Ventas", companyName, "Resumen de ventas", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	b.headers("SKU", "Producto", "Cantidad", "Ingreso total")
	for _, it := range report.Items {
		b.row(it.SKU, it.ProductName, it.TotalQuantity, money(it.TotalRevenue))
	}
	b.total("Total", money(report.TotalRevenue))
	return b.bytes()
}

// ReconciliationXLSX hoja "Conciliación"; sin diferencias deja solo los encabezados.
func (e *ExcelizeReportExporter) ReconciliationXLSX(_ context.Context, companyName string, report *dto.ReconciliationResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("xlsx: reporte nil")
	}
	b := newBook("Conciliación", companyName, "Conciliación niveles vs libro", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	b.headers("Producto", "Bodega", "Nivel", "Libro", "Diferencia")
	for _, it := range report.Items {
		b.row(it.ProductID, it.WarehouseID, it.LevelQuantity, it.LedgerSum, it.LevelQuantity-it.LedgerSum)
	}
	return b.bytes()
}

// ── Libro ─────────────────────────────────────────────────────────────────────

type book struct {
	f      *excelize.File
	sheet  string
	next   int
	cols   int
	header int
	err    error
}

func newBook(sheet, companyName, title, generated string) *book {
	f := excelize.NewFile()
	b := &book{f: f, sheet: sheet, next: firstRow}
	b.err = f.SetSheetName("Sheet1", sheet)
	b.set(1, 1, companyName)
	b.set(2, 1, title)
	b.set(1, 2, "Generado: "+generated)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil && b.err == nil {
		b.err = err
	}
	if b.err == nil {
		b.err = f.SetCellStyle(sheet, "A1", "B1", bold)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil && b.err == nil {
		b.err = err
	}
	b.header = header
	return b
}

func (b *book) headers(labels ...string) {
	b.cols = len(labels)
	for i, l := range labels {
		b.set(i+1, headerRow, l)
	}
	if b.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(labels), headerRow)
	b.err = b.f.SetCellStyle(b.sheet, first, last, b.header)
	if b.err == nil {
		b.err = b.f.SetColWidth(b.sheet, "A", "E", 18)
	}
}

func (b *book) row(values ...any) {
	for i, v := range values {
		b.set(i+1, b.next, v)
	}
	b.next++
}

// total escribe la etiqueta y el valor en las dos últimas columnas.
func (b *book) total(label string, value any) {
	b.set(b.cols-1, b.next, label)
	b.set(b.cols, b.next, value)
	b.next++
}

func (b *book) set(col, row int, v any) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetCellValue(b.sheet, cell, v)
}

func (b *book) bytes() ([]byte, error) {
	defer b.f.Close()
	if b.err != nil {
		return nil, fmt.Errorf("xlsx: %w", b.err)
	}
	var buf bytes.Buffer
	if err := b.f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// money valor monetario como float para que Excel lo trate como número.
func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
