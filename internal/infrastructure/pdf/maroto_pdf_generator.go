// Package pdf genera los reportes de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa            │  Título + fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas propias de cada reporte                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (compras / ventas)                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// column define una columna de tabla: título, ancho en la grilla de 12 y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// LowStockPDF reporte de productos en o por debajo del umbral.
func (g *MarotoReportRenderer) LowStockPDF(_ context.Context, companyName string, r *dto.LowStockReportResponse) ([]byte, error) {
	cols := []column{
		{"SKU", 2, align.Left},
		{"Producto", 5, align.Left},
		{"Bodega", 3, align.Left},
		{"Cantidad", 2, align.Right},
	}
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		warehouse := "Sin existencias"
		if it.WarehouseName != nil {
			warehouse = *it.WarehouseName
		}
		rows = append(rows, []string{it.SKU, it.ProductName, warehouse, strconv.Itoa(it.Quantity)})
	}
	subtitle := fmt.Sprintf("Umbral: %d unidades", r.Threshold)
	return g.render(companyName, "REPORTE DE STOCK BAJO", subtitle, r.GeneratedAt, cols, rows, nil)
}

// PurchaseSummaryPDF resumen de compras por producto.
func (g *MarotoReportRenderer) PurchaseSummaryPDF(_ context.Context, companyName string, r *dto.PurchaseSummaryResponse) ([]byte, error) {
	cols := []column{
		{"SKU", 2, align.Left},
		{"Producto", 5, align.Left},
		{"Unidades", 2, align.Right},
		{"Costo total", 3, align.Right},
	}
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		rows = append(rows, []string{it.SKU, it.ProductName, strconv.Itoa(it.TotalQuantity), "$" + formatMoney(it.TotalCost)})
	}
	total := totalsRow("TOTAL COMPRAS:", r.TotalCost)
	return g.render(companyName, "RESUMEN DE COMPRAS", "", r.GeneratedAt, cols, rows, total)
}

// SalesSummaryPDF resumen de ventas por producto.
func (g *MarotoReportRenderer) SalesSummaryPDF(_ context.Context, companyName string, r *dto.SalesSummaryResponse) ([]byte, error) {
	cols := []column{
		{"SKU", 2, align.Left},
		{"Producto", 5, align.Left},
		{"Unidades", 2, align.Right},
		{"Ingresos", 3, align.Right},
	}
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		rows = append(rows, []string{it.SKU, it.ProductName, strconv.Itoa(it.TotalQuantity), "$" + formatMoney(it.TotalRevenue)})
	}
	total := totalsRow("TOTAL VENTAS:", r.TotalRevenue)
	return g.render(companyName, "RESUMEN DE VENTAS", "", r.GeneratedAt, cols, rows, total)
}

func (g *MarotoReportRenderer) render(companyName, title, subtitle string, generatedAt time.Time, cols []column, rows [][]string, footer core.Row) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, title, subtitle, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(cols))
	if len(rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin registros.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	for _, values := range rows {
		m.AddRows(tableDetailRow(cols, values))
	}
	if footer != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(footer)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y título + fecha (der).
func headerRow(companyName, title, subtitle string, generatedAt time.Time) core.Row {
	right := []core.Component{
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 8, Color: colorGray,
		}),
	}
	if subtitle != "" {
		right = append(right, text.New(subtitle, props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: colorAlert,
		}))
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(right...),
	)
}

func tableHeaderRow(cols []column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...)
}

func tableDetailRow(cols []column, values []string) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(values[i], props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cells...)
}

func totalsRow(label string, total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a pesos e inserta puntos de miles.
// Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
