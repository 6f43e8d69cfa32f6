package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

var (
	// ErrPDFUnavailable no hay generador de PDF configurado.
	ErrPDFUnavailable = errors.New("generación de PDF no disponible")
	// ErrXLSXUnavailable no hay exportador XLSX configurado.
	ErrXLSXUnavailable = errors.New("exportación XLSX no disponible")
)

// ReportUseCase reportes de solo lectura. Se recalculan en cada llamada, sin caché.
type ReportUseCase struct {
	reports   repository.ReportRepository
	companies repository.CompanyRepository
	renderer  ports.ReportRenderer
	sheets    ports.ReportSpreadsheet
	log       *logger.Logger
}

// NewReportUseCase construye el caso de uso. renderer puede ser nil (sin exportación PDF).
func NewReportUseCase(
	reports repository.ReportRepository,
	companies repository.CompanyRepository,
	renderer ports.ReportRenderer,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &ReportUseCase{reports: reports, companies: companies, renderer: renderer, log: log}
}

// LowStock niveles con cantidad <= threshold más los productos sin ningún nivel.
// threshold nil usa el umbral configurado en la empresa.
func (uc *ReportUseCase) LowStock(ctx context.Context, p domain.Principal, threshold *int) (*dto.LowStockReportResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var limit int
	if threshold != nil {
		if *threshold < 0 {
			return nil, domain.Invalid("threshold debe ser >= 0")
		}
		limit = *threshold
	} else {
		company, err := uc.company(ctx, p)
		if err != nil {
			return nil, err
		}
		limit = company.LowStockThreshold
	}

	rows, err := uc.reports.LowStock(ctx, p.CompanyID, limit)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "report.low_stock", err, "company_id", p.CompanyID)
	}
	items := make([]dto.LowStockItemResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LowStockItemResponse{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			ProductName:   r.ProductName,
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Quantity,
		})
	}
	return &dto.LowStockReportResponse{Threshold: limit, GeneratedAt: time.Now().UTC(), Items: items}, nil
}

// PurchaseSummary compras agrupadas por producto: cantidad total y costo total.
func (uc *ReportUseCase) PurchaseSummary(ctx context.Context, p domain.Principal) (*dto.PurchaseSummaryResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rows, err := uc.reports.PurchaseSummary(ctx, p.CompanyID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "report.purchases", err, "company_id", p.CompanyID)
	}
	out := &dto.PurchaseSummaryResponse{
		GeneratedAt: time.Now().UTC(),
		Items:       make([]dto.PurchaseSummaryItem, 0, len(rows)),
		TotalCost:   decimal.Zero,
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.PurchaseSummaryItem{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			ProductName:   r.ProductName,
			TotalQuantity: r.TotalQuantity,
			TotalCost:     r.TotalCost,
		})
		out.TotalCost = out.TotalCost.Add(r.TotalCost)
	}
	return out, nil
}

// SalesSummary ventas agrupadas por producto: cantidad total e ingreso total.
func (uc *ReportUseCase) SalesSummary(ctx context.Context, p domain.Principal) (*dto.SalesSummaryResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rows, err := uc.reports.SalesSummary(ctx, p.CompanyID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "report.sales", err, "company_id", p.CompanyID)
	}
	out := &dto.SalesSummaryResponse{
		GeneratedAt:  time.Now().UTC(),
		Items:        make([]dto.SalesSummaryItem, 0, len(rows)),
		TotalRevenue: decimal.Zero,
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.SalesSummaryItem{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			ProductName:   r.ProductName,
			TotalQuantity: r.TotalQuantity,
			TotalRevenue:  r.TotalRevenue,
		})
		out.TotalRevenue = out.TotalRevenue.Add(r.TotalRevenue)
	}
	return out, nil
}

// Reconciliation compara cada nivel con la suma firmada del libro. Sin filas = consistente.
func (uc *ReportUseCase) Reconciliation(ctx context.Context, p domain.Principal) (*dto.ReconciliationResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rows, err := uc.reports.Reconciliation(ctx, p.CompanyID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "report.reconciliation", err, "company_id", p.CompanyID)
	}
	items := make([]dto.ReconciliationItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ReconciliationItem{
			ProductID:     r.ProductID,
			WarehouseID:   r.WarehouseID,
			LevelQuantity: r.LevelQuantity,
			LedgerSum:     r.LedgerSum,
		})
	}
	if len(items) > 0 {
		uc.log.Warn().Str("company_id", p.CompanyID).Int("mismatches", len(items)).Msg("stock y libro no coinciden")
	}
	return &dto.ReconciliationResponse{Consistent: len(items) == 0, GeneratedAt: time.Now().UTC(), Items: items}, nil
}

// LowStockPDF reporte de stock bajo en PDF.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context, p domain.Principal, threshold *int) ([]byte, error) {
	report, err := uc.LowStock(ctx, p, threshold)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, p, "report.low_stock.pdf", func(name string) ([]byte, error) {
		return uc.renderer.LowStockPDF(ctx, name, report)
	})
}

// PurchaseSummaryPDF reporte de compras en PDF.
func (uc *ReportUseCase) PurchaseSummaryPDF(ctx context.Context, p domain.Principal) ([]byte, error) {
	report, err := uc.PurchaseSummary(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, p, "report.purchases.pdf", func(name string) ([]byte, error) {
		return uc.renderer.PurchaseSummaryPDF(ctx, name, report)
	})
}

// SalesSummaryPDF reporte de ventas en PDF.
func (uc *ReportUseCase) SalesSummaryPDF(ctx context.Context, p domain.Principal) ([]byte, error) {
	report, err := uc.SalesSummary(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, p, "report.sales.pdf", func(name string) ([]byte, error) {
		return uc.renderer.SalesSummaryPDF(ctx, name, report)
	})
}

// WithSpreadsheet habilita la exportación XLSX.
func (uc *ReportUseCase) WithSpreadsheet(sheets ports.ReportSpreadsheet) *ReportUseCase {
	uc.sheets = sheets
	return uc
}

// LowStockXLSX reporte de stock bajo en Excel.
func (uc *ReportUseCase) LowStockXLSX(ctx context.Context, p domain.Principal, threshold *int) ([]byte, error) {
	if uc.sheets == nil {
		return nil, apperr.Wrap(uc.log, "report.low_stock.xlsx", ErrXLSXUnavailable)
	}
	report, err := uc.LowStock(ctx, p, threshold)
	if err != nil {
		return nil, err
	}
	return uc.export(ctx, p, "report.low_stock.xlsx", func(name string) ([]byte, error) {
		return uc.sheets.LowStockXLSX(ctx, name, report)
	})
}

// PurchaseSummaryXLSX reporte de compras en Excel.
func (uc *ReportUseCase) PurchaseSummaryXLSX(ctx context.Context, p domain.Principal) ([]byte, error) {
	if uc.sheets == nil {
		return nil, apperr.Wrap(uc.log, "report.purchases.xlsx", ErrXLSXUnavailable)
	}
	report, err := uc.PurchaseSummary(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.export(ctx, p, "report.purchases.xlsx", func(name string) ([]byte, error) {
		return uc.sheets.PurchaseSummaryXLSX(ctx, name, report)
	})
}

// SalesSummaryXLSX reporte de ventas en Excel.
func (uc *ReportUseCase) SalesSummaryXLSX(ctx context.Context, p domain.Principal) ([]byte, error) {
	if uc.sheets == nil {
		return nil, apperr.Wrap(uc.log, "report.sales.xlsx", ErrXLSXUnavailable)
	}
	report, err := uc.SalesSummary(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.export(ctx, p, "report.sales.xlsx", func(name string) ([]byte, error) {
		return uc.sheets.SalesSummaryXLSX(ctx, name, report)
	})
}

// ReconciliationXLSX conciliación en Excel.
func (uc *ReportUseCase) ReconciliationXLSX(ctx context.Context, p domain.Principal) ([]byte, error) {
	if uc.sheets == nil {
		return nil, apperr.Wrap(uc.log, "report.reconciliation.xlsx", ErrXLSXUnavailable)
	}
	report, err := uc.Reconciliation(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.export(ctx, p, "report.reconciliation.xlsx", func(name string) ([]byte, error) {
		return uc.sheets.ReconciliationXLSX(ctx, name, report)
	})
}

func (uc *ReportUseCase) render(ctx context.Context, p domain.Principal, op string, fn func(companyName string) ([]byte, error)) ([]byte, error) {
	if uc.renderer == nil {
		return nil, apperr.Wrap(uc.log, op, ErrPDFUnavailable)
	}
	return uc.export(ctx, p, op, fn)
}

func (uc *ReportUseCase) export(ctx context.Context, p domain.Principal, op string, fn func(companyName string) ([]byte, error)) ([]byte, error) {
	company, err := uc.company(ctx, p)
	if err != nil {
		return nil, err
	}
	b, err := fn(company.Name)
	if err != nil {
		return nil, apperr.Wrap(uc.log, op, err, "company_id", p.CompanyID)
	}
	return b, nil
}

func (uc *ReportUseCase) company(ctx context.Context, p domain.Principal) (*entity.Company, error) {
	company, err := uc.companies.GetByID(ctx, p.CompanyID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "report.company", err, "company_id", p.CompanyID)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, p.CompanyID)
	}
	return company, nil
}
