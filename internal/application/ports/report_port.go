package ports

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
)

// ReportRenderer genera la versión PDF de los reportes de inventario.
type ReportRenderer interface {
	LowStockPDF(ctx context.Context, companyName string, report *dto.LowStockReportResponse) ([]byte, error)
	PurchaseSummaryPDF(ctx context.Context, companyName string, report *dto.PurchaseSummaryResponse) ([]byte, error)
	SalesSummaryPDF(ctx context.Context, companyName string, report *dto.SalesSummaryResponse) ([]byte, error)
}

// ReportSpreadsheet exporta los reportes de inventario como libro XLSX.
type ReportSpreadsheet interface {
	LowStockXLSX(ctx context.Context, companyName string, report *dto.LowStockReportResponse) ([]byte, error)
	PurchaseSummaryXLSX(ctx context.Context, companyName string, report *dto.PurchaseSummaryResponse) ([]byte, error)
	SalesSummaryXLSX(ctx context.Context, companyName string, report *dto.SalesSummaryResponse) ([]byte, error)
	ReconciliationXLSX(ctx context.Context, companyName string, report *dto.ReconciliationResponse) ([]byte, error)
}
