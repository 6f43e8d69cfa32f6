package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// ReportRepository consultas de agregación de solo lectura. Se recalculan en cada llamada.
type ReportRepository interface {
	// LowStock niveles con cantidad <= threshold más productos sin ningún nivel (bodega nula).
	LowStock(ctx context.Context, companyID string, threshold int) ([]entity.LowStockItem, error)
	PurchaseSummary(ctx context.Context, companyID string) ([]entity.PurchaseSummaryRow, error)
	SalesSummary(ctx context.Context, companyID string) ([]entity.SalesSummaryRow, error)
	// Reconciliation tripletas cuyo nivel difiere de la suma firmada del libro.
	Reconciliation(ctx context.Context, companyID string) ([]entity.ReconciliationRow, error)
}
