package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes (solo lectura) sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// LowStock niveles con cantidad <= threshold y productos sin nivel registrado (warehouse NULL, cantidad 0).
func (r *ReportRepo) LowStock(ctx context.Context, companyID string, threshold int) ([]entity.LowStockItem, error) {
	const query = `
		SELECT p.id::text AS product_id, p.sku, p.name AS product_name,
		       sl.warehouse_id::text AS warehouse_id, w.name AS warehouse_name, sl.quantity
		FROM stock_levels sl
		JOIN products p ON p.id = sl.product_id
		JOIN warehouses w ON w.id = sl.warehouse_id
		WHERE sl.company_id = $1 AND sl.quantity <= $2
		UNION ALL
		SELECT p.id::text, p.sku, p.name, NULL::text, NULL::text, 0
		FROM products p
		WHERE p.company_id = $1 AND $2 >= 0
		  AND NOT EXISTS (SELECT 1 FROM stock_levels sl WHERE sl.company_id = p.company_id AND sl.product_id = p.id)
		ORDER BY quantity ASC, product_name ASC`
	var items []entity.LowStockItem
	if err := pgxscan.Select(ctx, r.q, &items, query, companyID, threshold); err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}
	return items, nil
}

// PurchaseSummary agrupa compras por producto: cantidad total y costo total (unit_cost × quantity).
func (r *ReportRepo) PurchaseSummary(ctx context.Context, companyID string) ([]entity.PurchaseSummaryRow, error) {
	const query = `
		SELECT p.id::text AS product_id, p.sku, p.name AS product_name,
		       SUM(pu.quantity)::int AS total_quantity,
		       SUM(pu.unit_cost * pu.quantity) AS total_cost
		FROM purchases pu
		JOIN products p ON p.id = pu.product_id
		WHERE pu.company_id = $1
		GROUP BY p.id, p.sku, p.name
		ORDER BY total_cost DESC, product_name ASC`
	var rows []entity.PurchaseSummaryRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("purchase summary: %w", err)
	}
	return rows, nil
}

// SalesSummary agrupa ventas por producto: cantidad total e ingreso total.
func (r *ReportRepo) SalesSummary(ctx context.Context, companyID string) ([]entity.SalesSummaryRow, error) {
	const query = `
		SELECT p.id::text AS product_id, p.sku, p.name AS product_name,
		       SUM(s.quantity)::int AS total_quantity,
		       SUM(s.unit_price * s.quantity) AS total_revenue
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.company_id = $1
		GROUP BY p.id, p.sku, p.name
		ORDER BY total_revenue DESC, product_name ASC`
	var rows []entity.SalesSummaryRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return rows, nil
}

// Reconciliation compara cada nivel con la suma firmada de su libro y devuelve solo las diferencias.
func (r *ReportRepo) Reconciliation(ctx context.Context, companyID string) ([]entity.ReconciliationRow, error) {
	const query = `
		WITH ledger AS (
			SELECT product_id, warehouse_id,
			       SUM(CASE WHEN direction = 'INCREASE' THEN quantity ELSE -quantity END)::int AS ledger_sum
			FROM transactions
			WHERE company_id = $1
			GROUP BY product_id, warehouse_id
		)
		SELECT COALESCE(sl.product_id, l.product_id)::text AS product_id,
		       COALESCE(sl.warehouse_id, l.warehouse_id)::text AS warehouse_id,
		       COALESCE(sl.quantity, 0) AS level_quantity,
		       COALESCE(l.ledger_sum, 0) AS ledger_sum
		FROM (SELECT * FROM stock_levels WHERE company_id = $1) sl
		FULL OUTER JOIN ledger l ON l.product_id = sl.product_id AND l.warehouse_id = sl.warehouse_id
		WHERE COALESCE(sl.quantity, 0) <> COALESCE(l.ledger_sum, 0)
		ORDER BY product_id, warehouse_id`
	var rows []entity.ReconciliationRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("reconciliation: %w", err)
	}
	return rows, nil
}
