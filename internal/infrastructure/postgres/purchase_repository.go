package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, company_id, supplier_id, product_id, warehouse_id, quantity, unit_cost,
	COALESCE(created_by::text, '') AS created_by, created_at, updated_at`

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, company_id, supplier_id, product_id, warehouse_id, quantity, unit_cost, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.CompanyID, p.SupplierID, p.ProductID, p.WarehouseID, p.Quantity, p.UnitCost,
		nullable(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate bloquea la compra hasta el fin de la transacción.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *PurchaseRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := pgxscan.Get(ctx, r.q, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepo) ListByCompany(ctx context.Context, companyID string, page repository.Page) ([]*entity.Purchase, error) {
	b := psql.Select(purchaseColumns).From("purchases").Where("company_id = ?", companyID).OrderBy("created_at DESC")
	sql, args, err := applyPage(b, page.Limit, page.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list purchases: %w", err)
	}
	var list []*entity.Purchase
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return list, nil
}

func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	return execAffected(ctx, r.q, "update purchase",
		`UPDATE purchases SET quantity = $3, unit_cost = $4, updated_at = $5 WHERE company_id = $1 AND id = $2`,
		p.CompanyID, p.ID, p.Quantity, p.UnitCost, p.UpdatedAt,
	)
}

func (r *PurchaseRepo) Delete(ctx context.Context, companyID, id string) error {
	return execAffected(ctx, r.q, "delete purchase",
		`DELETE FROM purchases WHERE company_id = $1 AND id = $2`, companyID, id)
}
