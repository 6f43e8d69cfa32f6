package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, product_id, warehouse_id, quantity, unit_price,
	COALESCE(created_by::text, '') AS created_by, sold_at, updated_at`

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, company_id, product_id, warehouse_id, quantity, unit_price, created_by, sold_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.CompanyID, s.ProductID, s.WarehouseID, s.Quantity, s.UnitPrice,
		nullable(s.CreatedBy), s.SoldAt, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert sale", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE company_id = $1 AND id = $2`, companyID, id)
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Sale, error) {
	var s entity.Sale
	if err := pgxscan.Get(ctx, r.q, &s, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, page repository.Page) ([]*entity.Sale, error) {
	b := psql.Select(saleColumns).From("sales").Where("company_id = ?", companyID).OrderBy("sold_at DESC")
	sql, args, err := applyPage(b, page.Limit, page.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sales: %w", err)
	}
	var list []*entity.Sale
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	return execAffected(ctx, r.q, "update sale",
		`UPDATE sales SET quantity = $3, unit_price = $4, updated_at = $5 WHERE company_id = $1 AND id = $2`,
		s.CompanyID, s.ID, s.Quantity, s.UnitPrice, s.UpdatedAt,
	)
}

func (r *SaleRepo) Delete(ctx context.Context, companyID, id string) error {
	return execAffected(ctx, r.q, "delete sale",
		`DELETE FROM sales WHERE company_id = $1 AND id = $2`, companyID, id)
}
