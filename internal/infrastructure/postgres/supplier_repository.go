package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, company_id, name, contact_info, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.CompanyID, s.Name, s.ContactInfo, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE company_id = $1 AND id = $2`, companyID, id).
		Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactInfo, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, page repository.Page) ([]*entity.Supplier, error) {
	b := psql.Select(supplierColumns).From("suppliers").Where("company_id = ?", companyID).OrderBy("name")
	sql, args, err := applyPage(b, page.Limit, page.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suppliers: %w", err)
	}
	var list []*entity.Supplier
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return list, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return execAffected(ctx, r.q, "update supplier",
		`UPDATE suppliers SET name = $3, contact_info = $4, updated_at = $5 WHERE company_id = $1 AND id = $2`,
		s.CompanyID, s.ID, s.Name, s.ContactInfo, s.UpdatedAt,
	)
}

func (r *SupplierRepo) Delete(ctx context.Context, companyID, id string) error {
	return execAffected(ctx, r.q, "delete supplier",
		`DELETE FROM suppliers WHERE company_id = $1 AND id = $2`, companyID, id)
}
