package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, company_id, name, address, created_at, updated_at`

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouses (`+warehouseColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.CompanyID, w.Name, w.Address, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega de la empresa (nil si no existe o es de otra empresa).
func (r *WarehouseRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE company_id = $1 AND id = $2`, companyID, id).
		Scan(&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// ListByCompany lista bodegas por empresa con paginación.
func (r *WarehouseRepo) ListByCompany(ctx context.Context, companyID string, page repository.Page) ([]*entity.Warehouse, error) {
	b := psql.Select(warehouseColumns).From("warehouses").Where("company_id = ?", companyID).OrderBy("name")
	sql, args, err := applyPage(b, page.Limit, page.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list warehouses: %w", err)
	}
	var list []*entity.Warehouse
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return list, nil
}

// Update actualiza nombre y dirección.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return execAffected(ctx, r.q, "update warehouse",
		`UPDATE warehouses SET name = $3, address = $4, updated_at = $5 WHERE company_id = $1 AND id = $2`,
		w.CompanyID, w.ID, w.Name, w.Address, w.UpdatedAt,
	)
}

// Delete elimina la bodega. Con stock o movimientos asociados -> ErrConflict (FK).
func (r *WarehouseRepo) Delete(ctx context.Context, companyID, id string) error {
	return execAffected(ctx, r.q, "delete warehouse",
		`DELETE FROM warehouses WHERE company_id = $1 AND id = $2`, companyID, id)
}
