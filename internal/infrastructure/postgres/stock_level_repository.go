package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de niveles de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `id, company_id, product_id, warehouse_id, quantity, created_at, updated_at`

// Ensure inserta el nivel en 0 si no existe. Dos transacciones concurrentes no pueden duplicarlo (UNIQUE).
func (r *StockLevelRepo) Ensure(ctx context.Context, l *entity.StockLevel) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (`+stockLevelColumns+`)
		VALUES ($1, $2, $3, $4, 0, $5, $5)
		ON CONFLICT (company_id, product_id, warehouse_id) DO NOTHING`,
		l.ID, l.CompanyID, l.ProductID, l.WarehouseID, l.CreatedAt,
	)
	if err != nil {
		return mapWriteError("ensure stock level", err)
	}
	return nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE) hasta Commit/Rollback.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.getOne(ctx, `
		SELECT `+stockLevelColumns+` FROM stock_levels
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3
		FOR UPDATE`, companyID, productID, warehouseID)
}

// Get obtiene el nivel sin bloquear.
func (r *StockLevelRepo) Get(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.getOne(ctx, `
		SELECT `+stockLevelColumns+` FROM stock_levels
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3`, companyID, productID, warehouseID)
}

// GetByID obtiene un nivel por su ID dentro de la empresa.
func (r *StockLevelRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockLevel, error) {
	return r.getOne(ctx, `SELECT `+stockLevelColumns+` FROM stock_levels WHERE company_id = $1 AND id = $2`, companyID, id)
}

func (r *StockLevelRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockLevel, error) {
	var l entity.StockLevel
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.CompanyID, &l.ProductID, &l.WarehouseID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// UpdateQuantity escribe la cantidad resultante. Debe llamarse tras GetForUpdate en la misma tx.
func (r *StockLevelRepo) UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error {
	return execAffected(ctx, r.q, "update stock level",
		`UPDATE stock_levels SET quantity = $2, updated_at = $3 WHERE id = $1`, id, quantity, at)
}

// List lista niveles con filtros opcionales por producto y bodega.
func (r *StockLevelRepo) List(ctx context.Context, f repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	b := psql.Select(stockLevelColumns).From("stock_levels").Where(squirrel.Eq{"company_id": f.CompanyID})
	if f.ProductID != "" {
		b = b.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.WarehouseID != "" {
		b = b.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
	}
	sql, args, err := applyPage(b.OrderBy("updated_at DESC", "id"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list stock levels: %w", err)
	}
	var list []*entity.StockLevel
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	return list, nil
}
