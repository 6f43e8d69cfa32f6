package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, company_id, product_id, warehouse_id, type, direction, quantity, reference,
	COALESCE(created_by::text, '') AS created_by, created_at`

// Create agrega una entrada al libro.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, company_id, product_id, warehouse_id, type, direction, quantity, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.CompanyID, t.ProductID, t.WarehouseID, t.Type, t.Direction, t.Quantity, t.Reference,
		nullable(t.CreatedBy), t.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert transaction", err)
	}
	return nil
}

// GetByID obtiene una entrada del libro de la empresa.
func (r *TransactionRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Transaction, error) {
	var t entity.Transaction
	err := pgxscan.Get(ctx, r.q, &t,
		`SELECT `+transactionColumns+` FROM transactions WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// List devuelve entradas más recientes primero, con filtros opcionales.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	sql, args, err := transactionListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list transactions: %w", err)
	}
	var list []*entity.Transaction
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}

func transactionListQuery(f repository.TransactionFilter) squirrel.SelectBuilder {
	b := psql.Select(transactionColumns).From("transactions").Where(squirrel.Eq{"company_id": f.CompanyID})
	if f.ProductID != "" {
		b = b.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.WarehouseID != "" {
		b = b.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
	}
	if f.Type != "" {
		b = b.Where(squirrel.Eq{"type": f.Type})
	}
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.LtOrEq{"created_at": *f.To})
	}
	return applyPage(b.OrderBy("created_at DESC", "id DESC"), f.Limit, f.Offset)
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
