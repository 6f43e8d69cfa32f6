package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, company_id, parent_id, name, created_at, updated_at`

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.CompanyID, c.ParentID, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE company_id = $1 AND id = $2`, companyID, id).
		Scan(&c.ID, &c.CompanyID, &c.ParentID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ListByCompany(ctx context.Context, companyID string, page repository.Page) ([]*entity.Category, error) {
	b := psql.Select(categoryColumns).From("categories").Where("company_id = ?", companyID).OrderBy("name")
	sql, args, err := applyPage(b, page.Limit, page.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}
	var list []*entity.Category
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return execAffected(ctx, r.q, "update category",
		`UPDATE categories SET parent_id = $3, name = $4, updated_at = $5 WHERE company_id = $1 AND id = $2`,
		c.CompanyID, c.ID, c.ParentID, c.Name, c.UpdatedAt,
	)
}

func (r *CategoryRepo) Delete(ctx context.Context, companyID, id string) error {
	return execAffected(ctx, r.q, "delete category",
		`DELETE FROM categories WHERE company_id = $1 AND id = $2`, companyID, id)
}
