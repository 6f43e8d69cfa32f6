package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// La cantidad del producto se deriva de stock_levels al leer; no hay columna espejo.
var productColumns = []string{
	"p.id", "p.company_id", "p.sku", "p.barcode", "p.name", "p.description", "p.unit_price", "p.unit",
	"p.category_id", "p.supplier_id",
	"COALESCE((SELECT SUM(sl.quantity) FROM stock_levels sl WHERE sl.product_id = p.id AND sl.company_id = p.company_id), 0)::int AS quantity",
	"p.created_at", "p.updated_at",
}

func (r *ProductRepo) selectProducts() squirrel.SelectBuilder {
	return psql.Select(productColumns...).From("products p")
}

// Create persiste un nuevo producto. SKU o código de barras repetido -> ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, company_id, sku, barcode, name, description, unit_price, unit, category_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CompanyID, p.SKU, p.Barcode, p.Name, p.Description, p.UnitPrice, p.Unit,
		p.CategoryID, p.SupplierID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa con su cantidad total.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.getOne(ctx, r.selectProducts().Where(squirrel.Eq{"p.company_id": companyID, "p.id": id}))
}

// GetBySKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, r.selectProducts().Where(squirrel.Eq{"p.company_id": companyID, "p.sku": sku}))
}

func (r *ProductRepo) getOne(ctx context.Context, b squirrel.SelectBuilder) (*entity.Product, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}
	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// BarcodeExists indica si el código de barras ya está usado en la empresa.
func (r *ProductRepo) BarcodeExists(ctx context.Context, companyID, barcode string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE company_id = $1 AND barcode = $2)`, companyID, barcode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("barcode exists: %w", err)
	}
	return exists, nil
}

// List lista productos de la empresa con filtros opcionales.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	b := r.selectProducts().Where(squirrel.Eq{"p.company_id": f.CompanyID})
	if f.CategoryID != "" {
		b = b.Where(squirrel.Eq{"p.category_id": f.CategoryID})
	}
	if f.SupplierID != "" {
		b = b.Where(squirrel.Eq{"p.supplier_id": f.SupplierID})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.sku": pattern},
			squirrel.Eq{"p.barcode": f.Search},
		})
	}
	sql, args, err := applyPage(b.OrderBy("p.created_at DESC"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var list []*entity.Product
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Update actualiza los datos de catálogo. La cantidad no se toca (solo vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return execAffected(ctx, r.q, "update product", `
		UPDATE products SET sku = $3, barcode = $4, name = $5, description = $6, unit_price = $7, unit = $8,
			category_id = $9, supplier_id = $10, updated_at = $11
		WHERE company_id = $1 AND id = $2`,
		p.CompanyID, p.ID, p.SKU, p.Barcode, p.Name, p.Description, p.UnitPrice, p.Unit,
		p.CategoryID, p.SupplierID, p.UpdatedAt,
	)
}

// Delete elimina un producto. Si tiene stock o movimientos -> ErrConflict (FK).
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	return execAffected(ctx, r.q, "delete product",
		`DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
}
