package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	CompanyID  string
	CategoryID string
	SupplierID string
	Search     string // coincide con nombre, SKU o código de barras
	Page
}

// ProductRepository define el puerto de persistencia para Product.
// Las lecturas devuelven Quantity calculada como suma de los StockLevel del producto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	BarcodeExists(ctx context.Context, companyID, barcode string) (bool, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, companyID, id string) error
}
