package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Sin barcode se genera uno de 12 dígitos.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode     string          `json:"barcode" validate:"omitempty,numeric,len=12"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit" validate:"max=30"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
	SupplierID  *string         `json:"supplier_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest entrada para actualizar un producto. La cantidad no se edita: se mueve con el libro.
type UpdateProductRequest struct {
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Unit        *string          `json:"unit" validate:"omitempty,max=30"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
}

// ProductFilterRequest filtros (query string) del listado de productos.
type ProductFilterRequest struct {
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	SupplierID string `query:"supplier_id" validate:"omitempty,uuid"`
	Search     string `query:"search" validate:"max=100"`
	PageRequest
}

// ProductResponse salida de un producto. Quantity es la suma de sus niveles de stock.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit"`
	CategoryID  *string         `json:"category_id,omitempty"`
	SupplierID  *string         `json:"supplier_id,omitempty"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
