package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	Quantity    int             `json:"quantity" validate:"gte=1,lte=2147483647"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateSaleRequest cambios de una venta.
type UpdateSaleRequest struct {
	Quantity  *int             `json:"quantity" validate:"omitempty,gte=1,lte=2147483647"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	CreatedBy   string          `json:"created_by,omitempty"`
	SoldAt      time.Time       `json:"sold_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
