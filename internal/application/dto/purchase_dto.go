package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest entrada para registrar una compra.
type CreatePurchaseRequest struct {
	SupplierID  *string         `json:"supplier_id" validate:"omitempty,uuid"`
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	Quantity    int             `json:"quantity" validate:"gte=1,lte=2147483647"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// UpdatePurchaseRequest cambios de una compra. Cambiar la cantidad mueve solo la diferencia.
type UpdatePurchaseRequest struct {
	Quantity *int             `json:"quantity" validate:"omitempty,gte=1,lte=2147483647"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SupplierID  *string         `json:"supplier_id,omitempty"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
