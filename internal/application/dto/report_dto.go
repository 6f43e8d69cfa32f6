package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemResponse fila del reporte de stock bajo. Sin bodega: el producto no tiene niveles.
type LowStockItemResponse struct {
	ProductID     string  `json:"product_id"`
	SKU           string  `json:"sku"`
	ProductName   string  `json:"product_name"`
	WarehouseID   *string `json:"warehouse_id"`
	WarehouseName *string `json:"warehouse_name"`
	Quantity      int     `json:"quantity"`
}

// LowStockReportResponse reporte de stock bajo.
type LowStockReportResponse struct {
	Threshold   int                    `json:"threshold"`
	GeneratedAt time.Time              `json:"generated_at"`
	Items       []LowStockItemResponse `json:"items"`
}

// PurchaseSummaryItem totales de compras de un producto.
type PurchaseSummaryItem struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// PurchaseSummaryResponse reporte de compras agrupado por producto.
type PurchaseSummaryResponse struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Items       []PurchaseSummaryItem `json:"items"`
	TotalCost   decimal.Decimal       `json:"total_cost"`
}

// SalesSummaryItem totales de ventas de un producto.
type SalesSummaryItem struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// SalesSummaryResponse reporte de ventas agrupado por producto.
type SalesSummaryResponse struct {
	GeneratedAt  time.Time          `json:"generated_at"`
	Items        []SalesSummaryItem `json:"items"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
}

// ReconciliationItem tripleta cuyo nivel no coincide con el libro.
type ReconciliationItem struct {
	ProductID     string `json:"product_id"`
	WarehouseID   string `json:"warehouse_id"`
	LevelQuantity int    `json:"level_quantity"`
	LedgerSum     int    `json:"ledger_sum"`
}

// ReconciliationResponse resultado de la conciliación; Consistent=true si no hay diferencias.
type ReconciliationResponse struct {
	Consistent  bool                 `json:"consistent"`
	GeneratedAt time.Time            `json:"generated_at"`
	Items       []ReconciliationItem `json:"items"`
}
