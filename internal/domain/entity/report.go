package entity

import "github.com/shopspring/decimal"

// LowStockItem fila del reporte de stock bajo.
// WarehouseID/WarehouseName vacíos indican un producto sin ningún StockLevel.
type LowStockItem struct {
	ProductID     string  `db:"product_id"`
	SKU           string  `db:"sku"`
	ProductName   string  `db:"product_name"`
	WarehouseID   *string `db:"warehouse_id"`
	WarehouseName *string `db:"warehouse_name"`
	Quantity      int     `db:"quantity"`
}

// PurchaseSummaryRow totales de compras por producto.
type PurchaseSummaryRow struct {
	ProductID     string          `db:"product_id"`
	SKU           string          `db:"sku"`
	ProductName   string          `db:"product_name"`
	TotalQuantity int             `db:"total_quantity"`
	TotalCost     decimal.Decimal `db:"total_cost"`
}

// SalesSummaryRow totales de ventas por producto.
type SalesSummaryRow struct {
	ProductID     string          `db:"product_id"`
	SKU           string          `db:"sku"`
	ProductName   string          `db:"product_name"`
	TotalQuantity int             `db:"total_quantity"`
	TotalRevenue  decimal.Decimal `db:"total_revenue"`
}

// ReconciliationRow diferencia entre el StockLevel y la suma firmada del libro.
type ReconciliationRow struct {
	ProductID     string `db:"product_id"`
	WarehouseID   string `db:"warehouse_id"`
	LevelQuantity int    `db:"level_quantity"`
	LedgerSum     int    `db:"ledger_sum"`
}
