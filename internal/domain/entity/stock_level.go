package entity

import "time"

// StockLevel cantidad disponible de un producto en una bodega. Única por (empresa, producto, bodega).
// Es la fuente de verdad del stock y solo cambia junto con un Transaction en la misma transacción de BD.
type StockLevel struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
