package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity no se persiste: es la suma de sus StockLevel y se calcula al leer.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // único por empresa, en mayúsculas
	Barcode     string // 12 dígitos, único por empresa
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Unit        string
	CategoryID  *string
	SupplierID  *string
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
