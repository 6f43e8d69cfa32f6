package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra a proveedor. Crearla ingresa stock en la bodega indicada.
type Purchase struct {
	ID          string
	CompanyID   string
	SupplierID  *string
	ProductID   string
	WarehouseID string
	Quantity    int
	UnitCost    decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalCost unitCost × quantity.
func (p *Purchase) TotalCost() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Reference referencia que se escribe en el libro de movimientos.
func (p *Purchase) Reference() string { return "Purchase#" + p.ID }
