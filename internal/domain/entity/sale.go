package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta en punto de venta. Crearla descuenta stock de la bodega indicada.
type Sale struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedBy   string
	SoldAt      time.Time
	UpdatedAt   time.Time
}

// Total unitPrice × quantity.
func (s *Sale) Total() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Reference referencia que se escribe en el libro de movimientos.
func (s *Sale) Reference() string { return "Sale#" + s.ID }
