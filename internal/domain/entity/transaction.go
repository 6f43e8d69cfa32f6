package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	TransactionTypeIN         = "IN"
	TransactionTypeOUT        = "OUT"
	TransactionTypeADJUSTMENT = "ADJUSTMENT"
)

// Dirección del movimiento: define el signo de Quantity.
const (
	DirectionIncrease = "INCREASE"
	DirectionDecrease = "DECREASE"
)

// Transaction entrada inmutable del libro de inventario. Quantity siempre > 0; el signo lo da Direction.
type Transaction struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	Type        string
	Direction   string
	Quantity    int
	Reference   string
	CreatedBy   string
	CreatedAt   time.Time
}

// SignedQuantity +Quantity si incrementa el stock, -Quantity si lo reduce.
func (t *Transaction) SignedQuantity() int {
	if t.Direction == DirectionDecrease {
		return -t.Quantity
	}
	return t.Quantity
}
