package entity

import "time"

// DefaultLowStockThreshold umbral de stock bajo cuando la empresa no define uno.
const DefaultLowStockThreshold = 10

// Company representa una organización/tenant del sistema. Todo dato de inventario pertenece a una Company.
type Company struct {
	ID                string
	Name              string // único
	Address           string
	Email             string // destinatario de alertas de stock bajo (opcional)
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
