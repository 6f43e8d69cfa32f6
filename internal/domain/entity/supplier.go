package entity

import "time"

// Supplier proveedor al que se le registran compras.
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
