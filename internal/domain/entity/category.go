package entity

import "time"

// Category categoría de productos, jerárquica opcional.
type Category struct {
	ID        string
	CompanyID string
	ParentID  *string // nil si es raíz
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
