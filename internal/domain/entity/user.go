package entity

import "time"

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Roles        []string // admin, store_manager, warehouse_staff, sales_rep
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
