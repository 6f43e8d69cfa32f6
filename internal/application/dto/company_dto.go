package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=200"`
	Address           string `json:"address" validate:"max=300"`
	Email             string `json:"email" validate:"omitempty,email"`
	LowStockThreshold *int   `json:"low_stock_threshold" validate:"omitempty,gte=0,lte=2147483647"`
}

// UpdateCompanyRequest entrada para actualizar la empresa del usuario (campos opcionales).
type UpdateCompanyRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address           *string `json:"address" validate:"omitempty,max=300"`
	Email             *string `json:"email" validate:"omitempty,email"`
	LowStockThreshold *int    `json:"low_stock_threshold" validate:"omitempty,gte=0,lte=2147483647"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Email             string    `json:"email"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
