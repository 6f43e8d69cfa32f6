package dto

import "time"

// StockAdjustRequest body para POST /api/v1/inventory/stock/adjust y POST /api/v1/inventory/transactions.
// Direction solo es obligatoria (y solo tiene efecto) en ADJUSTMENT.
type StockAdjustRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
	Type        string `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Direction   string `json:"direction" validate:"omitempty,oneof=INCREASE DECREASE"`
	Quantity    int    `json:"quantity" validate:"gte=1,lte=2147483647"`
	Reference   string `json:"reference" validate:"max=255"`
}

// StockCountRequest conteo físico: fija la cantidad del nivel registrando la diferencia en el libro.
type StockCountRequest struct {
	Quantity  *int   `json:"quantity" validate:"required,gte=0,lte=2147483647"`
	Reference string `json:"reference" validate:"max=255"`
}

// StockLevelFilterRequest filtros del listado de niveles.
type StockLevelFilterRequest struct {
	ProductID   string `query:"product_id" validate:"omitempty,uuid"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	PageRequest
}

// StockLevelResponse salida de un nivel de stock.
type StockLevelResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockLevelListResponse lista paginada de niveles.
type StockLevelListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// TransactionFilterRequest filtros del libro. From/To en RFC3339.
type TransactionFilterRequest struct {
	ProductID   string `query:"product_id" validate:"omitempty,uuid"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	Type        string `query:"type" validate:"omitempty,oneof=IN OUT ADJUSTMENT"`
	From        string `query:"from"`
	To          string `query:"to"`
	PageRequest
}

// TransactionResponse salida de una entrada del libro.
type TransactionResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	ProductID      string    `json:"product_id"`
	WarehouseID    string    `json:"warehouse_id"`
	Type           string    `json:"type"`
	Direction      string    `json:"direction"`
	Quantity       int       `json:"quantity"`
	SignedQuantity int       `json:"signed_quantity"`
	Reference      string    `json:"reference,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionListResponse lista paginada del libro.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// AdjustmentResult resultado de un ajuste: la entrada escrita y el nivel resultante.
type AdjustmentResult struct {
	Transaction TransactionResponse `json:"transaction"`
	StockLevel  StockLevelResponse  `json:"stock_level"`
}
