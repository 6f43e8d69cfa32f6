package dto

// LowStockNotificationRequest envío manual de una alerta de stock bajo.
type LowStockNotificationRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ProductName string `json:"product_name" validate:"required,max=200"`
	Quantity    *int   `json:"quantity" validate:"required,gte=0"`
}

// StockAdjustmentNotificationRequest aviso de un ajuste de stock.
type StockAdjustmentNotificationRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ProductName string `json:"product_name" validate:"required,max=200"`
	Type        string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity    int    `json:"quantity" validate:"gte=1"`
	Reference   string `json:"reference" validate:"max=255"`
}

// NotificationResponse confirmación de envío.
type NotificationResponse struct {
	Sent     bool   `json:"sent"`
	Template string `json:"template"`
}
