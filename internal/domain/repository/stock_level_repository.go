package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// StockLevelFilter filtros del listado de niveles de stock.
type StockLevelFilter struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	Page
}

// StockLevelRepository persistencia de StockLevel. Las escrituras solo ocurren dentro de TxRunner.
type StockLevelRepository interface {
	// Ensure crea el nivel con cantidad 0 si no existe (idempotente).
	Ensure(ctx context.Context, level *entity.StockLevel) error
	// GetForUpdate obtiene el nivel y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockLevel, error)
	UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error
	Get(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockLevel, error)
	GetByID(ctx context.Context, companyID, id string) (*entity.StockLevel, error)
	List(ctx context.Context, filter StockLevelFilter) ([]*entity.StockLevel, error)
}
