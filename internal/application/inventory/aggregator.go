package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// Movement un movimiento a aplicar sobre la tripleta (empresa, producto, bodega).
// Direction solo se usa en ADJUSTMENT; IN y OUT la fijan.
type Movement struct {
	ProductID   string
	WarehouseID string
	Type        string
	Direction   string
	Quantity    int
	Reference   string
}

// AdjustResult entrada escrita en el libro y nivel resultante.
type AdjustResult struct {
	Transaction *entity.Transaction
	Level       *entity.StockLevel
}

// StockAggregator escribe la entrada del libro y actualiza el StockLevel en la misma transacción.
// Es el único camino por el que cambia una cantidad en stock.
type StockAggregator struct {
	tx       TxRunner
	alerts   *LowStockAlerter
	observer AdjustmentObserver
	log      *logger.Logger
}

// NewStockAggregator construye el agregador. alerts y observer pueden ser nil.
func NewStockAggregator(tx TxRunner, alerts *LowStockAlerter, observer AdjustmentObserver, log *logger.Logger) *StockAggregator {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &StockAggregator{tx: tx, alerts: alerts, observer: observer, log: log}
}

// Adjust aplica m en su propia transacción. Tras el commit puede disparar la alerta de stock bajo.
func (a *StockAggregator) Adjust(ctx context.Context, p domain.Principal, m Movement) (*AdjustResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var res *AdjustResult
	err := a.tx.Run(ctx, func(repos repository.TxRepositories) error {
		r, err := a.AdjustInTx(ctx, repos, p, m)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(a.log, "stock.adjust", err,
			"company_id", p.CompanyID, "product_id", m.ProductID, "warehouse_id", m.WarehouseID)
	}
	a.alerts.Check(ctx, res.Level)
	return res, nil
}

// AdjustInTx aplica m con los repositorios de una transacción abierta por el llamador.
// Pasos: crear el nivel en 0 si falta, bloquearlo, validar suficiencia, actualizarlo y escribir el libro.
// Si devuelve error el llamador debe hacer Rollback.
func (a *StockAggregator) AdjustInTx(ctx context.Context, repos repository.TxRepositories, p domain.Principal, m Movement) (*AdjustResult, error) {
	direction, err := inventory.ValidateMovement(m.Type, m.Direction, m.Quantity, m.Reference)
	if err != nil {
		a.observer.AdjustmentRejected(m.Type, "validation")
		return nil, err
	}
	if err := RequireStockTarget(ctx, repos, p.CompanyID, m.ProductID, m.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := repos.StockLevels.Ensure(ctx, &entity.StockLevel{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		CreatedAt:   now,
	}); err != nil {
		return nil, err
	}
	// Bloquea la fila (SELECT FOR UPDATE) para evitar actualizaciones perdidas.
	level, err := repos.StockLevels.GetForUpdate(ctx, p.CompanyID, m.ProductID, m.WarehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, fmt.Errorf("stock level %s/%s no disponible tras ensure", m.ProductID, m.WarehouseID)
	}

	newQty, err := inventory.Apply(level, direction, m.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			a.observer.AdjustmentRejected(m.Type, "insufficient_stock")
		}
		return nil, err
	}
	if err := repos.StockLevels.UpdateQuantity(ctx, level.ID, newQty, now); err != nil {
		return nil, err
	}

	tx := &entity.Transaction{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Direction:   direction,
		Quantity:    m.Quantity,
		Reference:   m.Reference,
		CreatedBy:   p.UserID,
		CreatedAt:   now,
	}
	if err := repos.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	level.Quantity = newQty
	level.UpdatedAt = now
	a.observer.AdjustmentApplied(m.Type, direction, m.Quantity)
	return &AdjustResult{Transaction: tx, Level: level}, nil
}

// RequireStockTarget verifica que producto y bodega existan en la empresa.
func RequireStockTarget(ctx context.Context, repos repository.TxRepositories, companyID, productID, warehouseID string) error {
	product, err := repos.Products.GetByID(ctx, companyID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	warehouse, err := repos.Warehouses.GetByID(ctx, companyID, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	return nil
}
