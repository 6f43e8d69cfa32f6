package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/audit"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// SaleUseCase ventas de punto de venta. Vender descuenta (OUT) stock con verificación de suficiencia.
type SaleUseCase struct {
	agg   *StockAggregator
	tx    TxRunner
	sales repository.SaleRepository
	log   *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(agg *StockAggregator, tx TxRunner, sales repository.SaleRepository, log *logger.Logger) *SaleUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &SaleUseCase{agg: agg, tx: tx, sales: sales, log: log}
}

// Create registra la venta y su salida de stock. InsufficientStock si no alcanza.
func (uc *SaleUseCase) Create(ctx context.Context, p domain.Principal, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.Invalid("unit_price no puede ser negativo")
	}

	now := time.Now().UTC()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		CreatedBy:   p.UserID,
		SoldAt:      now,
		UpdatedAt:   now,
	}
	var level *entity.StockLevel
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		if err := RequireStockTarget(ctx, repos, p.CompanyID, in.ProductID, in.WarehouseID); err != nil {
			return err
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		res, err := uc.agg.AdjustInTx(ctx, repos, p, Movement{
			ProductID:   sale.ProductID,
			WarehouseID: sale.WarehouseID,
			Type:        entity.TransactionTypeOUT,
			Quantity:    sale.Quantity,
			Reference:   sale.Reference(),
		})
		if err != nil {
			return err
		}
		level = res.Level
		return audit.Write(ctx, repos.AuditLogs, p, entity.AuditCreate, entity.AuditEntitySale, sale.ID, toSaleResponse(sale))
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "sale.create", err, "company_id", p.CompanyID, "product_id", in.ProductID)
	}
	uc.agg.alerts.Check(ctx, level)
	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta.
func (uc *SaleUseCase) GetByID(ctx context.Context, p domain.Principal, id string) (*dto.SaleResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sale, err := uc.sales.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "sale.get", err, "id", id)
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return toSaleResponse(sale), nil
}

// List lista ventas de la empresa, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, p domain.Principal, in dto.PageRequest) (*dto.SaleListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page := toPage(in)
	list, err := uc.sales.ListByCompany(ctx, p.CompanyID, page)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "sale.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update modifica cantidad y/o precio. Vender más descuenta la diferencia; vender menos la devuelve.
func (uc *SaleUseCase) Update(ctx context.Context, p domain.Principal, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.Invalid("unit_price no puede ser negativo")
	}

	var updated *entity.Sale
	var level *entity.StockLevel
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		current, err := repos.Sales.GetForUpdate(ctx, p.CompanyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}
		before := toSaleResponse(current)
		next := *current
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			next.UnitPrice = *in.UnitPrice
		}
		next.UpdatedAt = time.Now().UTC()

		// Stock se mueve en sentido contrario a la cantidad vendida.
		if direction, qty, ok := inventory.Delta(current.Quantity - next.Quantity); ok {
			res, err := uc.agg.AdjustInTx(ctx, repos, p, Movement{
				ProductID:   current.ProductID,
				WarehouseID: current.WarehouseID,
				Type:        entity.TransactionTypeADJUSTMENT,
				Direction:   direction,
				Quantity:    qty,
				Reference:   current.Reference(),
			})
			if err != nil {
				return err
			}
			level = res.Level
		}
		if err := repos.Sales.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return audit.Write(ctx, repos.AuditLogs, p, entity.AuditUpdate, entity.AuditEntitySale, id,
			audit.Change{Before: before, After: toSaleResponse(&next)})
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "sale.update", err, "id", id)
	}
	uc.agg.alerts.Check(ctx, level)
	return toSaleResponse(updated), nil
}

// Delete anula la venta y devuelve (INCREASE) su cantidad al stock.
func (uc *SaleUseCase) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		current, err := repos.Sales.GetForUpdate(ctx, p.CompanyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}
		if _, err := uc.agg.AdjustInTx(ctx, repos, p, Movement{
			ProductID:   current.ProductID,
			WarehouseID: current.WarehouseID,
			Type:        entity.TransactionTypeADJUSTMENT,
			Direction:   entity.DirectionIncrease,
			Quantity:    current.Quantity,
			Reference:   current.Reference(),
		}); err != nil {
			return err
		}
		if err := repos.Sales.Delete(ctx, p.CompanyID, id); err != nil {
			return err
		}
		return audit.Write(ctx, repos.AuditLogs, p, entity.AuditDelete, entity.AuditEntitySale, id, toSaleResponse(current))
	})
	return apperr.Wrap(uc.log, "sale.delete", err, "id", id)
}
