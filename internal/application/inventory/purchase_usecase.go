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

// PurchaseUseCase compras a proveedor. Cada operación escribe la compra, su movimiento de stock
// y su auditoría en una sola transacción.
type PurchaseUseCase struct {
	agg       *StockAggregator
	tx        TxRunner
	purchases repository.PurchaseRepository
	suppliers repository.SupplierRepository
	log       *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	agg *StockAggregator,
	tx TxRunner,
	purchases repository.PurchaseRepository,
	suppliers repository.SupplierRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &PurchaseUseCase{agg: agg, tx: tx, purchases: purchases, suppliers: suppliers, log: log}
}

// Create registra la compra e ingresa (IN) su cantidad en la bodega.
func (uc *PurchaseUseCase) Create(ctx context.Context, p domain.Principal, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.Invalid("unit_cost no puede ser negativo")
	}
	if in.SupplierID != nil {
		if err := uc.requireSupplier(ctx, p.CompanyID, *in.SupplierID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	purchase := &entity.Purchase{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		SupplierID:  in.SupplierID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		CreatedBy:   p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var level *entity.StockLevel
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		if err := RequireStockTarget(ctx, repos, p.CompanyID, in.ProductID, in.WarehouseID); err != nil {
			return err
		}
		if err := repos.Purchases.Create(ctx, purchase); err != nil {
			return err
		}
		res, err := uc.agg.AdjustInTx(ctx, repos, p, Movement{
			ProductID:   purchase.ProductID,
			WarehouseID: purchase.WarehouseID,
			Type:        entity.TransactionTypeIN,
			Quantity:    purchase.Quantity,
			Reference:   purchase.Reference(),
		})
		if err != nil {
			return err
		}
		level = res.Level
		return audit.Write(ctx, repos.AuditLogs, p, entity.AuditCreate, entity.AuditEntityPurchase, purchase.ID, toPurchaseResponse(purchase))
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "purchase.create", err, "company_id", p.CompanyID, "product_id", in.ProductID)
	}
	uc.agg.alerts.Check(ctx, level)
	return toPurchaseResponse(purchase), nil
}

// GetByID obtiene una compra.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, p domain.Principal, id string) (*dto.PurchaseResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	purchase, err := uc.purchases.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "purchase.get", err, "id", id)
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	return toPurchaseResponse(purchase), nil
}

// List lista compras de la empresa, más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, p domain.Principal, in dto.PageRequest) (*dto.PurchaseListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page := toPage(in)
	list, err := uc.purchases.ListByCompany(ctx, p.CompanyID, page)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "purchase.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, pu := range list {
		items = append(items, *toPurchaseResponse(pu))
	}
	return &dto.PurchaseListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update modifica cantidad y/o costo. Solo la diferencia de cantidad (nueva − anterior) se mueve en el stock.
func (uc *PurchaseUseCase) Update(ctx context.Context, p domain.Principal, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Invalid("unit_cost no puede ser negativo")
	}

	var updated *entity.Purchase
	var level *entity.StockLevel
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		current, err := repos.Purchases.GetForUpdate(ctx, p.CompanyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
		}
		before := toPurchaseResponse(current)
		next := *current
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		if in.UnitCost != nil {
			next.UnitCost = *in.UnitCost
		}
		next.UpdatedAt = time.Now().UTC()

		if direction, qty, ok := inventory.Delta(next.Quantity - current.Quantity); ok {
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
		if err := repos.Purchases.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return audit.Write(ctx, repos.AuditLogs, p, entity.AuditUpdate, entity.AuditEntityPurchase, id,
			audit.Change{Before: before, After: toPurchaseResponse(&next)})
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "purchase.update", err, "id", id)
	}
	uc.agg.alerts.Check(ctx, level)
	return toPurchaseResponse(updated), nil
}

// Delete elimina la compra y retira (DECREASE) su cantidad del stock.
func (uc *PurchaseUseCase) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	var level *entity.StockLevel
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		current, err := repos.Purchases.GetForUpdate(ctx, p.CompanyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
		}
		res, err := uc.agg.AdjustInTx(ctx, repos, p, Movement{
			ProductID:   current.ProductID,
			WarehouseID: current.WarehouseID,
			Type:        entity.TransactionTypeADJUSTMENT,
			Direction:   entity.DirectionDecrease,
			Quantity:    current.Quantity,
			Reference:   current.Reference(),
		})
		if err != nil {
			return err
		}
		level = res.Level
		if err := repos.Purchases.Delete(ctx, p.CompanyID, id); err != nil {
			return err
		}
		return audit.Write(ctx, repos.AuditLogs, p, entity.AuditDelete, entity.AuditEntityPurchase, id, toPurchaseResponse(current))
	})
	if err != nil {
		return apperr.Wrap(uc.log, "purchase.delete", err, "id", id)
	}
	uc.agg.alerts.Check(ctx, level)
	return nil
}

func (uc *PurchaseUseCase) requireSupplier(ctx context.Context, companyID, supplierID string) error {
	supplier, err := uc.suppliers.GetByID(ctx, companyID, supplierID)
	if err != nil {
		return apperr.Wrap(uc.log, "purchase.supplier", err, "supplier_id", supplierID)
	}
	if supplier == nil {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, supplierID)
	}
	return nil
}
