package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// DefaultCountReference referencia de los ajustes generados por un conteo físico sin referencia.
const DefaultCountReference = "Stock count"

// StockUseCase ajustes de stock y consulta de niveles.
type StockUseCase struct {
	agg    *StockAggregator
	tx     TxRunner
	levels repository.StockLevelRepository
	log    *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(agg *StockAggregator, tx TxRunner, levels repository.StockLevelRepository, log *logger.Logger) *StockUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &StockUseCase{agg: agg, tx: tx, levels: levels, log: log}
}

// Adjust valida la petición y aplica el movimiento. Devuelve la entrada del libro y el nivel resultante.
func (uc *StockUseCase) Adjust(ctx context.Context, p domain.Principal, in dto.StockAdjustRequest) (*dto.AdjustmentResult, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	res, err := uc.agg.Adjust(ctx, p, Movement{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Direction:   in.Direction,
		Quantity:    in.Quantity,
		Reference:   in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResult(res), nil
}

// GetLevel nivel de la tripleta. NotFound si nunca hubo movimientos.
func (uc *StockUseCase) GetLevel(ctx context.Context, p domain.Principal, productID, warehouseID string) (*dto.StockLevelResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	level, err := uc.levels.Get(ctx, p.CompanyID, productID, warehouseID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "stock.get", err, "product_id", productID, "warehouse_id", warehouseID)
	}
	if level == nil {
		return nil, fmt.Errorf("%w: no hay stock para producto %s en bodega %s", domain.ErrNotFound, productID, warehouseID)
	}
	out := toStockLevelResponse(level)
	return &out, nil
}

// GetLevelByID nivel por ID.
func (uc *StockUseCase) GetLevelByID(ctx context.Context, p domain.Principal, id string) (*dto.StockLevelResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	level, err := uc.levels.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "stock_level.get", err, "id", id)
	}
	if level == nil {
		return nil, fmt.Errorf("%w: nivel de stock %s", domain.ErrNotFound, id)
	}
	out := toStockLevelResponse(level)
	return &out, nil
}

// ListLevels lista niveles de la empresa.
func (uc *StockUseCase) ListLevels(ctx context.Context, p domain.Principal, in dto.StockLevelFilterRequest) (*dto.StockLevelListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page := toPage(in.PageRequest)
	in.PageRequest = dto.PageRequest{Limit: page.Limit, Offset: page.Offset}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	list, err := uc.levels.List(ctx, repository.StockLevelFilter{
		CompanyID:   p.CompanyID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Page:        page,
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "stock_level.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.StockLevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toStockLevelResponse(l))
	}
	return &dto.StockLevelListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Count fija la cantidad contada de un nivel. Escribe un ADJUSTMENT con la diferencia;
// si no hay diferencia no escribe nada. El nivel nunca se sobrescribe sin su entrada en el libro.
func (uc *StockUseCase) Count(ctx context.Context, p domain.Principal, levelID string, in dto.StockCountRequest) (*dto.StockLevelResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	reference := in.Reference
	if reference == "" {
		reference = DefaultCountReference
	}

	var result *entity.StockLevel
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		level, err := repos.StockLevels.GetByID(ctx, p.CompanyID, levelID)
		if err != nil {
			return err
		}
		if level == nil {
			return fmt.Errorf("%w: nivel de stock %s", domain.ErrNotFound, levelID)
		}
		locked, err := repos.StockLevels.GetForUpdate(ctx, p.CompanyID, level.ProductID, level.WarehouseID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: nivel de stock %s", domain.ErrNotFound, levelID)
		}
		direction, qty, ok := inventory.Delta(*in.Quantity - locked.Quantity)
		if !ok {
			result = locked
			return nil
		}
		res, err := uc.agg.AdjustInTx(ctx, repos, p, Movement{
			ProductID:   locked.ProductID,
			WarehouseID: locked.WarehouseID,
			Type:        entity.TransactionTypeADJUSTMENT,
			Direction:   direction,
			Quantity:    qty,
			Reference:   reference,
		})
		if err != nil {
			return err
		}
		result = res.Level
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "stock_level.count", err, "id", levelID)
	}
	uc.agg.alerts.Check(ctx, result)
	out := toStockLevelResponse(result)
	return &out, nil
}
