package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// ReversalPrefix prefijo de la referencia de un asiento compensatorio.
const ReversalPrefix = "Reversal of "

// TransactionUseCase consulta del libro, registro de movimientos y reversos.
// El libro es inmutable: no hay edición ni borrado de entradas.
type TransactionUseCase struct {
	agg  *StockAggregator
	tx   TxRunner
	repo repository.TransactionRepository
	log  *logger.Logger
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(agg *StockAggregator, tx TxRunner, repo repository.TransactionRepository, log *logger.Logger) *TransactionUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &TransactionUseCase{agg: agg, tx: tx, repo: repo, log: log}
}

// Create registra un movimiento a través del agregador y devuelve la entrada escrita.
func (uc *TransactionUseCase) Create(ctx context.Context, p domain.Principal, in dto.StockAdjustRequest) (*dto.TransactionResponse, error) {
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
	out := toTransactionResponse(res.Transaction)
	return &out, nil
}

// GetByID obtiene una entrada del libro.
func (uc *TransactionUseCase) GetByID(ctx context.Context, p domain.Principal, id string) (*dto.TransactionResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "transaction.get", err, "id", id)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	out := toTransactionResponse(t)
	return &out, nil
}

// List lista el libro, del más reciente al más antiguo.
func (uc *TransactionUseCase) List(ctx context.Context, p domain.Principal, in dto.TransactionFilterRequest) (*dto.TransactionListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page := toPage(in.PageRequest)
	in.PageRequest = dto.PageRequest{Limit: page.Limit, Offset: page.Offset}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	from, err := parseTime("from", in.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTime("to", in.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.Invalid("to debe ser posterior a from")
	}

	list, err := uc.repo.List(ctx, repository.TransactionFilter{
		CompanyID:   p.CompanyID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		From:        from,
		To:          to,
		Page:        page,
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "transaction.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Reverse agrega un ADJUSTMENT en la dirección contraria de la entrada id.
// Puede fallar con InsufficientStock si el stock ya se consumió.
func (uc *TransactionUseCase) Reverse(ctx context.Context, p domain.Principal, id string) (*dto.AdjustmentResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var res *AdjustResult
	err := uc.tx.Run(ctx, func(repos repository.TxRepositories) error {
		original, err := repos.Transactions.GetByID(ctx, p.CompanyID, id)
		if err != nil {
			return err
		}
		if original == nil {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
		}
		res, err = uc.agg.AdjustInTx(ctx, repos, p, Movement{
			ProductID:   original.ProductID,
			WarehouseID: original.WarehouseID,
			Type:        entity.TransactionTypeADJUSTMENT,
			Direction:   inventory.Opposite(original.Direction),
			Quantity:    original.Quantity,
			Reference:   ReversalPrefix + original.ID,
		})
		return err
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "transaction.reverse", err, "id", id)
	}
	uc.agg.alerts.Check(ctx, res.Level)
	return toAdjustmentResult(res), nil
}

func parseTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, &domain.ValidationError{
			Message: field + " debe tener formato RFC3339",
			Fields:  []domain.FieldError{{Field: field, Rule: "datetime", Param: time.RFC3339}},
		}
	}
	return &t, nil
}
