package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// TransactionFilter filtros del libro de movimientos.
type TransactionFilter struct {
	CompanyID   string
	ProductID   string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
	Page
}

// TransactionRepository libro de movimientos append-only: no expone Update ni Delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
