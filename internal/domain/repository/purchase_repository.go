package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Purchase, error)
	// GetForUpdate bloquea la compra para aplicar deltas sin carreras.
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error)
	ListByCompany(ctx context.Context, companyID string, page Page) ([]*entity.Purchase, error)
	Update(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, companyID, id string) error
}
