package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
// Todas las lecturas están acotadas a la empresa: una categoría ajena se reporta como inexistente.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Category, error)
	ListByCompany(ctx context.Context, companyID string, page Page) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, companyID, id string) error
}
