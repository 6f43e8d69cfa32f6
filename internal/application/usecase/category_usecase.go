package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/audit"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// CategoryUseCase CRUD de categorías (árbol opcional por parent_id).
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	audit *audit.Recorder
	log   *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, rec *audit.Recorder, log *logger.Logger) *CategoryUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &CategoryUseCase{repo: repo, audit: rec, log: log}
}

// Create crea una categoría. El padre, si se indica, debe ser de la misma empresa.
func (uc *CategoryUseCase) Create(ctx context.Context, p domain.Principal, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.requireParent(ctx, p.CompanyID, "", in.ParentID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: p.CompanyID,
		ParentID:  in.ParentID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, apperr.Wrap(uc.log, "category.create", err, "company_id", p.CompanyID)
	}
	out := toCategoryResponse(category)
	uc.audit.Record(ctx, p, entity.AuditCreate, entity.AuditEntityCategory, category.ID, out)
	return out, nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, p domain.Principal, id string) (*dto.CategoryResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "category.get", err, "id", id)
	}
	if category == nil {
		return nil, notFound("categoría", id)
	}
	return toCategoryResponse(category), nil
}

// List lista categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, p domain.Principal, in dto.PageRequest) (*dto.CategoryListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page := toPage(in)
	list, err := uc.repo.ListByCompany(ctx, p.CompanyID, page)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "category.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update renombra o mueve la categoría. Una categoría no puede ser su propio padre.
func (uc *CategoryUseCase) Update(ctx context.Context, p domain.Principal, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "category.update", err, "id", id)
	}
	if category == nil {
		return nil, notFound("categoría", id)
	}
	if err := uc.requireParent(ctx, p.CompanyID, id, in.ParentID); err != nil {
		return nil, err
	}
	before := toCategoryResponse(category)
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.ParentID != nil {
		category.ParentID = in.ParentID
	}
	category.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, apperr.Wrap(uc.log, "category.update", err, "id", id)
	}
	out := toCategoryResponse(category)
	uc.audit.Record(ctx, p, entity.AuditUpdate, entity.AuditEntityCategory, id, audit.Change{Before: before, After: out})
	return out, nil
}

// Delete elimina la categoría. Conflict si tiene productos o subcategorías.
func (uc *CategoryUseCase) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, p.CompanyID, id); err != nil {
		return apperr.Wrap(uc.log, "category.delete", err, "id", id)
	}
	uc.audit.Record(ctx, p, entity.AuditDelete, entity.AuditEntityCategory, id, nil)
	return nil
}

func (uc *CategoryUseCase) requireParent(ctx context.Context, companyID, selfID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if *parentID == selfID {
		return domain.Invalid("una categoría no puede ser su propio padre")
	}
	parent, err := uc.repo.GetByID(ctx, companyID, *parentID)
	if err != nil {
		return apperr.Wrap(uc.log, "category.parent", err, "parent_id", *parentID)
	}
	if parent == nil {
		return notFound("categoría padre", *parentID)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
