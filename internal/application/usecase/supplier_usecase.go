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

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	audit *audit.Recorder
	log   *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, rec *audit.Recorder, log *logger.Logger) *SupplierUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &SupplierUseCase{repo: repo, audit: rec, log: log}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, p domain.Principal, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		Name:        in.Name,
		ContactInfo: in.ContactInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, apperr.Wrap(uc.log, "supplier.create", err, "company_id", p.CompanyID)
	}
	out := toSupplierResponse(supplier)
	uc.audit.Record(ctx, p, entity.AuditCreate, entity.AuditEntitySupplier, supplier.ID, out)
	return out, nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, p domain.Principal, id string) (*dto.SupplierResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "supplier.get", err, "id", id)
	}
	if supplier == nil {
		return nil, notFound("proveedor", id)
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, p domain.Principal, in dto.PageRequest) (*dto.SupplierListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page := toPage(in)
	list, err := uc.repo.ListByCompany(ctx, p.CompanyID, page)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "supplier.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update actualiza nombre y contacto.
func (uc *SupplierUseCase) Update(ctx context.Context, p domain.Principal, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "supplier.update", err, "id", id)
	}
	if supplier == nil {
		return nil, notFound("proveedor", id)
	}
	before := toSupplierResponse(supplier)
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.ContactInfo != nil {
		supplier.ContactInfo = *in.ContactInfo
	}
	supplier.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, apperr.Wrap(uc.log, "supplier.update", err, "id", id)
	}
	out := toSupplierResponse(supplier)
	uc.audit.Record(ctx, p, entity.AuditUpdate, entity.AuditEntitySupplier, id, audit.Change{Before: before, After: out})
	return out, nil
}

// Delete elimina el proveedor. Conflict si tiene productos o compras.
func (uc *SupplierUseCase) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, p.CompanyID, id); err != nil {
		return apperr.Wrap(uc.log, "supplier.delete", err, "id", id)
	}
	uc.audit.Record(ctx, p, entity.AuditDelete, entity.AuditEntitySupplier, id, nil)
	return nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
