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

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	audit *audit.Recorder
	log   *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, rec *audit.Recorder, log *logger.Logger) *WarehouseUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &WarehouseUseCase{repo: repo, audit: rec, log: log}
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, p domain.Principal, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: p.CompanyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, apperr.Wrap(uc.log, "warehouse.create", err, "company_id", p.CompanyID)
	}
	out := toWarehouseResponse(warehouse)
	uc.audit.Record(ctx, p, entity.AuditCreate, entity.AuditEntityWarehouse, warehouse.ID, out)
	return out, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, p domain.Principal, id string) (*dto.WarehouseResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	warehouse, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "warehouse.get", err, "id", id)
	}
	if warehouse == nil {
		return nil, notFound("bodega", id)
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas por empresa.
func (uc *WarehouseUseCase) List(ctx context.Context, p domain.Principal, in dto.PageRequest) (*dto.WarehouseListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page := toPage(in)
	list, err := uc.repo.ListByCompany(ctx, p.CompanyID, page)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "warehouse.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update actualiza nombre y dirección.
func (uc *WarehouseUseCase) Update(ctx context.Context, p domain.Principal, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	warehouse, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "warehouse.update", err, "id", id)
	}
	if warehouse == nil {
		return nil, notFound("bodega", id)
	}
	before := toWarehouseResponse(warehouse)
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, apperr.Wrap(uc.log, "warehouse.update", err, "id", id)
	}
	out := toWarehouseResponse(warehouse)
	uc.audit.Record(ctx, p, entity.AuditUpdate, entity.AuditEntityWarehouse, id, audit.Change{Before: before, After: out})
	return out, nil
}

// Delete elimina la bodega. Conflict si tiene stock o movimientos.
func (uc *WarehouseUseCase) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, p.CompanyID, id); err != nil {
		return apperr.Wrap(uc.log, "warehouse.delete", err, "id", id)
	}
	uc.audit.Record(ctx, p, entity.AuditDelete, entity.AuditEntityWarehouse, id, nil)
	return nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
