package usecase

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// AuditLogUseCase lectura de la bitácora de auditoría.
type AuditLogUseCase struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewAuditLogUseCase construye el caso de uso.
func NewAuditLogUseCase(repo repository.AuditLogRepository, log *logger.Logger) *AuditLogUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuditLogUseCase{repo: repo, log: log}
}

// List lista la bitácora de la empresa, más reciente primero.
func (uc *AuditLogUseCase) List(ctx context.Context, p domain.Principal, in dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error) {
	if err := requireAny(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	page := toPage(in.PageRequest)
	list, err := uc.repo.List(ctx, repository.AuditLogFilter{
		CompanyID: p.CompanyID,
		Entity:    in.Entity,
		EntityID:  in.EntityID,
		Page:      page,
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "audit.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toAuditLogResponse(l))
	}
	return &dto.AuditLogListResponse{Items: items, Page: pageResponse(page)}, nil
}

// ByEntity historial de una entidad concreta; exige entity y entity_id.
func (uc *AuditLogUseCase) ByEntity(ctx context.Context, p domain.Principal, in dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error) {
	if in.Entity == "" || in.EntityID == "" {
		return nil, domain.Invalid("entity y entity_id son obligatorios")
	}
	return uc.List(ctx, p, in)
}

func toAuditLogResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Entity:    l.Entity,
		EntityID:  l.EntityID,
		Changes:   l.Changes,
		Timestamp: l.Timestamp,
	}
}
