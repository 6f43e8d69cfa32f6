package usecase

import (
	"context"
	"fmt"
	"strings"
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

// CompanyUseCase aplica reglas de negocio para empresas (tenants).
type CompanyUseCase struct {
	repo             repository.CompanyRepository
	audit            *audit.Recorder
	defaultThreshold int
	log              *logger.Logger
}

// NewCompanyUseCase construye el caso de uso. defaultThreshold se usa cuando la empresa no define umbral.
func NewCompanyUseCase(repo repository.CompanyRepository, rec *audit.Recorder, defaultThreshold int, log *logger.Logger) *CompanyUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	if defaultThreshold < 0 {
		defaultThreshold = entity.DefaultLowStockThreshold
	}
	return &CompanyUseCase{repo: repo, audit: rec, defaultThreshold: defaultThreshold, log: log}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "company.create", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una empresa llamada %q", domain.ErrDuplicate, name)
	}
	threshold := uc.defaultThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	now := time.Now().UTC()
	company := &entity.Company{
		ID:                uuid.New().String(),
		Name:              name,
		Address:           in.Address,
		Email:             in.Email,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, apperr.Wrap(uc.log, "company.create", err, "name", name)
	}
	return toCompanyResponse(company), nil
}

// GetMine obtiene la empresa del principal.
func (uc *CompanyUseCase) GetMine(ctx context.Context, p domain.Principal) (*dto.CompanyResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, p.CompanyID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "company.get", err, "company_id", p.CompanyID)
	}
	if company == nil {
		return nil, notFound("empresa", p.CompanyID)
	}
	return toCompanyResponse(company), nil
}

// UpdateMine actualiza datos y umbral de stock bajo de la empresa del principal (solo admin).
func (uc *CompanyUseCase) UpdateMine(ctx context.Context, p domain.Principal, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := requireAny(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, p.CompanyID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "company.update", err, "company_id", p.CompanyID)
	}
	if company == nil {
		return nil, notFound("empresa", p.CompanyID)
	}
	before := toCompanyResponse(company)
	if in.Name != nil {
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.LowStockThreshold != nil {
		company.LowStockThreshold = *in.LowStockThreshold
	}
	company.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, apperr.Wrap(uc.log, "company.update", err, "company_id", p.CompanyID)
	}
	out := toCompanyResponse(company)
	uc.audit.Record(ctx, p, entity.AuditUpdate, entity.AuditEntityCompany, company.ID, audit.Change{Before: before, After: out})
	return out, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		Address:           c.Address,
		Email:             c.Email,
		LowStockThreshold: c.LowStockThreshold,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
