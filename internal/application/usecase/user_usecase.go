package usecase

import (
	"context"
	"slices"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/audit"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// UserUseCase consulta de usuarios y asignación de roles.
type UserUseCase struct {
	repo  repository.UserRepository
	audit *audit.Recorder
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, rec *audit.Recorder, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &UserUseCase{repo: repo, audit: rec, log: log}
}

// Me devuelve el usuario autenticado.
func (uc *UserUseCase) Me(ctx context.Context, p domain.Principal) (*dto.UserResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, p.CompanyID, p.UserID)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "user.me", err, "user_id", p.UserID)
	}
	if user == nil {
		return nil, notFound("usuario", p.UserID)
	}
	return ToUserResponse(user), nil
}

// List lista los usuarios de la empresa (solo admin).
func (uc *UserUseCase) List(ctx context.Context, p domain.Principal, in dto.PageRequest) (*dto.UserListResponse, error) {
	if err := requireAny(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	page := toPage(in)
	list, err := uc.repo.ListByCompany(ctx, p.CompanyID, page)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "user.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: pageResponse(page)}, nil
}

// UpdateRoles reemplaza los roles de un usuario de la empresa (solo admin).
func (uc *UserUseCase) UpdateRoles(ctx context.Context, p domain.Principal, id string, in dto.UpdateRolesRequest) (*dto.UserResponse, error) {
	if err := requireAny(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "user.roles", err, "id", id)
	}
	if user == nil {
		return nil, notFound("usuario", id)
	}
	roles := slices.Compact(slices.Sorted(slices.Values(in.Roles)))
	if err := uc.repo.UpdateRoles(ctx, p.CompanyID, id, roles); err != nil {
		return nil, apperr.Wrap(uc.log, "user.roles", err, "id", id)
	}
	before := user.Roles
	user.Roles = roles
	uc.audit.Record(ctx, p, entity.AuditUpdate, entity.AuditEntityUser, id,
		audit.Change{Before: map[string]any{"roles": before}, After: map[string]any{"roles": roles}})
	return ToUserResponse(user), nil
}

// ToUserResponse convierte la entidad en su salida pública (sin hash de password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     slices.Clone(u.Roles),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
