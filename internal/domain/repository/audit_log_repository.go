package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// AuditLogFilter filtros de consulta de auditoría.
type AuditLogFilter struct {
	CompanyID string
	Entity    string
	EntityID  string
	Page
}

// AuditLogRepository persistencia de AuditLog (solo inserción y lectura).
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]*entity.AuditLog, error)
}
