// Package audit construye y persiste los registros de auditoría de las mutaciones.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// Change par antes/después que se guarda como changes de un UPDATE.
type Change struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// NewEntry arma el registro de auditoría serializando changes a JSON.
func NewEntry(p domain.Principal, action, entityName, entityID string, changes any, at time.Time) (*entity.AuditLog, error) {
	var raw json.RawMessage
	if changes != nil {
		b, err := json.Marshal(changes)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return &entity.AuditLog{
		ID:        uuid.New().String(),
		CompanyID: p.CompanyID,
		UserID:    p.UserID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Changes:   raw,
		Timestamp: at,
	}, nil
}

// Write persiste el registro con el repositorio dado (por ejemplo, el de la transacción en curso).
func Write(ctx context.Context, repo repository.AuditLogRepository, p domain.Principal, action, entityName, entityID string, changes any) error {
	entry, err := NewEntry(p, action, entityName, entityID, changes, time.Now().UTC())
	if err != nil {
		return err
	}
	return repo.Create(ctx, entry)
}

// Recorder registra auditoría fuera de transacción: una falla se loguea y no interrumpe la operación.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el registrador.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Recorder{repo: repo, log: log}
}

// Record guarda la mutación. No devuelve error.
func (r *Recorder) Record(ctx context.Context, p domain.Principal, action, entityName, entityID string, changes any) {
	if r == nil || r.repo == nil {
		return
	}
	if err := Write(ctx, r.repo, p, action, entityName, entityID, changes); err != nil {
		r.log.Warn().Err(err).
			Str("entity", entityName).
			Str("entity_id", entityID).
			Str("action", action).
			Msg("no se pudo registrar auditoría")
	}
}
