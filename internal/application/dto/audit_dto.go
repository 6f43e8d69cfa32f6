package dto

import (
	"encoding/json"
	"time"
)

// AuditLogFilterRequest filtros del listado de auditoría.
type AuditLogFilterRequest struct {
	Entity   string `query:"entity" validate:"omitempty,max=50"`
	EntityID string `query:"entity_id" validate:"omitempty,uuid"`
	PageRequest
}

// AuditLogResponse salida de un registro de auditoría.
type AuditLogResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id,omitempty"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// AuditLogListResponse lista paginada de auditoría.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
