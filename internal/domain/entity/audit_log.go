package entity

import (
	"encoding/json"
	"time"
)

// Acciones auditadas.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// Entidades auditadas.
const (
	AuditEntityCompany   = "company"
	AuditEntityUser      = "user"
	AuditEntityCategory  = "category"
	AuditEntitySupplier  = "supplier"
	AuditEntityWarehouse = "warehouse"
	AuditEntityProduct   = "product"
	AuditEntityPurchase  = "purchase"
	AuditEntitySale      = "sale"
	AuditEntityStock     = "stock_level"
)

// AuditLog registro de una mutación sobre una entidad del catálogo o de un documento.
type AuditLog struct {
	ID        string
	CompanyID string
	UserID    string
	Action    string
	Entity    string
	EntityID  string
	Changes   json.RawMessage
	Timestamp time.Time
}
