package dto

import (
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/pkg/validator"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o están fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// Validate aplica los tags `validate` de in. Devuelve un *domain.ValidationError con el detalle por campo.
func Validate(in any) error {
	fields := validator.Struct(in)
	if len(fields) == 0 {
		return nil
	}
	out := &domain.ValidationError{Message: "revise los campos indicados", Fields: make([]domain.FieldError, 0, len(fields))}
	for _, f := range fields {
		out.Fields = append(out.Fields, domain.FieldError{Field: f.Field, Rule: f.Tag, Param: f.Param})
	}
	return out
}
