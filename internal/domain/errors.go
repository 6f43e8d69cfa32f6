package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrDuplicate          = fmt.Errorf("%w: recurso duplicado", ErrConflict)
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInternal           = errors.New("error interno")
)

// FieldError detalle de un campo inválido.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError error de validación con detalle por campo. errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return ErrValidation.Error() + ": " + e.Message
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid construye un ValidationError con mensaje.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError indica que la operación dejaría el stock en negativo.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: producto %s en bodega %s (disponible %d, solicitado %d)",
		ErrInsufficientStock, e.ProductID, e.WarehouseID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InternalError envuelve una falla inesperada de persistencia. El mensaje externo es genérico.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *InternalError) Is(target error) bool { return target == ErrInternal }

func (e *InternalError) Unwrap() error { return e.Err }

// Internal envuelve err como InternalError salvo que ya sea un error de dominio conocido.
func Internal(op string, err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return &InternalError{Op: op, Err: err}
}

// IsDomainError indica si err pertenece a la taxonomía de errores de dominio.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrValidation, ErrConflict, ErrInsufficientStock,
		ErrUnauthorized, ErrForbidden, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
