package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomiaDeErrores(t *testing.T) {
	assert.True(t, errors.Is(ErrDuplicate, ErrConflict))
	assert.True(t, errors.Is(ErrEmailAlreadyExists, ErrConflict))
	assert.True(t, errors.Is(Invalid("quantity debe ser > 0"), ErrValidation))

	ins := &InsufficientStockError{ProductID: "p", WarehouseID: "w", Available: 2, Requested: 5}
	assert.True(t, errors.Is(ins, ErrInsufficientStock))
	assert.Contains(t, ins.Error(), "disponible 2")
}

func TestInternal_EnvuelveSoloErroresDesconocidos(t *testing.T) {
	raw := errors.New("connection reset")
	err := Internal("stock.adjust", raw)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, raw))

	known := fmt.Errorf("%w: producto", ErrNotFound)
	assert.Same(t, known, Internal("op", known))
	assert.Nil(t, Internal("op", nil))
}

func TestPrincipal(t *testing.T) {
	p := Principal{UserID: "u", CompanyID: "c", Roles: []string{RoleSalesRep}}
	assert.NoError(t, p.Validate())
	assert.True(t, p.HasAnyRole(RoleAdmin, RoleSalesRep))
	assert.False(t, p.HasAnyRole(RoleAdmin))

	assert.ErrorIs(t, Principal{}.Validate(), ErrUnauthorized)
	assert.True(t, IsValidRole("warehouse_staff"))
	assert.False(t, IsValidRole("bodeguero"))
}
