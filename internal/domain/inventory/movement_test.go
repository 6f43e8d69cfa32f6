package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

func TestValidateMovement(t *testing.T) {
	cases := []struct {
		name      string
		txType    string
		direction string
		qty       int
		want      string
		wantErr   bool
	}{
		{"IN incrementa", entity.TransactionTypeIN, "", 5, entity.DirectionIncrease, false},
		{"OUT reduce", entity.TransactionTypeOUT, "", 5, entity.DirectionDecrease, false},
		{"ajuste positivo", entity.TransactionTypeADJUSTMENT, entity.DirectionIncrease, 1, entity.DirectionIncrease, false},
		{"ajuste negativo", entity.TransactionTypeADJUSTMENT, entity.DirectionDecrease, 1, entity.DirectionDecrease, false},
		{"ajuste sin dirección", entity.TransactionTypeADJUSTMENT, "", 1, "", true},
		{"OUT con INCREASE", entity.TransactionTypeOUT, entity.DirectionIncrease, 1, "", true},
		{"cantidad cero", entity.TransactionTypeIN, "", 0, "", true},
		{"cantidad negativa", entity.TransactionTypeIN, "", -3, "", true},
		{"tipo desconocido", "TRANSFER", "", 3, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateMovement(tc.txType, tc.direction, tc.qty, "")
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateMovement_ReferenciaLarga(t *testing.T) {
	long := make([]byte, MaxReferenceLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err := ValidateMovement(entity.TransactionTypeIN, "", 1, string(long))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateMovement_CantidadSobreElMaximo(t *testing.T) {
	_, err := ValidateMovement(entity.TransactionTypeIN, "", MaxQuantity, "")
	require.NoError(t, err)

	over := MaxQuantity
	over++
	_, err = ValidateMovement(entity.TransactionTypeIN, "", over, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApply_IncrementoNoDesbordaElMaximo(t *testing.T) {
	level := &entity.StockLevel{ProductID: "p", WarehouseID: "w", Quantity: MaxQuantity - 10}

	q, err := Apply(level, entity.DirectionIncrease, 10)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, q)

	_, err = Apply(level, entity.DirectionIncrease, 11)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply(t *testing.T) {
	level := &entity.StockLevel{ProductID: "p", WarehouseID: "w", Quantity: 15}

	q, err := Apply(level, entity.DirectionIncrease, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, q)

	q, err = Apply(level, entity.DirectionDecrease, 15)
	require.NoError(t, err)
	assert.Equal(t, 0, q)

	_, err = Apply(level, entity.DirectionDecrease, 100)
	var ins *domain.InsufficientStockError
	require.True(t, errors.As(err, &ins))
	assert.Equal(t, 15, ins.Available)
	assert.Equal(t, 100, ins.Requested)
}

func TestDeltaYOpposite(t *testing.T) {
	dir, q, ok := Delta(-4)
	assert.True(t, ok)
	assert.Equal(t, entity.DirectionDecrease, dir)
	assert.Equal(t, 4, q)

	_, _, ok = Delta(0)
	assert.False(t, ok)

	assert.Equal(t, entity.DirectionIncrease, Opposite(entity.DirectionDecrease))

	tx := entity.Transaction{Direction: entity.DirectionDecrease, Quantity: 7}
	assert.Equal(t, -7, tx.SignedQuantity())
}
