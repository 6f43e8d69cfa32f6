package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Type      string `json:"type" validate:"oneof=IN OUT ADJUSTMENT"`
}

func TestStruct_Valido(t *testing.T) {
	errs := Struct(sample{ProductID: "7b0c0f58-7d5e-4f6e-9a51-3a8f1f1a2b3c", Quantity: 2, Type: "IN"})
	assert.Nil(t, errs)
}

func TestStruct_ReportaCamposConNombreJSON(t *testing.T) {
	errs := Struct(sample{ProductID: "no-uuid", Quantity: 0, Type: "MOVE"})
	require.Len(t, errs, 3)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "uuid", fields["product_id"])
	assert.Equal(t, "gte", fields["quantity"])
	assert.Equal(t, "oneof", fields["type"])
}

func TestVar(t *testing.T) {
	assert.True(t, Var("a@b.co", "required,email"))
	assert.False(t, Var("", "required"))
}
