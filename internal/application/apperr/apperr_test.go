package apperr

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

func TestWrap_ErrorDesconocidoSeRegistraYEsInterno(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "debug", Output: &buf})

	err := Wrap(log, "stock.adjust", errors.New("conn refused"), "product_id", "p1")

	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Contains(t, buf.String(), `"op":"stock.adjust"`)
	assert.Contains(t, buf.String(), `"product_id":"p1"`)
}

func TestWrap_ErrorDeDominioPasaSinCambios(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Output: &buf})
	known := fmt.Errorf("%w: venta", domain.ErrNotFound)

	assert.Same(t, known, Wrap(log, "sale.get", known))
	assert.Empty(t, buf.String())
	assert.NoError(t, Wrap(nil, "op", nil))
}
