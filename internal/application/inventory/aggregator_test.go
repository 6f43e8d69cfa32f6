package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/inventory-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Escenario IN 20 / OUT 5 / OUT 100
// ─────────────────────────────────────────────────────────────────────────────

func TestAdjust_EscenarioEntradaSalidaYRechazo(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-001")

	res, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Level.Quantity)
	assert.Equal(t, entity.DirectionIncrease, res.Transaction.Direction)
	assert.Equal(t, 20, e.level(t, p.ID, e.warehouse.ID))
	require.Len(t, e.ledger(t, p.ID), 1)

	_, err = e.adjust(t, p.ID, entity.TransactionTypeOUT, "", 5)
	require.NoError(t, err)
	assert.Equal(t, 15, e.level(t, p.ID, e.warehouse.ID))
	assert.Len(t, e.ledger(t, p.ID), 2)

	_, err = e.adjust(t, p.ID, entity.TransactionTypeOUT, "", 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ins *domain.InsufficientStockError
	require.True(t, errors.As(err, &ins))
	assert.Equal(t, 15, ins.Available)
	assert.Equal(t, 100, ins.Requested)

	assert.Equal(t, 15, e.level(t, p.ID, e.warehouse.ID))
	assert.Len(t, e.ledger(t, p.ID), 2, "un rechazo no debe dejar entrada en el libro")
}

func TestAdjust_ProductoSinNivelCreaNivelEnCero(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-002")

	_, err := e.adjust(t, p.ID, entity.TransactionTypeOUT, "", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	product, err := e.store.Products().GetByID(context.Background(), e.company.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
	assert.Empty(t, e.ledger(t, p.ID))
}

func TestAdjust_AjusteRequiereDireccion(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-003")

	_, err := e.adjust(t, p.ID, entity.TransactionTypeADJUSTMENT, "", 3)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.adjust(t, p.ID, entity.TransactionTypeADJUSTMENT, entity.DirectionIncrease, 3)
	require.NoError(t, err)
	_, err = e.adjust(t, p.ID, entity.TransactionTypeADJUSTMENT, entity.DirectionDecrease, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, e.level(t, p.ID, e.warehouse.ID))
}

func TestAdjust_ValidaCantidadYTipo(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-004")

	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = e.adjust(t, p.ID, "TRANSFER", "", 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdjust_ProductoDeOtraEmpresaEsNotFound(t *testing.T) {
	e := newEnv(t)
	other := newEnv(t)
	foreign := other.addProduct(t, "SKU-AJENO")

	_, err := e.adjust(t, foreign.ID, entity.TransactionTypeIN, "", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_PrincipalVacioEsNoAutorizado(t *testing.T) {
	e := newEnv(t)
	_, err := e.agg.Adjust(context.Background(), domain.Principal{}, inventory.Movement{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ─────────────────────────────────────────────────────────────────────────────
// Invariante de conciliación y concurrencia
// ─────────────────────────────────────────────────────────────────────────────

func TestAdjust_NivelIgualASumaFirmadaDelLibro(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-005")

	steps := []struct {
		txType, direction string
		qty               int
	}{
		{entity.TransactionTypeIN, "", 30},
		{entity.TransactionTypeOUT, "", 7},
		{entity.TransactionTypeADJUSTMENT, entity.DirectionDecrease, 4},
		{entity.TransactionTypeOUT, "", 50}, // rechazado
		{entity.TransactionTypeADJUSTMENT, entity.DirectionIncrease, 11},
		{entity.TransactionTypeOUT, "", 30},
	}
	for _, s := range steps {
		_, _ = e.adjust(t, p.ID, s.txType, s.direction, s.qty)
	}

	sum := 0
	for _, tx := range e.ledger(t, p.ID) {
		sum += tx.SignedQuantity()
	}
	assert.Equal(t, sum, e.level(t, p.ID, e.warehouse.ID))
	assert.Equal(t, 0, sum)

	rec, err := e.reports.Reconciliation(context.Background(), e.principal)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
}

// Cantidades que no caben en las columnas INTEGER son errores de validación, no fallas internas.
func TestAdjust_CantidadFueraDeRango(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-OVER")

	over := invdomain.MaxQuantity
	over++
	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", over)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, e.ledger(t, p.ID))

	_, err = e.adjust(t, p.ID, entity.TransactionTypeIN, "", invdomain.MaxQuantity-5)
	require.NoError(t, err)

	_, err = e.adjust(t, p.ID, entity.TransactionTypeIN, "", 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrInternal)
	assert.Equal(t, invdomain.MaxQuantity-5, e.level(t, p.ID, e.warehouse.ID))
	assert.Len(t, e.ledger(t, p.ID), 1, "un rechazo no debe dejar entrada en el libro")
}

func TestAdjust_ConcurrentesNoPierdenActualizaciones(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-006")
	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 200)
	require.NoError(t, err)

	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 10)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := e.adjust(t, p.ID, entity.TransactionTypeOUT, "", 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 200+rounds*(10-3), e.level(t, p.ID, e.warehouse.ID))
	assert.Len(t, e.ledger(t, p.ID), 1+2*rounds)
}

// ─────────────────────────────────────────────────────────────────────────────
// Rollback y alertas
// ─────────────────────────────────────────────────────────────────────────────

func TestAdjustInTx_ErrorPosteriorRevierteNivelYLibro(t *testing.T) {
	e := newEnv(t)
	p := e.addProduct(t, "SKU-007")
	boom := errors.New("falla posterior")

	err := e.store.Run(context.Background(), func(repos repository.TxRepositories) error {
		_, err := e.agg.AdjustInTx(context.Background(), repos, e.principal, inventory.Movement{
			ProductID:   p.ID,
			WarehouseID: e.warehouse.ID,
			Type:        entity.TransactionTypeIN,
			Quantity:    9,
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, e.level(t, p.ID, e.warehouse.ID))
	assert.Empty(t, e.ledger(t, p.ID))
}

func TestAdjust_AlertaDeStockBajoTrasCommit(t *testing.T) {
	e := newEnv(t)
	e.company.Email = "bodega@tienda.co"
	require.NoError(t, e.store.Companies().Update(context.Background(), e.company))
	p := e.addProduct(t, "SKU-008")

	_, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, e.mailer.count())

	_, err = e.adjust(t, p.ID, entity.TransactionTypeOUT, "", 45)
	require.NoError(t, err)
	require.Equal(t, 1, e.mailer.count())
	assert.Equal(t, "bodega@tienda.co", e.mailer.sent[0].To)
	assert.Equal(t, "low-stock", e.mailer.sent[0].Template)
	assert.Equal(t, p.Name, e.mailer.sent[0].Data["ProductName"])
	assert.Equal(t, 5, e.mailer.sent[0].Data["Quantity"])
}

func TestAdjust_FallaDelCorreoNoFallaElAjuste(t *testing.T) {
	e := newEnv(t)
	e.company.Email = "bodega@tienda.co"
	require.NoError(t, e.store.Companies().Update(context.Background(), e.company))
	e.mailer.err = errors.New("smtp caído")
	p := e.addProduct(t, "SKU-009")

	res, err := e.adjust(t, p.ID, entity.TransactionTypeIN, "", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Level.Quantity)
}
