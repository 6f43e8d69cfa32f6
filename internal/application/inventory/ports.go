package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error
}

// AdjustmentObserver recibe el resultado de cada ajuste (métricas). Opcional.
type AdjustmentObserver interface {
	AdjustmentApplied(txType, direction string, quantity int)
	AdjustmentRejected(txType, reason string)
}

type nopObserver struct{}

func (nopObserver) AdjustmentApplied(string, string, int) {}
func (nopObserver) AdjustmentRejected(string, string)     {}
