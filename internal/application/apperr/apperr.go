// Package apperr traduce fallas inesperadas de persistencia a domain.ErrInternal dejando rastro en el log.
package apperr

import (
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// Wrap devuelve err tal cual si es un error de dominio. Si no, lo registra con la operación
// y los ids (pares clave, valor) y lo envuelve con domain.Internal.
func Wrap(log *logger.Logger, op string, err error, kv ...string) error {
	if err == nil || domain.IsDomainError(err) {
		return err
	}
	if log != nil {
		ev := log.Error().Err(err).Str("op", op)
		for i := 0; i+1 < len(kv); i += 2 {
			ev = ev.Str(kv[i], kv[i+1])
		}
		ev.Msg("falla inesperada de persistencia")
	}
	return domain.Internal(op, err)
}
