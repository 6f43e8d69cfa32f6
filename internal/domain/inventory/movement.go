package inventory

import (
	"math"
	"unicode/utf8"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

const (
	// MaxReferenceLength largo máximo de la referencia de un movimiento.
	MaxReferenceLength = 255
	// MaxQuantity tope de cantidades y niveles (columnas INTEGER).
	MaxQuantity = math.MaxInt32
)

// ResolveDirection valida el tipo de movimiento y devuelve su dirección.
// IN siempre incrementa y OUT siempre reduce; ADJUSTMENT exige una dirección explícita.
func ResolveDirection(txType, direction string) (string, error) {
	switch txType {
	case entity.TransactionTypeIN:
		if direction != "" && direction != entity.DirectionIncrease {
			return "", domain.Invalid("un movimiento IN solo puede incrementar el stock")
		}
		return entity.DirectionIncrease, nil
	case entity.TransactionTypeOUT:
		if direction != "" && direction != entity.DirectionDecrease {
			return "", domain.Invalid("un movimiento OUT solo puede reducir el stock")
		}
		return entity.DirectionDecrease, nil
	case entity.TransactionTypeADJUSTMENT:
		if direction != entity.DirectionIncrease && direction != entity.DirectionDecrease {
			return "", domain.Invalid("un ADJUSTMENT requiere direction INCREASE o DECREASE")
		}
		return direction, nil
	default:
		return "", domain.Invalid("tipo de movimiento desconocido %q", txType)
	}
}

// ValidateMovement reglas del libro: cantidad positiva, tipo conocido y referencia acotada.
func ValidateMovement(txType, direction string, quantity int, reference string) (string, error) {
	if quantity <= 0 {
		return "", domain.Invalid("quantity debe ser mayor que 0")
	}
	if quantity > MaxQuantity {
		return "", domain.Invalid("quantity no puede superar %d", MaxQuantity)
	}
	if utf8.RuneCountInString(reference) > MaxReferenceLength {
		return "", domain.Invalid("reference supera %d caracteres", MaxReferenceLength)
	}
	return ResolveDirection(txType, direction)
}

// Apply devuelve la nueva cantidad tras aplicar el movimiento sobre current.
// Falla con InsufficientStockError si el resultado sería negativo y con
// ValidationError si superaría MaxQuantity.
func Apply(level *entity.StockLevel, direction string, quantity int) (int, error) {
	if direction == entity.DirectionIncrease {
		if quantity > MaxQuantity-level.Quantity {
			return 0, domain.Invalid("el nivel superaría el máximo de %d unidades", MaxQuantity)
		}
		return level.Quantity + quantity, nil
	}
	if level.Quantity < quantity {
		return 0, &domain.InsufficientStockError{
			ProductID:   level.ProductID,
			WarehouseID: level.WarehouseID,
			Available:   level.Quantity,
			Requested:   quantity,
		}
	}
	return level.Quantity - quantity, nil
}

// Delta convierte una diferencia de cantidades en (dirección, cantidad positiva). ok=false si delta es 0.
func Delta(delta int) (direction string, quantity int, ok bool) {
	switch {
	case delta > 0:
		return entity.DirectionIncrease, delta, true
	case delta < 0:
		return entity.DirectionDecrease, -delta, true
	default:
		return "", 0, false
	}
}

// Opposite devuelve la dirección contraria (para asientos compensatorios).
func Opposite(direction string) string {
	if direction == entity.DirectionIncrease {
		return entity.DirectionDecrease
	}
	return entity.DirectionIncrease
}
