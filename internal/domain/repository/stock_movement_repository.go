package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el kardex.
// La tabla es append-only: no existen Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct lista movimientos de un producto, más antiguos primero
	// (orden de replay para verificar consistencia).
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(referenceKind, referenceID string) ([]*entity.StockMovement, error)
	// UltimoCostoSalida devuelve el costo unitario de la última salida del
	// producto hacia un proyecto (para devoluciones ponderadas). Nil si no hay
	// salidas previas con costo registrado.
	UltimoCostoSalida(productID, proyectoID string) (*decimal.Decimal, error)
}
