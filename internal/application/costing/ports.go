package costing

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción de BD.
// El TxRunner los construye sobre la tx y los pasa al callback.
type Repos struct {
	Products     repository.ProductRepository
	Movements    repository.StockMovementRepository
	Ingresos     repository.IngresoRepository
	Proyectos    repository.MovimientoProyectoRepository
	Devoluciones repository.DevolucionProveedorRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad a nivel de documento:
// o se aplican todas las líneas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
