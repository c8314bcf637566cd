package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// IngresoRepository persistencia de encabezados y líneas de ingresos.
type IngresoRepository interface {
	Create(ingreso *entity.Ingreso) error
	GetByID(id string) (*entity.Ingreso, error)
	List(limit, offset int) ([]*entity.Ingreso, error)
}

// MovimientoProyectoRepository persistencia de salidas/devoluciones de proyecto.
type MovimientoProyectoRepository interface {
	Create(mov *entity.MovimientoProyecto) error
	GetByID(id string) (*entity.MovimientoProyecto, error)
	ListByProyecto(proyectoID string, limit, offset int) ([]*entity.MovimientoProyecto, error)
}

// DevolucionProveedorRepository persistencia de devoluciones a proveedor.
type DevolucionProveedorRepository interface {
	Create(dev *entity.DevolucionProveedor) error
	GetByID(id string) (*entity.DevolucionProveedor, error)
	List(limit, offset int) ([]*entity.DevolucionProveedor, error)
}
