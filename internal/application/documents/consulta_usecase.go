package documents

import (
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ConsultaUseCase lectura de documentos ya procesados. Trabaja sobre repos
// atados al pool (no hay escrituras, no necesita transacción).
type ConsultaUseCase struct {
	ingresos     repository.IngresoRepository
	proyectos    repository.MovimientoProyectoRepository
	devoluciones repository.DevolucionProveedorRepository
}

// NewConsultaUseCase construye el caso de uso.
func NewConsultaUseCase(
	ingresos repository.IngresoRepository,
	proyectos repository.MovimientoProyectoRepository,
	devoluciones repository.DevolucionProveedorRepository,
) *ConsultaUseCase {
	return &ConsultaUseCase{ingresos: ingresos, proyectos: proyectos, devoluciones: devoluciones}
}

// GetIngreso obtiene un ingreso con sus líneas. Nil si no existe.
func (uc *ConsultaUseCase) GetIngreso(id string) (*dto.IngresoDTO, error) {
	ing, err := uc.ingresos.GetByID(id)
	if err != nil || ing == nil {
		return nil, err
	}
	return toIngresoDTO(ing), nil
}

// ListIngresos lista ingresos (solo encabezados), más recientes primero.
func (uc *ConsultaUseCase) ListIngresos(page dto.PageRequest) ([]dto.IngresoDTO, error) {
	page.Normalizar()
	list, err := uc.ingresos.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngresoDTO, 0, len(list))
	for _, ing := range list {
		out = append(out, *toIngresoDTO(ing))
	}
	return out, nil
}

// GetMovimientoProyecto obtiene un movimiento con sus líneas. Nil si no existe.
func (uc *ConsultaUseCase) GetMovimientoProyecto(id string) (*dto.MovimientoProyectoDTO, error) {
	mov, err := uc.proyectos.GetByID(id)
	if err != nil || mov == nil {
		return nil, err
	}
	return toMovimientoProyectoDTO(mov), nil
}

// ListMovimientosProyecto lista los movimientos de un proyecto, más recientes primero.
func (uc *ConsultaUseCase) ListMovimientosProyecto(proyectoID string, page dto.PageRequest) ([]dto.MovimientoProyectoDTO, error) {
	page.Normalizar()
	list, err := uc.proyectos.ListByProyecto(proyectoID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoProyectoDTO, 0, len(list))
	for _, mov := range list {
		out = append(out, *toMovimientoProyectoDTO(mov))
	}
	return out, nil
}

// GetDevolucion obtiene una devolución con sus líneas. Nil si no existe.
func (uc *ConsultaUseCase) GetDevolucion(id string) (*dto.DevolucionProveedorDTO, error) {
	dev, err := uc.devoluciones.GetByID(id)
	if err != nil || dev == nil {
		return nil, err
	}
	return toDevolucionDTO(dev), nil
}

// ListDevoluciones lista devoluciones a proveedor, más recientes primero.
func (uc *ConsultaUseCase) ListDevoluciones(page dto.PageRequest) ([]dto.DevolucionProveedorDTO, error) {
	page.Normalizar()
	list, err := uc.devoluciones.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DevolucionProveedorDTO, 0, len(list))
	for _, dev := range list {
		out = append(out, *toDevolucionDTO(dev))
	}
	return out, nil
}

func toIngresoDTO(ing *entity.Ingreso) *dto.IngresoDTO {
	out := &dto.IngresoDTO{
		ID:         ing.ID,
		Proveedor:  ing.Proveedor,
		NumFactura: ing.NumFactura,
		Notas:      ing.Notas,
		CreatedAt:  ing.CreatedAt,
		CreatedBy:  ing.CreatedBy,
	}
	for _, l := range ing.Lineas {
		out.Lineas = append(out.Lineas, dto.IngresoLineaDTO{
			ID:            l.ID,
			ProductID:     l.ProductID,
			Cantidad:      l.Cantidad,
			CostoUnitario: l.CostoUnitario,
		})
	}
	return out
}

func toMovimientoProyectoDTO(mov *entity.MovimientoProyecto) *dto.MovimientoProyectoDTO {
	out := &dto.MovimientoProyectoDTO{
		ID:             mov.ID,
		ProyectoID:     mov.ProyectoID,
		Tipo:           mov.Tipo,
		ModoDevolucion: mov.ModoDevolucion,
		Notas:          mov.Notas,
		CreatedAt:      mov.CreatedAt,
		CreatedBy:      mov.CreatedBy,
	}
	for _, l := range mov.Lineas {
		out.Lineas = append(out.Lineas, dto.DocumentoLineaDTO{
			ID:        l.ID,
			ProductID: l.ProductID,
			Cantidad:  l.Cantidad,
		})
	}
	return out
}

func toDevolucionDTO(dev *entity.DevolucionProveedor) *dto.DevolucionProveedorDTO {
	out := &dto.DevolucionProveedorDTO{
		ID:        dev.ID,
		Proveedor: dev.Proveedor,
		Motivo:    dev.Motivo,
		CreatedAt: dev.CreatedAt,
		CreatedBy: dev.CreatedBy,
	}
	for _, l := range dev.Lineas {
		out.Lineas = append(out.Lineas, dto.DocumentoLineaDTO{
			ID:        l.ID,
			ProductID: l.ProductID,
			Cantidad:  l.Cantidad,
		})
	}
	return out
}
