package documents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/costing"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// MovimientoProyectoUseCase procesa salidas y devoluciones de material contra
// un proyecto. Las salidas consumen al PPP vigente; las devoluciones pueden
// reingresar sin tocar el promedio (SIMPLE) o mezclando el costo de la última
// salida al mismo proyecto (PONDERADA). La elección es del documento, no del
// motor: ambas rutas llaman operaciones con nombre propio del Engine.
type MovimientoProyectoUseCase struct {
	txRunner costing.TxRunner
	engine   *costing.Engine
}

// NewMovimientoProyectoUseCase construye el caso de uso.
func NewMovimientoProyectoUseCase(txRunner costing.TxRunner, engine *costing.Engine) *MovimientoProyectoUseCase {
	return &MovimientoProyectoUseCase{txRunner: txRunner, engine: engine}
}

// Crear valida y procesa el documento completo en una transacción.
func (uc *MovimientoProyectoUseCase) Crear(ctx context.Context, userID string, in dto.CreateMovimientoProyectoRequest) (*dto.DocumentoResponse, error) {
	if in.ProyectoID == "" {
		return nil, &domain.ValidationError{Campo: "proyecto_id", Motivo: "es requerido"}
	}
	modo := in.ModoDevolucion
	switch in.Tipo {
	case entity.ProyectoTipoSalida:
		// sin modo
	case entity.ProyectoTipoDevolucion:
		if modo == "" {
			modo = entity.DevolucionModoSimple
		}
		if modo != entity.DevolucionModoSimple && modo != entity.DevolucionModoPonderada {
			return nil, &domain.ValidationError{Campo: "modo_devolucion", Motivo: "debe ser SIMPLE o PONDERADA"}
		}
	default:
		return nil, &domain.ValidationError{Campo: "tipo", Motivo: "debe ser SALIDA o DEVOLUCION"}
	}
	if len(in.Lineas) == 0 {
		return nil, &domain.ValidationError{Campo: "lineas", Motivo: "el documento no tiene líneas"}
	}
	for i, l := range in.Lineas {
		if l.Cantidad <= 0 {
			return nil, &domain.ValidationError{Linea: i + 1, Campo: "cantidad", Motivo: "debe ser mayor que cero"}
		}
		if l.ProductID == "" && l.SKU == "" {
			return nil, &domain.ValidationError{Linea: i + 1, Campo: "product_id", Motivo: "o sku es requerido"}
		}
	}

	now := time.Now()
	mov := &entity.MovimientoProyecto{
		ID:             uuid.New().String(),
		ProyectoID:     in.ProyectoID,
		Tipo:           in.Tipo,
		ModoDevolucion: modo,
		Notas:          in.Notas,
		CreatedAt:      now,
		CreatedBy:      userID,
	}

	refKind := entity.ReferenceKindProjectIssue
	if in.Tipo == entity.ProyectoTipoDevolucion {
		refKind = entity.ReferenceKindProjectReturn
	}
	ref := entity.MovementReference{Kind: refKind, ID: mov.ID}

	var resultados []dto.LineaResultDTO
	err := uc.txRunner.Run(ctx, func(r costing.Repos) error {
		for i, l := range in.Lineas {
			product, err := resolverProducto(r.Products, l.ProductID, l.SKU)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			mov.Lineas = append(mov.Lineas, entity.MovimientoProyectoLinea{
				ID:           uuid.New().String(),
				MovimientoID: mov.ID,
				ProductID:    product.ID,
				Cantidad:     l.Cantidad,
			})

			var res *costing.MovementResult
			switch {
			case in.Tipo == entity.ProyectoTipoSalida:
				res, err = uc.engine.Consumir(r.Products, r.Movements, product.ID, l.Cantidad, ref, userID, costing.ConsumoOpts{
					PermitirNegativo: in.PermitirNegativo,
					RegistrarCosto:   true,
				})
			case modo == entity.DevolucionModoPonderada:
				// Costo de la última salida de este producto al mismo proyecto.
				// Si nunca salió con costo registrado no hay nada que mezclar:
				// se reingresa al PPP vigente, que el motor lee bajo lock (la
				// lectura de resolverProducto va fuera de la fila bloqueada y
				// puede venir desactualizada).
				costo, lerr := r.Movements.UltimoCostoSalida(product.ID, in.ProyectoID)
				if lerr != nil {
					return lerr
				}
				if costo == nil {
					res, err = uc.engine.DevolucionSimple(r.Products, r.Movements, product.ID, l.Cantidad, ref, userID)
				} else {
					res, err = uc.engine.DevolucionPonderada(r.Products, r.Movements, product.ID, l.Cantidad, *costo, ref, userID)
				}
			default:
				res, err = uc.engine.DevolucionSimple(r.Products, r.Movements, product.ID, l.Cantidad, ref, userID)
			}
			if err != nil {
				return lineaError(i+1, err)
			}
			resultados = append(resultados, dto.LineaResultDTO{
				ProductID:  product.ID,
				SKU:        product.SKU,
				MovementID: res.Movement.ID,
				StockAfter: res.StockAfter,
				CostAfter:  res.CostAfter,
			})
		}
		return r.Proyectos.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DocumentoResponse{DocumentID: mov.ID, Lineas: resultados, CreatedAt: now}, nil
}
