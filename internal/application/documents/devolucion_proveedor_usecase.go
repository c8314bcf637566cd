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

// DevolucionProveedorUseCase procesa devoluciones de mercancía al proveedor.
// Cada línea es una salida al PPP vigente con el costo registrado (la nota
// crédito lo necesita); nunca se permite dejar stock negativo.
type DevolucionProveedorUseCase struct {
	txRunner costing.TxRunner
	engine   *costing.Engine
}

// NewDevolucionProveedorUseCase construye el caso de uso.
func NewDevolucionProveedorUseCase(txRunner costing.TxRunner, engine *costing.Engine) *DevolucionProveedorUseCase {
	return &DevolucionProveedorUseCase{txRunner: txRunner, engine: engine}
}

// Crear valida y procesa el documento completo en una transacción.
func (uc *DevolucionProveedorUseCase) Crear(ctx context.Context, userID string, in dto.CreateDevolucionProveedorRequest) (*dto.DocumentoResponse, error) {
	if in.Proveedor == "" {
		return nil, &domain.ValidationError{Campo: "proveedor", Motivo: "es requerido"}
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
	dev := &entity.DevolucionProveedor{
		ID:        uuid.New().String(),
		Proveedor: in.Proveedor,
		Motivo:    in.Motivo,
		CreatedAt: now,
		CreatedBy: userID,
	}
	ref := entity.MovementReference{Kind: entity.ReferenceKindSupplierReturn, ID: dev.ID}

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

			dev.Lineas = append(dev.Lineas, entity.DevolucionProveedorLinea{
				ID:           uuid.New().String(),
				DevolucionID: dev.ID,
				ProductID:    product.ID,
				Cantidad:     l.Cantidad,
			})

			res, err := uc.engine.Consumir(r.Products, r.Movements, product.ID, l.Cantidad, ref, userID, costing.ConsumoOpts{
				RegistrarCosto: true,
			})
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
		return r.Devoluciones.Create(dev)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DocumentoResponse{DocumentID: dev.ID, Lineas: resultados, CreatedAt: now}, nil
}
