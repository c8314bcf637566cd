package documents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/costing"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// IngresoUseCase procesa ingresos de proveedor: todas las líneas dentro de una
// transacción, una operación RecibirCompra (y por tanto un movimiento) por
// línea. Si cualquier línea falla, el documento completo se revierte.
// Es el único documento que puede auto-crear productos (stock 0, costo 0).
type IngresoUseCase struct {
	txRunner costing.TxRunner
	engine   *costing.Engine
}

// NewIngresoUseCase construye el caso de uso.
func NewIngresoUseCase(txRunner costing.TxRunner, engine *costing.Engine) *IngresoUseCase {
	return &IngresoUseCase{txRunner: txRunner, engine: engine}
}

// Crear valida el documento, ejecuta todas las líneas en una transacción y
// devuelve el resultado por línea. Reprocesar el mismo request crea un ingreso
// nuevo y duplica el efecto en stock: el motor no garantiza idempotencia.
func (uc *IngresoUseCase) Crear(ctx context.Context, userID string, in dto.CreateIngresoRequest) (*dto.DocumentoResponse, error) {
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
		if l.CostoUnitario.IsNegative() {
			return nil, &domain.ValidationError{Linea: i + 1, Campo: "costo_unitario", Motivo: "no puede ser negativo"}
		}
		if l.ProductID == "" && l.SKU == "" {
			return nil, &domain.ValidationError{Linea: i + 1, Campo: "product_id", Motivo: "o sku es requerido"}
		}
	}

	now := time.Now()
	ingreso := &entity.Ingreso{
		ID:         uuid.New().String(),
		Proveedor:  in.Proveedor,
		NumFactura: in.NumFactura,
		Notas:      in.Notas,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	ref := entity.MovementReference{Kind: entity.ReferenceKindReceipt, ID: ingreso.ID}

	var resultados []dto.LineaResultDTO
	err := uc.txRunner.Run(ctx, func(r costing.Repos) error {
		for i, l := range in.Lineas {
			product, err := resolverProducto(r.Products, l.ProductID, l.SKU)
			if err != nil {
				return err
			}
			if product == nil {
				// Auto-creación: solo ingresos pueden dar de alta un SKU nuevo.
				product, err = crearProductoDeLinea(r.Products, l, now)
				if err != nil {
					return lineaError(i+1, err)
				}
			}

			ingreso.Lineas = append(ingreso.Lineas, entity.IngresoLinea{
				ID:            uuid.New().String(),
				IngresoID:     ingreso.ID,
				ProductID:     product.ID,
				Cantidad:      l.Cantidad,
				CostoUnitario: l.CostoUnitario,
			})

			res, err := uc.engine.RecibirCompra(r.Products, r.Movements, product.ID, l.Cantidad, l.CostoUnitario, ref, userID)
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
		return r.Ingresos.Create(ingreso)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DocumentoResponse{DocumentID: ingreso.ID, Lineas: resultados, CreatedAt: now}, nil
}

// resolverProducto busca por ID y si no, por SKU. Nil sin error = no existe.
func resolverProducto(products repository.ProductRepository, productID, sku string) (*entity.Product, error) {
	if productID != "" {
		p, err := products.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrProductNotFound
		}
		return p, nil
	}
	return products.GetBySKU(sku)
}

// crearProductoDeLinea da de alta el producto referido por una línea de ingreso.
func crearProductoDeLinea(products repository.ProductRepository, l dto.IngresoLineaRequest, now time.Time) (*entity.Product, error) {
	nuevo := l.NuevoProducto
	if nuevo == nil {
		return nil, &domain.ValidationError{Campo: "nuevo_producto", Motivo: "es requerido para un SKU inexistente"}
	}
	sku := l.SKU
	if sku == "" {
		sku = nuevo.SKU
	}
	if sku == "" || nuevo.Name == "" {
		return nil, &domain.ValidationError{Campo: "nuevo_producto", Motivo: "requiere sku y name"}
	}
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       sku,
		Barcode:   nuevo.Barcode,
		Name:      nuevo.Name,
		Brand:     nuevo.Brand,
		Category:  nuevo.Category,
		Location:  nuevo.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := products.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// lineaError anota el número de línea en errores de validación; el resto pasa tal cual.
func lineaError(linea int, err error) error {
	if ve, ok := err.(*domain.ValidationError); ok && ve.Linea == 0 {
		return &domain.ValidationError{Linea: linea, Campo: ve.Campo, Motivo: ve.Motivo}
	}
	return err
}
