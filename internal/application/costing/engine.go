package costing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/costing"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Engine es el motor de costeo: única pieza que muta (Stock, AverageCost) de
// un producto, siempre en pareja con exactamente un StockMovement. Todas las
// operaciones asumen que los repos recibidos están atados a la transacción del
// caller; la lectura bloquea la fila (GetForUpdate) para que dos recepciones
// concurrentes del mismo producto no pierdan una actualización.
type Engine struct{}

// NewEngine construye el motor. No guarda estado: los repos llegan por llamada
// porque pertenecen a la tx del documento en curso.
func NewEngine() *Engine {
	return &Engine{}
}

// MovementResult resultado de una operación de costeo.
type MovementResult struct {
	Movement   *entity.StockMovement
	StockAfter int64
	CostAfter  decimal.Decimal // PPP como queda persistido (2 decimales)
}

// ConsumoOpts opciones de una salida de stock.
type ConsumoOpts struct {
	// PermitirNegativo deja que el stock quede bajo cero (ajustes excepcionales).
	PermitirNegativo bool
	// RegistrarCosto estampa el PPP vigente como unit_cost del movimiento OUT.
	// Apagado, el movimiento guarda unit_cost nulo. Ambos comportamientos
	// existen en producción; la elección es del documento que llama.
	RegistrarCosto bool
}

// RecibirCompra registra una entrada de compra y recalcula el precio promedio
// ponderado. Es la única operación que cambia AverageCost.
//
//	stockAfter = stockBefore + cantidad
//	costoAfter = costoUnitario                                  si stockBefore == 0
//	           = (stockBefore*costoBefore + cantidad*costoUnitario) / stockAfter
//
// El producto persiste Round2(costoAfter); el kardex guarda Round4 del valor
// intermedio sin redondear, para no acumular error entre compras sucesivas.
// El costo unitario debe venir con máximo 2 decimales: el movimiento lo guarda
// tal cual, y el replay del kardex mezcla exactamente el valor que mezcló el
// motor.
func (e *Engine) RecibirCompra(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	productID string,
	cantidad int64,
	costoUnitario decimal.Decimal,
	ref entity.MovementReference,
	userID string,
) (*MovementResult, error) {
	if cantidad <= 0 {
		return nil, &domain.ValidationError{Campo: "cantidad", Motivo: "debe ser mayor que cero"}
	}
	if costoUnitario.IsNegative() {
		return nil, &domain.ValidationError{Campo: "costo_unitario", Motivo: "no puede ser negativo"}
	}
	if !costing.EsImporte(costoUnitario) {
		return nil, &domain.ValidationError{Campo: "costo_unitario", Motivo: "admite máximo 2 decimales"}
	}

	product, err := products.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	costoBefore := product.AverageCost
	costoAfterRaw := costing.CostoPromedio(product.Stock, costoBefore, cantidad, costoUnitario)
	stockAfter := product.Stock + cantidad
	costoAfter := costing.Round2(costoAfterRaw)

	if err := products.UpdateLedger(productID, stockAfter, costoAfter); err != nil {
		return nil, err
	}

	unitCost := costoUnitario
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Kind:          entity.MovementKindIN,
		Quantity:      cantidad,
		UnitCost:      &unitCost,
		CostBefore:    costing.Round4(costoBefore),
		CostAfter:     costing.Round4(costoAfterRaw),
		ReferenceKind: ref.Kind,
		ReferenceID:   ref.ID,
		CreatedAt:     time.Now(),
		CreatedBy:     userID,
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, StockAfter: stockAfter, CostAfter: costoAfter}, nil
}

// Consumir registra una salida de stock sin tocar el PPP. Falla con
// InsufficientStockError si la salida dejaría el stock negativo, salvo que
// opts.PermitirNegativo esté activo.
func (e *Engine) Consumir(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	productID string,
	cantidad int64,
	ref entity.MovementReference,
	userID string,
	opts ConsumoOpts,
) (*MovementResult, error) {
	if cantidad <= 0 {
		return nil, &domain.ValidationError{Campo: "cantidad", Motivo: "debe ser mayor que cero"}
	}

	product, err := products.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if !opts.PermitirNegativo && product.Stock < cantidad {
		return nil, &domain.InsufficientStockError{
			ProductID:  product.ID,
			SKU:        product.SKU,
			Disponible: product.Stock,
			Solicitado: cantidad,
		}
	}

	stockAfter := product.Stock - cantidad
	if err := products.UpdateLedger(productID, stockAfter, product.AverageCost); err != nil {
		return nil, err
	}

	var unitCost *decimal.Decimal
	if opts.RegistrarCosto {
		c := product.AverageCost
		unitCost = &c
	}
	costo4 := costing.Round4(product.AverageCost)
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Kind:          entity.MovementKindOUT,
		Quantity:      cantidad,
		UnitCost:      unitCost,
		CostBefore:    costo4,
		CostAfter:     costo4,
		ReferenceKind: ref.Kind,
		ReferenceID:   ref.ID,
		CreatedAt:     time.Now(),
		CreatedBy:     userID,
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, StockAfter: stockAfter, CostAfter: product.AverageCost}, nil
}

// DevolucionSimple reingresa material al PPP vigente sin alterarlo (el retorno
// de un proyecto no debe distorsionar el promedio de compras).
func (e *Engine) DevolucionSimple(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	productID string,
	cantidad int64,
	ref entity.MovementReference,
	userID string,
) (*MovementResult, error) {
	if cantidad <= 0 {
		return nil, &domain.ValidationError{Campo: "cantidad", Motivo: "debe ser mayor que cero"}
	}

	product, err := products.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	stockAfter := product.Stock + cantidad
	if err := products.UpdateLedger(productID, stockAfter, product.AverageCost); err != nil {
		return nil, err
	}

	unitCost := product.AverageCost
	costo4 := costing.Round4(product.AverageCost)
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Kind:          entity.MovementKindIN,
		Quantity:      cantidad,
		UnitCost:      &unitCost,
		CostBefore:    costo4,
		CostAfter:     costo4,
		ReferenceKind: ref.Kind,
		ReferenceID:   ref.ID,
		CreatedAt:     time.Now(),
		CreatedBy:     userID,
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, StockAfter: stockAfter, CostAfter: product.AverageCost}, nil
}

// DevolucionPonderada reingresa material mezclando un costo histórico en el
// promedio. Semánticamente equivale a RecibirCompra con ese costo; se mantiene
// como operación con nombre propio porque el documento que la usa (devolución
// de proyecto en modo ponderado) es distinto de un ingreso.
func (e *Engine) DevolucionPonderada(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	productID string,
	cantidad int64,
	costo decimal.Decimal,
	ref entity.MovementReference,
	userID string,
) (*MovementResult, error) {
	return e.RecibirCompra(products, movements, productID, cantidad, costo, ref, userID)
}
