package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/costing"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// KardexUseCase consulta del kardex y verificación de consistencia:
// (Stock, AverageCost) del producto es un cache derivado y debe ser siempre
// igual al fold de todos sus movimientos en orden.
type KardexUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *KardexUseCase {
	return &KardexUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// ListByProduct lista movimientos de un producto (más antiguos primero).
func (uc *KardexUseCase) ListByProduct(productID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementDTO, error) {
	page.Normalizar()
	movs, err := uc.movementRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementDTO{
			ID:            m.ID,
			ProductID:     m.ProductID,
			Kind:          m.Kind,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			CostBefore:    m.CostBefore,
			CostAfter:     m.CostAfter,
			ReferenceKind: m.ReferenceKind,
			ReferenceID:   m.ReferenceID,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// VerificarConsistencia reconstruye (stock, costo) replayando el kardex
// completo del producto y lo compara con el estado persistido.
func (uc *KardexUseCase) VerificarConsistencia(productID string) (*dto.ConsistenciaResponse, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}

	var movs []*entity.StockMovement
	const lote = 500
	for offset := 0; ; offset += lote {
		batch, err := uc.movementRepo.ListByProduct(productID, nil, nil, lote, offset)
		if err != nil {
			return nil, err
		}
		movs = append(movs, batch...)
		if len(batch) < lote {
			break
		}
	}

	stock, costo := ReplayMovimientos(movs)
	return &dto.ConsistenciaResponse{
		ProductID:         productID,
		Consistente:       stock == p.Stock && costo.Equal(p.AverageCost),
		StockActual:       p.Stock,
		StockCalculado:    stock,
		CostoActual:       p.AverageCost,
		CostoCalculado:    costo,
		MovimientosLeidos: len(movs),
	}, nil
}

// ReplayMovimientos reproduce la regla del motor sobre la lista ordenada de
// movimientos: las entradas con costo unitario mezclan promedio (las
// devoluciones simples registran el PPP vigente, así que la mezcla las deja
// igual), las salidas solo restan cantidad.
func ReplayMovimientos(movs []*entity.StockMovement) (int64, decimal.Decimal) {
	var stock int64
	costo := decimal.Zero
	for _, m := range movs {
		switch m.Kind {
		case entity.MovementKindIN:
			if m.UnitCost != nil {
				costo = costing.Round2(costing.CostoPromedio(stock, costo, m.Quantity, *m.UnitCost))
			}
			stock += m.Quantity
		case entity.MovementKindOUT:
			stock -= m.Quantity
		}
	}
	return stock, costo
}
