package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateLedger es de uso exclusivo del motor de costeo; Update no puede
// tocar Stock ni AverageCost.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para que
	// lectura de (stock, costo) y escritura posterior sean atómicas dentro de la tx.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateLedger escribe el par (stock, costo promedio) calculado por el motor.
	UpdateLedger(productID string, stock int64, averageCost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
