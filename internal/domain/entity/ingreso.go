package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingreso es el documento de entrada de mercancía desde un proveedor.
// El encabezado es propiedad de la capa CRUD; cada línea, al procesarse,
// dispara exactamente una operación de costeo y un StockMovement.
type Ingreso struct {
	ID         string
	Proveedor  string
	NumFactura string // número de factura del proveedor, opcional
	Notas      string
	Lineas     []IngresoLinea
	CreatedAt  time.Time
	CreatedBy  string
}

// IngresoLinea una línea del ingreso: producto, cantidad y costo unitario de compra.
type IngresoLinea struct {
	ID            string
	IngresoID     string
	ProductID     string
	Cantidad      int64
	CostoUnitario decimal.Decimal
}
