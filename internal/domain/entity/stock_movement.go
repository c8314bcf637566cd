package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementKindIN  = "IN"  // entrada
	MovementKindOUT = "OUT" // salida
)

// Tipos de documento que originan un movimiento.
const (
	ReferenceKindReceipt        = "RECEIPT"         // ingreso de proveedor
	ReferenceKindProjectIssue   = "PROJECT_ISSUE"   // salida a proyecto
	ReferenceKindProjectReturn  = "PROJECT_RETURN"  // devolución desde proyecto
	ReferenceKindSupplierReturn = "SUPPLIER_RETURN" // devolución a proveedor
)

// MovementReference identifica el documento que causó el movimiento.
type MovementReference struct {
	Kind string // RECEIPT, PROJECT_ISSUE, PROJECT_RETURN, SUPPLIER_RETURN
	ID   string // ID del documento origen
}

// StockMovement es el registro inmutable de un cambio de cantidad: una vez
// creado nunca se modifica ni se borra. Es la fuente histórica de verdad;
// (Stock, AverageCost) del producto debe ser siempre el fold de sus movimientos.
// CostBefore/CostAfter van a 4 decimales (tomados del valor intermedio sin
// redondear) para que la trazabilidad no acumule error de redondeo.
type StockMovement struct {
	ID            string
	ProductID     string
	Kind          string // IN | OUT
	Quantity      int64  // siempre positivo; Kind indica la dirección
	UnitCost      *decimal.Decimal // nulo en salidas cuando no se registra costo
	CostBefore    decimal.Decimal  // PPP antes del movimiento, 4 decimales
	CostAfter     decimal.Decimal  // PPP después del movimiento, 4 decimales
	ReferenceKind string
	ReferenceID   string
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
