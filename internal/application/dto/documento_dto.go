package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngresoLineaRequest una línea de ingreso. El producto se resuelve por
// ProductID o por SKU; si no existe y el ingreso lo permite, se crea con los
// datos de NuevoProducto (solo en ingresos).
type IngresoLineaRequest struct {
	ProductID     string                `json:"product_id,omitempty"`
	SKU           string                `json:"sku,omitempty"`
	Cantidad      int64                 `json:"cantidad"`
	CostoUnitario decimal.Decimal       `json:"costo_unitario"`
	NuevoProducto *CreateProductRequest `json:"nuevo_producto,omitempty"`
}

// CreateIngresoRequest body para POST /api/ingresos.
type CreateIngresoRequest struct {
	Proveedor  string                `json:"proveedor"`
	NumFactura string                `json:"num_factura,omitempty"`
	Notas      string                `json:"notas,omitempty"`
	Lineas     []IngresoLineaRequest `json:"lineas"`
}

// ProyectoLineaRequest una línea de salida o devolución de proyecto.
type ProyectoLineaRequest struct {
	ProductID string `json:"product_id,omitempty"`
	SKU       string `json:"sku,omitempty"`
	Cantidad  int64  `json:"cantidad"`
}

// CreateMovimientoProyectoRequest body para POST /api/proyectos/movimientos.
// Tipo SALIDA o DEVOLUCION; ModoDevolucion SIMPLE o PONDERADA (solo devoluciones).
type CreateMovimientoProyectoRequest struct {
	ProyectoID       string                 `json:"proyecto_id"`
	Tipo             string                 `json:"tipo"`
	ModoDevolucion   string                 `json:"modo_devolucion,omitempty"`
	PermitirNegativo bool                   `json:"permitir_negativo,omitempty"`
	Notas            string                 `json:"notas,omitempty"`
	Lineas           []ProyectoLineaRequest `json:"lineas"`
}

// CreateDevolucionProveedorRequest body para POST /api/devoluciones-proveedor.
type CreateDevolucionProveedorRequest struct {
	Proveedor string                 `json:"proveedor"`
	Motivo    string                 `json:"motivo,omitempty"`
	Lineas    []ProyectoLineaRequest `json:"lineas"`
}

// LineaResultDTO resultado de una línea procesada por el motor de costeo.
type LineaResultDTO struct {
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	MovementID string          `json:"movement_id"`
	StockAfter int64           `json:"stock_after"`
	CostAfter  decimal.Decimal `json:"cost_after"`
}

// DocumentoResponse resultado de procesar un documento completo.
type DocumentoResponse struct {
	DocumentID string           `json:"document_id"`
	Lineas     []LineaResultDTO `json:"lineas"`
	CreatedAt  time.Time        `json:"created_at"`
}

// IngresoLineaDTO una línea de ingreso en respuestas de consulta.
type IngresoLineaDTO struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Cantidad      int64           `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

// IngresoDTO un ingreso en respuestas de consulta. Lineas va vacío en listados.
type IngresoDTO struct {
	ID         string            `json:"id"`
	Proveedor  string            `json:"proveedor"`
	NumFactura string            `json:"num_factura,omitempty"`
	Notas      string            `json:"notas,omitempty"`
	Lineas     []IngresoLineaDTO `json:"lineas,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	CreatedBy  string            `json:"created_by,omitempty"`
}

// DocumentoLineaDTO una línea de movimiento de proyecto o devolución.
type DocumentoLineaDTO struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Cantidad  int64  `json:"cantidad"`
}

// MovimientoProyectoDTO un movimiento de proyecto en respuestas de consulta.
type MovimientoProyectoDTO struct {
	ID             string              `json:"id"`
	ProyectoID     string              `json:"proyecto_id"`
	Tipo           string              `json:"tipo"`
	ModoDevolucion string              `json:"modo_devolucion,omitempty"`
	Notas          string              `json:"notas,omitempty"`
	Lineas         []DocumentoLineaDTO `json:"lineas,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	CreatedBy      string              `json:"created_by,omitempty"`
}

// DevolucionProveedorDTO una devolución a proveedor en respuestas de consulta.
type DevolucionProveedorDTO struct {
	ID        string              `json:"id"`
	Proveedor string              `json:"proveedor"`
	Motivo    string              `json:"motivo,omitempty"`
	Lineas    []DocumentoLineaDTO `json:"lineas,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	CreatedBy string              `json:"created_by,omitempty"`
}

// MovementDTO representación de un movimiento del kardex.
type MovementDTO struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Kind          string           `json:"kind"`
	Quantity      int64            `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	CostBefore    decimal.Decimal  `json:"cost_before"`
	CostAfter     decimal.Decimal  `json:"cost_after"`
	ReferenceKind string           `json:"reference_kind"`
	ReferenceID   string           `json:"reference_id"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ConsistenciaResponse resultado de verificar un producto contra su kardex.
type ConsistenciaResponse struct {
	ProductID         string          `json:"product_id"`
	Consistente       bool            `json:"consistente"`
	StockActual       int64           `json:"stock_actual"`
	StockCalculado    int64           `json:"stock_calculado"`
	CostoActual       decimal.Decimal `json:"costo_actual"`
	CostoCalculado    decimal.Decimal `json:"costo_calculado"`
	MovimientosLeidos int             `json:"movimientos_leidos"`
}
