package entity

import "time"

// DevolucionProveedor documento de devolución de mercancía al proveedor.
// Siempre es una salida al PPP vigente; nunca permite stock negativo.
type DevolucionProveedor struct {
	ID        string
	Proveedor string
	Motivo    string
	Lineas    []DevolucionProveedorLinea
	CreatedAt time.Time
	CreatedBy string
}

// DevolucionProveedorLinea una línea: producto y cantidad a devolver.
type DevolucionProveedorLinea struct {
	ID           string
	DevolucionID string
	ProductID    string
	Cantidad     int64
}
