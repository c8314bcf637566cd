package entity

import "time"

// Tipos de movimiento de proyecto.
const (
	ProyectoTipoSalida     = "SALIDA"     // material que sale hacia un proyecto
	ProyectoTipoDevolucion = "DEVOLUCION" // material que vuelve de un proyecto
)

// Modos de devolución desde proyecto.
const (
	// DevolucionSimple reingresa al PPP vigente sin tocarlo.
	DevolucionModoSimple = "SIMPLE"
	// DevolucionPonderada mezcla el costo de la última salida al proyecto
	// en el promedio, como si fuera una compra.
	DevolucionModoPonderada = "PONDERADA"
)

// MovimientoProyecto documento de salida o devolución de material contra un proyecto.
type MovimientoProyecto struct {
	ID             string
	ProyectoID     string
	Tipo           string // SALIDA | DEVOLUCION
	ModoDevolucion string // SIMPLE | PONDERADA (solo para DEVOLUCION)
	Notas          string
	Lineas         []MovimientoProyectoLinea
	CreatedAt      time.Time
	CreatedBy      string
}

// MovimientoProyectoLinea una línea: producto y cantidad.
type MovimientoProyectoLinea struct {
	ID           string
	MovimientoID string
	ProductID    string
	Cantidad     int64
}
