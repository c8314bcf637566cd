package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock y AverageCost son propiedad exclusiva del motor de costeo: el CRUD los
// crea en 0/0 y nunca los toca; solo las operaciones de costeo los mutan.
// AverageCost se persiste redondeado a 2 decimales (precio promedio ponderado).
type Product struct {
	ID          string
	SKU         string  // código único
	Barcode     *string // código de barras, opcional y único si existe
	Name        string
	Brand       string
	Category    string
	Location    string // ubicación descriptiva (estante, bodega); no participa en el ledger
	Stock       int64  // unidades, nunca negativo salvo consumo con PermitirNegativo
	AverageCost decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
