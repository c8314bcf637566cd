package costing

import "github.com/shopspring/decimal"

// Precisiones usadas en todo el sistema: 2 decimales para costos persistidos
// (moneda), 4 decimales para los snapshots CostBefore/CostAfter del kardex.
const (
	PrecisionCosto  = 2
	PrecisionKardex = 4
)

// Round2 redondea a 2 decimales, mitad alejándose de cero.
// Única implementación de redondeo monetario: todo sitio que persiste costos pasa por aquí.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(PrecisionCosto)
}

// Round4 redondea a 4 decimales, mitad alejándose de cero (trazabilidad del kardex).
func Round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(PrecisionKardex)
}

// EsImporte reporta si d cabe en 2 decimales (la precisión monetaria).
// Los costos que entran al sistema deben cumplirlo: el kardex guarda el costo
// unitario tal cual y el replay tiene que mezclar exactamente el mismo valor.
func EsImporte(d decimal.Decimal) bool {
	return d.Equal(Round2(d))
}

// CostoPromedio implementa el precio promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock previo cero el promedio colapsa al costo entrante (regla de la división por cero).
// Devuelve el valor intermedio SIN redondear; el caller decide la precisión al persistir.
func CostoPromedio(stockActual int64, costoActual decimal.Decimal, cantEntrada int64, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual <= 0 {
		return costoEntrada
	}
	stock := decimal.NewFromInt(stockActual)
	cant := decimal.NewFromInt(cantEntrada)
	num := stock.Mul(costoActual).Add(cant.Mul(costoEntrada))
	return num.Div(stock.Add(cant))
}
