package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrProductHasMovements impide borrar productos con kardex: la historia es inmutable.
	ErrProductHasMovements = errors.New("el producto tiene movimientos")
)

// InsufficientStockError detalla una salida que dejaría el stock negativo.
// errors.Is(err, ErrInsufficientStock) sigue funcionando para el mapeo HTTP.
type InsufficientStockError struct {
	ProductID  string
	SKU        string
	Disponible int64
	Solicitado int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (sku %s): disponible %d, solicitado %d",
		e.ProductID, e.SKU, e.Disponible, e.Solicitado)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidationError identifica la línea y el campo que no pasó la validación
// de un documento. Linea es 1-based para que el mensaje coincida con lo que ve el usuario.
type ValidationError struct {
	Linea  int
	Campo  string
	Motivo string
}

func (e *ValidationError) Error() string {
	if e.Linea > 0 {
		return fmt.Sprintf("línea %d: %s %s", e.Linea, e.Campo, e.Motivo)
	}
	return fmt.Sprintf("%s %s", e.Campo, e.Motivo)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
