package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
)

// Normalizar aplica el tamaño por defecto y recorta límites fuera de rango.
func TestPageRequest_Normalizar(t *testing.T) {
	casos := []struct {
		nombre     string
		in         dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacía usa el default", dto.PageRequest{}, 20, 0},
		{"límite negativo usa el default", dto.PageRequest{Limit: -1}, 20, 0},
		{"límite válido pasa tal cual", dto.PageRequest{Limit: 50, Offset: 100}, 50, 100},
		{"límite excesivo se recorta al tope", dto.PageRequest{Limit: 5000}, 100, 0},
		{"offset negativo vuelve a cero", dto.PageRequest{Limit: 10, Offset: -7}, 10, 0},
	}
	for _, c := range casos {
		c.in.Normalizar()
		assert.Equal(t, c.wantLimit, c.in.Limit, c.nombre)
		assert.Equal(t, c.wantOffset, c.in.Offset, c.nombre)
	}
}
