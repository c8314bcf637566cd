package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
)

// KardexHandler consulta del kardex por producto (protegido).
type KardexHandler struct {
	uc *usecase.KardexUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *usecase.KardexUseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Kardex de un producto
// @Description  Movimientos en orden cronológico (el orden de replay).
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementDTO
// @Router       /api/productos/{id}/kardex [get]
func (h *KardexHandler) ListByProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (RFC3339)"})
	}
	out, err := h.uc.ListByProduct(id, from, to, page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// VerificarConsistencia godoc
// @Summary      Verificar consistencia de un producto contra su kardex
// @Description  Replaya todos los movimientos y compara el resultado con el
//
//	(stock, costo promedio) persistido.
//
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ConsistenciaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/consistencia [get]
func (h *KardexHandler) VerificarConsistencia(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.VerificarConsistencia(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
