package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/documents"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
)

// DocumentoHandler maneja los documentos de inventario (protegido):
// ingresos, movimientos de proyecto y devoluciones a proveedor.
type DocumentoHandler struct {
	ingresos     *documents.IngresoUseCase
	proyectos    *documents.MovimientoProyectoUseCase
	devoluciones *documents.DevolucionProveedorUseCase
	consulta     *documents.ConsultaUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(
	ingresos *documents.IngresoUseCase,
	proyectos *documents.MovimientoProyectoUseCase,
	devoluciones *documents.DevolucionProveedorUseCase,
	consulta *documents.ConsultaUseCase,
) *DocumentoHandler {
	return &DocumentoHandler{ingresos: ingresos, proyectos: proyectos, devoluciones: devoluciones, consulta: consulta}
}

// CrearIngreso godoc
// @Summary      Registrar ingreso de proveedor
// @Description  Procesa todas las líneas en una transacción: si una falla,
//
//	ninguna se aplica. Cada línea recalcula el PPP del producto.
//
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngresoRequest  true  "proveedor + líneas (cantidad, costo_unitario, product_id o sku)"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingresos [post]
func (h *DocumentoHandler) CrearIngreso(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateIngresoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ingresos.Crear(c.Context(), userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CrearMovimientoProyecto godoc
// @Summary      Registrar salida o devolución de proyecto
// @Description  SALIDA consume al PPP vigente; DEVOLUCION reingresa en modo
//
//	SIMPLE (promedio intacto) o PONDERADA (mezcla el costo de la
//	última salida al mismo proyecto).
//
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovimientoProyectoRequest  true  "proyecto_id, tipo, líneas"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proyectos/movimientos [post]
func (h *DocumentoHandler) CrearMovimientoProyecto(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovimientoProyectoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.proyectos.Crear(c.Context(), userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CrearDevolucionProveedor godoc
// @Summary      Registrar devolución a proveedor
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDevolucionProveedorRequest  true  "proveedor + líneas"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devoluciones-proveedor [post]
func (h *DocumentoHandler) CrearDevolucionProveedor(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDevolucionProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.devoluciones.Crear(c.Context(), userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarIngresos godoc
// @Summary      Listar ingresos (solo encabezados)
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.IngresoDTO
// @Router       /api/ingresos [get]
func (h *DocumentoHandler) ListarIngresos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.consulta.ListIngresos(page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ObtenerIngreso godoc
// @Summary      Obtener un ingreso con sus líneas
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ingreso"
// @Success      200  {object}  dto.IngresoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingresos/{id} [get]
func (h *DocumentoHandler) ObtenerIngreso(c *fiber.Ctx) error {
	out, err := h.consulta.GetIngreso(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ingreso no encontrado"})
	}
	return c.JSON(out)
}

// ListarMovimientosProyecto godoc
// @Summary      Listar movimientos de un proyecto
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        proyectoId  path   string  true   "ID del proyecto"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovimientoProyectoDTO
// @Router       /api/proyectos/{proyectoId}/movimientos [get]
func (h *DocumentoHandler) ListarMovimientosProyecto(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.consulta.ListMovimientosProyecto(c.Params("proyectoId"), page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ObtenerMovimientoProyecto godoc
// @Summary      Obtener un movimiento de proyecto con sus líneas
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoProyectoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proyectos/movimientos/{id} [get]
func (h *DocumentoHandler) ObtenerMovimientoProyecto(c *fiber.Ctx) error {
	out, err := h.consulta.GetMovimientoProyecto(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(out)
}

// ObtenerDevolucion godoc
// @Summary      Obtener una devolución a proveedor con sus líneas
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.DevolucionProveedorDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devoluciones-proveedor/{id} [get]
func (h *DocumentoHandler) ObtenerDevolucion(c *fiber.Ctx) error {
	out, err := h.consulta.GetDevolucion(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "devolución no encontrada"})
	}
	return c.JSON(out)
}

// ListarDevoluciones godoc
// @Summary      Listar devoluciones a proveedor
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.DevolucionProveedorDTO
// @Router       /api/devoluciones-proveedor [get]
func (h *DocumentoHandler) ListarDevoluciones(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.consulta.ListDevoluciones(page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
