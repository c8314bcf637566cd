package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/auth"
	"github.com/tu-usuario/almacen-pro/internal/application/documents"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	KardexUC     *usecase.KardexUseCase
	IngresoUC    *documents.IngresoUseCase
	ProyectoUC   *documents.MovimientoProyectoUseCase
	DevolucionUC *documents.DevolucionProveedorUseCase
	ConsultaUC   *documents.ConsultaUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido)
	productos := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	productos.Post("/", productHandler.Create)
	productos.Get("/", productHandler.List)
	productos.Get("/:id", productHandler.GetByID)
	productos.Put("/:id", productHandler.Update)
	productos.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Kardex (protegido)
	kardexHandler := NewKardexHandler(deps.KardexUC)
	productos.Get("/:id/kardex", kardexHandler.ListByProduct)
	productos.Get("/:id/consistencia", kardexHandler.VerificarConsistencia)

	// Documentos de inventario (protegido)
	documentoHandler := NewDocumentoHandler(deps.IngresoUC, deps.ProyectoUC, deps.DevolucionUC, deps.ConsultaUC)
	protected.Post("/ingresos", documentoHandler.CrearIngreso)
	protected.Get("/ingresos", documentoHandler.ListarIngresos)
	protected.Get("/ingresos/:id", documentoHandler.ObtenerIngreso)
	protected.Post("/proyectos/movimientos", documentoHandler.CrearMovimientoProyecto)
	protected.Get("/proyectos/movimientos/:id", documentoHandler.ObtenerMovimientoProyecto)
	protected.Get("/proyectos/:proyectoId/movimientos", documentoHandler.ListarMovimientosProyecto)
	protected.Post("/devoluciones-proveedor", documentoHandler.CrearDevolucionProveedor)
	protected.Get("/devoluciones-proveedor", documentoHandler.ListarDevoluciones)
	protected.Get("/devoluciones-proveedor/:id", documentoHandler.ObtenerDevolucion)
}
