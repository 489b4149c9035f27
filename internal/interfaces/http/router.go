package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Libros    LibroService
	Facturas  FacturaService
	Lineas    LineaService
	Empresa   EmpresaService
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API. Todas requieren Bearer Token de sesión.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	libros := api.Group("/libros")
	libroHandler := NewLibroHandler(deps.Libros)
	libros.Get("/", libroHandler.List)
	libros.Post("/", libroHandler.Create)
	libros.Get("/buscar", libroHandler.Search)
	libros.Get("/:id", libroHandler.GetByID)
	libros.Patch("/:id", libroHandler.Update)
	libros.Delete("/:id", libroHandler.Delete)

	facturas := api.Group("/facturas")
	facturaHandler := NewFacturaHandler(deps.Facturas)
	facturas.Get("/", facturaHandler.List)
	facturas.Post("/", facturaHandler.Create)
	facturas.Post("/calcular", facturaHandler.Calculate)
	facturas.Get("/:id", facturaHandler.GetByID)
	facturas.Put("/:id", facturaHandler.Update)
	facturas.Delete("/:id", facturaHandler.Delete)
	facturas.Get("/:id/lineas", facturaHandler.Lines)
	facturas.Get("/:id/pdf", facturaHandler.PDF)
	facturas.Post("/:id/emitir", facturaHandler.Issue)
	facturas.Post("/:id/anular", facturaHandler.Cancel)
	facturas.Post("/:id/pagar", facturaHandler.Pay)

	lineas := api.Group("/lineas-factura")
	lineaHandler := NewLineaHandler(deps.Lineas)
	lineas.Post("/", lineaHandler.Create)
	lineas.Get("/:id", lineaHandler.GetByID)
	lineas.Patch("/:id", lineaHandler.Update)
	lineas.Delete("/:id", lineaHandler.Delete)

	empresa := api.Group("/empresa")
	empresaHandler := NewEmpresaHandler(deps.Empresa)
	empresa.Get("/", empresaHandler.Get)
	empresa.Put("/", empresaHandler.Save)
}
