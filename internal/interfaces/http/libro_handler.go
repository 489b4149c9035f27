package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
)

// LibroHandler inventario de libros (protegido).
type LibroHandler struct {
	svc LibroService
}

// NewLibroHandler construye el handler.
func NewLibroHandler(svc LibroService) *LibroHandler {
	return &LibroHandler{svc: svc}
}

// List godoc
// @Summary      Listar libros
// @Tags         libros
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"     default(1)
// @Param        page_size  query  int     false  "Tamaño"     default(10)
// @Param        titulo     query  string  false  "Filtro por título (contiene)"
// @Success      200  {object}  dto.PageResponse[dto.LibroResponse]
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/libros [get]
func (h *LibroHandler) List(c *fiber.Ctx) error {
	var q dto.LibroListRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.svc.Listar(c.UserContext(), GetUsuario(c), q)
	if err != nil {
		return errorLectura(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar libros por título (sin tildes ni mayúsculas)
// @Tags         libros
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  true  "Texto"
// @Success      200  {array}  dto.LibroResponse
// @Router       /api/libros/buscar [get]
func (h *LibroHandler) Search(c *fiber.Ctx) error {
	out, err := h.svc.Buscar(c.UserContext(), GetUsuario(c), c.Query("q"))
	if err != nil {
		return errorLectura(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener libro
// @Tags         libros
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del libro"
// @Success      200  {object}  dto.LibroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/libros/{id} [get]
func (h *LibroHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.svc.Obtener(c.UserContext(), GetUsuario(c), id)
	if err != nil {
		return errorLectura(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear libro
// @Tags         libros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearLibroRequest  true  "Libro"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/libros [post]
func (h *LibroHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearLibroRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Crear(c.UserContext(), GetUsuario(c), in), fiber.StatusCreated)
}

// Update actualización parcial.
// PATCH /api/libros/:id
func (h *LibroHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.ActualizarLibroRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Actualizar(c.UserContext(), GetUsuario(c), id, in), fiber.StatusOK)
}

// DELETE /api/libros/:id
func (h *LibroHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	return accion(c, h.svc.Eliminar(c.UserContext(), GetUsuario(c), id), fiber.StatusOK)
}
