package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
)

// LineaHandler líneas sueltas de factura (protegido).
type LineaHandler struct {
	svc LineaService
}

func NewLineaHandler(svc LineaService) *LineaHandler {
	return &LineaHandler{svc: svc}
}

// GET /api/lineas-factura/:id
func (h *LineaHandler) GetByID(c *fiber.Ctx) error {
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

// POST /api/lineas-factura
func (h *LineaHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearLineaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Crear(c.UserContext(), GetUsuario(c), in), fiber.StatusCreated)
}

// PATCH /api/lineas-factura/:id
func (h *LineaHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.ActualizarLineaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Actualizar(c.UserContext(), GetUsuario(c), id, in), fiber.StatusOK)
}

// DELETE /api/lineas-factura/:id
func (h *LineaHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	return accion(c, h.svc.Eliminar(c.UserContext(), GetUsuario(c), id), fiber.StatusOK)
}
