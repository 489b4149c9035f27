package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
)

// EmpresaHandler perfil del emisor (protegido).
type EmpresaHandler struct {
	svc EmpresaService
}

func NewEmpresaHandler(svc EmpresaService) *EmpresaHandler {
	return &EmpresaHandler{svc: svc}
}

// Get godoc
// @Summary      Datos de la empresa emisora
// @Tags         empresa
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresa [get]
func (h *EmpresaHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Obtener(c.UserContext(), GetUsuario(c))
	if err != nil {
		return errorLectura(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o actualizar la empresa emisora
// @Tags         empresa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GuardarEmpresaRequest  true  "Datos"
// @Success      200   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/empresa [put]
func (h *EmpresaHandler) Save(c *fiber.Ctx) error {
	var in dto.GuardarEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Guardar(c.UserContext(), GetUsuario(c), in), fiber.StatusOK)
}
