package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
)

// FacturaHandler facturas, sus líneas y transiciones de estado (protegido).
type FacturaHandler struct {
	svc FacturaService
}

// NewFacturaHandler construye el handler.
func NewFacturaHandler(svc FacturaService) *FacturaHandler {
	return &FacturaHandler{svc: svc}
}

// List godoc
// @Summary      Listar facturas
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página"
// @Param        page_size    query  int     false  "Tamaño"
// @Param        numero       query  string  false  "Número (contiene)"
// @Param        cliente      query  string  false  "Cliente (contiene)"
// @Param        nombre       query  string  false  "Nombre (contiene)"
// @Param        estado       query  string  false  "borrador|emitida|pagada|anulada"
// @Param        fecha_desde  query  string  false  "AAAA-MM-DD"
// @Param        fecha_hasta  query  string  false  "AAAA-MM-DD"
// @Success      200  {object}  dto.PageResponse[dto.FacturaResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturas [get]
func (h *FacturaHandler) List(c *fiber.Ctx) error {
	var q dto.FacturaListRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.svc.Listar(c.UserContext(), GetUsuario(c), q)
	if err != nil {
		return errorLectura(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de factura con líneas y desglose de totales
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.FacturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [get]
func (h *FacturaHandler) GetByID(c *fiber.Ctx) error {
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

// Lines GET /api/facturas/:id/lineas
func (h *FacturaHandler) Lines(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.svc.Lineas(c.UserContext(), GetUsuario(c), id)
	if err != nil {
		return errorLectura(c, err)
	}
	return c.JSON(out)
}

// Calculate godoc
// @Summary      Calcular totales sin guardar
// @Tags         facturas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalcularTotalesRequest  true  "Importes y porcentajes"
// @Success      200   {object}  facturacion.Totales
// @Router       /api/facturas/calcular [post]
func (h *FacturaHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalcularTotalesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(h.svc.Calcular(in))
}

// PDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         facturas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id            path   int   true   "ID de la factura"
// @Param        mostrar_iban  query  bool  false  "Incluir IBAN de la empresa"
// @Success      200  {file}  binary
// @Router       /api/facturas/{id}/pdf [get]
func (h *FacturaHandler) PDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	pdf, err := h.svc.DescargarPDF(c.UserContext(), GetUsuario(c), id, c.QueryBool("mostrar_iban", false))
	if err != nil {
		return errorLectura(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="factura-%d.pdf"`, id))
	return c.Send(pdf)
}

// Create godoc
// @Summary      Crear factura en borrador
// @Tags         facturas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GuardarFacturaRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Failure      502   {object}  dto.ActionResponse
// @Router       /api/facturas [post]
func (h *FacturaHandler) Create(c *fiber.Ctx) error {
	var in dto.GuardarFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Crear(c.UserContext(), GetUsuario(c), in), fiber.StatusCreated)
}

// Update reemplaza cabecera y líneas de un borrador.
// PUT /api/facturas/:id
func (h *FacturaHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.GuardarFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Actualizar(c.UserContext(), GetUsuario(c), id, in), fiber.StatusOK)
}

// Delete solo borradores.
// DELETE /api/facturas/:id
func (h *FacturaHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	return accion(c, h.svc.Eliminar(c.UserContext(), GetUsuario(c), id), fiber.StatusOK)
}

// POST /api/facturas/:id/emitir
func (h *FacturaHandler) Issue(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	return accion(c, h.svc.Emitir(c.UserContext(), GetUsuario(c), id), fiber.StatusOK)
}

// Cancel godoc
// @Summary      Anular factura emitida
// @Tags         facturas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la factura"
// @Param        body  body  dto.AnularFacturaRequest  true  "Motivo"
// @Success      200   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/facturas/{id}/anular [post]
func (h *FacturaHandler) Cancel(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.AnularFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	return accion(c, h.svc.Anular(c.UserContext(), GetUsuario(c), id, in.Motivo), fiber.StatusOK)
}

// POST /api/facturas/:id/pagar
func (h *FacturaHandler) Pay(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.PagarFacturaRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return cuerpoInvalido(c)
		}
	}
	return accion(c, h.svc.MarcarPagada(c.UserContext(), GetUsuario(c), id, in.FechaPago), fiber.StatusOK)
}
