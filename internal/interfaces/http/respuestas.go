package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/application/usecase"
)

func statusDe(tipo dto.TipoFallo) int {
	switch tipo {
	case dto.FalloValidacion:
		return fiber.StatusBadRequest
	case dto.FalloConflicto:
		return fiber.StatusConflict
	case dto.FalloNoEncontrado:
		return fiber.StatusNotFound
	case dto.FalloNoAutorizado:
		return fiber.StatusUnauthorized
	case dto.FalloRemoto:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func codigoDe(tipo dto.TipoFallo) string {
	switch tipo {
	case dto.FalloValidacion:
		return "VALIDATION"
	case dto.FalloConflicto:
		return "CONFLICT"
	case dto.FalloNoEncontrado:
		return "NOT_FOUND"
	case dto.FalloNoAutorizado:
		return "UNAUTHORIZED"
	case dto.FalloRemoto:
		return "REMOTE_ERROR"
	default:
		return "INTERNAL"
	}
}

// accion responde {success, error}; en éxito usa okStatus.
func accion(c *fiber.Ctx, res dto.ActionResponse, okStatus int) error {
	if res.Success {
		return c.Status(okStatus).JSON(res)
	}
	return c.Status(statusDe(res.Tipo)).JSON(res)
}

// errorLectura traduce el error de una lectura a ErrorResponse.
func errorLectura(c *fiber.Ctx, err error) error {
	tipo, msg := usecase.Clasificar(err)
	return c.Status(statusDe(tipo)).JSON(dto.ErrorResponse{Code: codigoDe(tipo), Message: msg})
}

func cuerpoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fallo(dto.FalloValidacion, "Cuerpo de la petición inválido"))
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func idInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
}
