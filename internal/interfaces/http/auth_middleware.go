package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/pkg/jwt"
)

// LocalUsuario clave en c.Locals del usuario autenticado.
const LocalUsuario = "usuario"

// AuthMiddleware valida el Bearer Token de sesión y deja el Usuario en c.Locals.
// issuer vacío desactiva la comprobación del emisor.
func AuthMiddleware(secret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		s, err := jwt.Parse(secret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsuario, entity.Usuario{ID: s.UserID, Email: s.Email, Nombre: s.Nombre})
		return c.Next()
	}
}

// GetUsuario devuelve el usuario del contexto; sin middleware es el valor cero (no autenticado).
func GetUsuario(c *fiber.Ctx) entity.Usuario {
	u, _ := c.Locals(LocalUsuario).(entity.Usuario)
	return u
}
