package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backroom/internal/application/dto"
	"github.com/tu-usuario/backroom/pkg/jwt"
)

// Local key del teléfono autenticado en Fiber. El teléfono es a la vez
// identidad del dashboard y UserID del ledger.
const LocalUserPhone = "user_phone"

// AuthMiddleware valida el Bearer Token JWT y extrae el teléfono a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
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
		phone, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserPhone, phone)
		return c.Next()
	}
}

// GetUserPhone devuelve el teléfono del contexto (después del middleware de auth).
func GetUserPhone(c *fiber.Ctx) string {
	v := c.Locals(LocalUserPhone)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
