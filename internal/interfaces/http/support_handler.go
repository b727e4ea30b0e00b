package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/backroom/internal/application/dto"
	"github.com/tu-usuario/backroom/internal/application/support"
	"github.com/tu-usuario/backroom/internal/domain"
)

const maxSupportMessageLen = 1000

// SupportHandler chat de soporte del sitio público (sin auth, con rate limit).
type SupportHandler struct {
	uc *support.UseCase
}

// NewSupportHandler construye el handler.
func NewSupportHandler(uc *support.UseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// Chat responde una pregunta del visitante.
func (h *SupportHandler) Chat(c *fiber.Ctx) error {
	var in dto.SupportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Message) == "" || len(in.Message) > maxSupportMessageLen {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mensaje requerido (máx 1000 caracteres)"})
	}
	resp, err := h.uc.Chat(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mensaje requerido"})
		}
		if errors.Is(err, domain.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "asistente no disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar la respuesta"})
	}
	return c.JSON(resp)
}
