package http

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/backroom/internal/application/dto"
	"github.com/tu-usuario/backroom/internal/application/inventory"
	"github.com/tu-usuario/backroom/internal/domain"
)

// InventoryHandler rutas protegidas del dashboard.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List devuelve el inventario completo del usuario autenticado.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(c.Context(), GetUserPhone(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo leer el inventario"})
	}
	return c.JSON(resp)
}

// SetQuantity sobreescribe la cantidad de un artículo.
func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.SetQuantity(c.Context(), GetUserPhone(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre requerido y cantidad no negativa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo ajustar el artículo"})
	}
	return c.JSON(resp)
}

// Delete elimina un artículo por nombre.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	err := h.uc.Delete(c.Context(), GetUserPhone(c), name)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo borrar el artículo"})
	}
	return c.JSON(fiber.Map{"message": "item deleted"})
}

// Transactions devuelve el historial reciente (query param limit, default 50).
func (h *InventoryHandler) Transactions(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	resp, err := h.uc.Transactions(c.Context(), GetUserPhone(c), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo leer el historial"})
	}
	return c.JSON(resp)
}

// ExportCSV descarga el inventario como CSV.
func (h *InventoryHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.uc.ExportCSV(c.Context(), GetUserPhone(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo exportar"})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.csv"`)
	return c.Send(data)
}

// ExportPDF descarga el reporte PDF del inventario.
func (h *InventoryHandler) ExportPDF(c *fiber.Ctx) error {
	data, err := h.uc.ExportPDF(c.Context(), GetUserPhone(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el reporte"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.pdf"`)
	return c.Send(data)
}
