package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/usecase"
)

// NotificationHandler envío manual de correos.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// LowStock godoc
// @Summary      Enviar alerta de stock bajo
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LowStockNotificationRequest  true  "Destinatario y producto"
// @Success      202   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/notifications/low-stock [post]
func (h *NotificationHandler) LowStock(c *fiber.Ctx) error {
	var in dto.LowStockNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LowStock(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// StockAdjustment godoc
// @Summary      Enviar aviso de movimiento de stock
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentNotificationRequest  true  "Destinatario y movimiento"
// @Success      202   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/notifications/stock-adjustment [post]
func (h *NotificationHandler) StockAdjustment(c *fiber.Ctx) error {
	var in dto.StockAdjustmentNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.StockAdjustment(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}
