package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/usecase"
)

// AuditLogHandler consulta de la bitácora de auditoría.
type AuditLogHandler struct {
	uc *usecase.AuditLogUseCase
}

// NewAuditLogHandler construye el handler.
func NewAuditLogHandler(uc *usecase.AuditLogUseCase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

// List godoc
// @Summary      Listar auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity     query  string  false  "Entidad (product, warehouse, purchase...)"
// @Param        entity_id  query  string  false  "ID de la entidad"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditLogListResponse
// @Router       /api/v1/inventory/audit-logs [get]
func (h *AuditLogHandler) List(c *fiber.Ctx) error {
	var in dto.AuditLogFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByEntity godoc
// @Summary      Historial de una entidad
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity     query  string  true  "Entidad"
// @Param        entity_id  query  string  true  "ID de la entidad"
// @Success      200  {object}  dto.AuditLogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/audit-logs/by-entity [get]
func (h *AuditLogHandler) ByEntity(c *fiber.Ctx) error {
	var in dto.AuditLogFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ByEntity(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
