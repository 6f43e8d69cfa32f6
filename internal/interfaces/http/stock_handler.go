package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
)

// StockHandler ajustes y consulta de niveles de stock.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  Escribe una entrada en el libro y actualiza el nivel (producto, bodega) en una sola transacción. ADJUSTMENT exige direction.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustRequest  true  "product_id, warehouse_id, type, direction, quantity, reference"
// @Success      201   {object}  dto.AdjustmentResult
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION o INSUFFICIENT_STOCK"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Adjust(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLevel godoc
// @Summary      Nivel de stock de un producto en una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId    path  string  true  "Producto"
// @Param        warehouseId  path  string  true  "Bodega"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock/{productId}/{warehouseId} [get]
func (h *StockHandler) GetLevel(c *fiber.Ctx) error {
	out, err := h.uc.GetLevel(c.UserContext(), GetPrincipal(c), c.Params("productId"), c.Params("warehouseId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLevels godoc
// @Summary      Listar niveles de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockLevelListResponse
// @Router       /api/v1/inventory/stock-levels [get]
func (h *StockHandler) ListLevels(c *fiber.Ctx) error {
	var in dto.StockLevelFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListLevels(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetLevelByID godoc
// @Summary      Obtener nivel de stock por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del nivel"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock-levels/{id} [get]
func (h *StockHandler) GetLevelByID(c *fiber.Ctx) error {
	out, err := h.uc.GetLevelByID(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Conteo físico
// @Description  Registra la cantidad contada; se escribe un ADJUSTMENT por la diferencia (ninguno si no hay diferencia).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del nivel"
// @Param        body  body  dto.StockCountRequest  true  "Cantidad contada"
// @Success      200   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/stock-levels/{id} [put]
func (h *StockHandler) Count(c *fiber.Ctx) error {
	var in dto.StockCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Count(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
