package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
)

// ReportHandler reportes de inventario en JSON, PDF (?format=pdf) o Excel (?format=xlsx).
type ReportHandler struct {
	uc *inventory.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Niveles con cantidad <= threshold y productos sin niveles. Sin threshold se usa el umbral de la empresa.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        threshold  query  int     false  "Umbral"
// @Param        format     query  string  false  "json, pdf o xlsx"
// @Success      200  {object}  dto.LowStockReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	threshold, err := queryIntPtr(c, "threshold")
	if err != nil {
		return writeError(c, err)
	}
	p := GetPrincipal(c)
	switch c.Query("format") {
	case formatPDF:
		doc, err := h.uc.LowStockPDF(c.UserContext(), p, threshold)
		return sendPDF(c, "stock-bajo", doc, err)
	case formatXLSX:
		doc, err := h.uc.LowStockXLSX(c.UserContext(), p, threshold)
		return sendXLSX(c, "stock-bajo", doc, err)
	}
	out, err := h.uc.LowStock(c.UserContext(), p, threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Purchases godoc
// @Summary      Resumen de compras por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        format  query  string  false  "json, pdf o xlsx"
// @Success      200  {object}  dto.PurchaseSummaryResponse
// @Router       /api/v1/inventory/reports/purchases [get]
func (h *ReportHandler) Purchases(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	switch c.Query("format") {
	case formatPDF:
		doc, err := h.uc.PurchaseSummaryPDF(c.UserContext(), p)
		return sendPDF(c, "compras", doc, err)
	case formatXLSX:
		doc, err := h.uc.PurchaseSummaryXLSX(c.UserContext(), p)
		return sendXLSX(c, "compras", doc, err)
	}
	out, err := h.uc.PurchaseSummary(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Resumen de ventas por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        format  query  string  false  "json, pdf o xlsx"
// @Success      200  {object}  dto.SalesSummaryResponse
// @Router       /api/v1/inventory/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	switch c.Query("format") {
	case formatPDF:
		doc, err := h.uc.SalesSummaryPDF(c.UserContext(), p)
		return sendPDF(c, "ventas", doc, err)
	case formatXLSX:
		doc, err := h.uc.SalesSummaryXLSX(c.UserContext(), p)
		return sendXLSX(c, "ventas", doc, err)
	}
	out, err := h.uc.SalesSummary(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconciliation godoc
// @Summary      Conciliación niveles vs libro
// @Description  Devuelve las combinaciones (producto, bodega) cuyo nivel no coincide con la suma firmada del libro.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json o xlsx"
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/v1/inventory/reports/reconciliation [get]
func (h *ReportHandler) Reconciliation(c *fiber.Ctx) error {
	if c.Query("format") == formatXLSX {
		doc, err := h.uc.ReconciliationXLSX(c.UserContext(), GetPrincipal(c))
		return sendXLSX(c, "conciliacion", doc, err)
	}
	out, err := h.uc.Reconciliation(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

const (
	formatPDF  = "pdf"
	formatXLSX = "xlsx"

	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func sendPDF(c *fiber.Ctx, name string, doc []byte, err error) error {
	return sendFile(c, name, formatPDF, "application/pdf", doc, err)
}

func sendXLSX(c *fiber.Ctx, name string, doc []byte, err error) error {
	return sendFile(c, name, formatXLSX, mimeXLSX, doc, err)
}

// sendFile adjunto <name>-YYYYMMDD.<ext>.
func sendFile(c *fiber.Ctx, name, ext, mime string, doc []byte, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("20060102"), ext)
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

// queryIntPtr lee un entero opcional del query string; ausente => nil.
func queryIntPtr(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.Invalid("%s debe ser un entero", key)
	}
	return &n, nil
}
