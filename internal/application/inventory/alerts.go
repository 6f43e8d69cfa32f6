package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// LowStockAlerter envía el correo de stock bajo cuando un ajuste ya confirmado deja el nivel
// en o bajo el umbral de la empresa. Nunca falla la operación que lo dispara.
type LowStockAlerter struct {
	companies  repository.CompanyRepository
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	mailer     ports.Mailer
	log        *logger.Logger
}

// NewLowStockAlerter construye el alertador.
func NewLowStockAlerter(
	companies repository.CompanyRepository,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	mailer ports.Mailer,
	log *logger.Logger,
) *LowStockAlerter {
	if log == nil {
		log = logger.NewNop()
	}
	return &LowStockAlerter{
		companies:  companies,
		products:   products,
		warehouses: warehouses,
		mailer:     mailer,
		log:        log,
	}
}

// Check evalúa level contra el umbral y envía la alerta si corresponde. Debe llamarse después del commit.
func (a *LowStockAlerter) Check(ctx context.Context, level *entity.StockLevel) {
	if a == nil || a.mailer == nil || level == nil {
		return
	}
	company, err := a.companies.GetByID(ctx, level.CompanyID)
	if err != nil || company == nil {
		a.log.Warn().Err(err).Str("company_id", level.CompanyID).Msg("alerta de stock bajo: empresa no disponible")
		return
	}
	if company.Email == "" || level.Quantity > company.LowStockThreshold {
		return
	}

	data := map[string]any{
		"CompanyName": company.Name,
		"ProductID":   level.ProductID,
		"ProductName": level.ProductID,
		"SKU":         "",
		"Warehouse":   level.WarehouseID,
		"Quantity":    level.Quantity,
		"Threshold":   company.LowStockThreshold,
	}
	if product, err := a.products.GetByID(ctx, level.CompanyID, level.ProductID); err == nil && product != nil {
		data["ProductName"] = product.Name
		data["SKU"] = product.SKU
	}
	if warehouse, err := a.warehouses.GetByID(ctx, level.CompanyID, level.WarehouseID); err == nil && warehouse != nil {
		data["Warehouse"] = warehouse.Name
	}

	if err := a.mailer.Send(ctx, company.Email, ports.TemplateLowStock, data); err != nil {
		a.log.Warn().Err(err).
			Str("company_id", level.CompanyID).
			Str("product_id", level.ProductID).
			Str("warehouse_id", level.WarehouseID).
			Msg("no se pudo enviar la alerta de stock bajo")
		return
	}
	a.log.Info().
		Str("company_id", level.CompanyID).
		Str("product_id", level.ProductID).
		Int("quantity", level.Quantity).
		Msg("alerta de stock bajo enviada")
}
