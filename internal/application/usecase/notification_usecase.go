package usecase

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// NotificationUseCase envío manual de correos de inventario.
type NotificationUseCase struct {
	mailer ports.Mailer
	log    *logger.Logger
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(mailer ports.Mailer, log *logger.Logger) *NotificationUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &NotificationUseCase{mailer: mailer, log: log}
}

// LowStock envía una alerta de stock bajo a un destinatario explícito.
func (uc *NotificationUseCase) LowStock(ctx context.Context, p domain.Principal, in dto.LowStockNotificationRequest) (*dto.NotificationResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	data := map[string]any{
		"ProductName": in.ProductName,
		"Quantity":    *in.Quantity,
	}
	return uc.send(ctx, p, in.Email, ports.TemplateLowStock, data)
}

// StockAdjustment avisa de una entrada o salida de stock.
func (uc *NotificationUseCase) StockAdjustment(ctx context.Context, p domain.Principal, in dto.StockAdjustmentNotificationRequest) (*dto.NotificationResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	data := map[string]any{
		"ProductName": in.ProductName,
		"Type":        in.Type,
		"Quantity":    in.Quantity,
		"Reference":   in.Reference,
	}
	return uc.send(ctx, p, in.Email, ports.TemplateStockAdjustment, data)
}

func (uc *NotificationUseCase) send(ctx context.Context, p domain.Principal, to, template string, data map[string]any) (*dto.NotificationResponse, error) {
	if uc.mailer == nil {
		return nil, domain.Internal("notification.send", errMailerDisabled)
	}
	if err := uc.mailer.Send(ctx, to, template, data); err != nil {
		uc.log.Error().Err(err).Str("template", template).Str("company_id", p.CompanyID).Msg("envío de correo fallido")
		return nil, domain.Internal("notification.send", err)
	}
	uc.log.Info().Str("template", template).Str("company_id", p.CompanyID).Msg("correo enviado")
	return &dto.NotificationResponse{Sent: true, Template: template}, nil
}
