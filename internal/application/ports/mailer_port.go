package ports

import "context"

// Plantillas de correo disponibles.
const (
	TemplateLowStock        = "low-stock"
	TemplateStockAdjustment = "stock-adjustment"
)

// Mailer define el puerto de salida para el envío de correos con plantilla.
// Cualquier adaptador (SMTP, log, mock) debe implementar esta interfaz.
type Mailer interface {
	// Send renderiza la plantilla templateName con data y la envía a recipient.
	Send(ctx context.Context, recipient, templateName string, data map[string]any) error
}
