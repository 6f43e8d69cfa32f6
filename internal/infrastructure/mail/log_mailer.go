package mail

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer solo registra el correo en el log. Se usa cuando no hay SMTP configurado.
type LogMailer struct {
	renderer *Renderer
	log      *logger.Logger
}

// NewLogMailer construye el mailer de log.
func NewLogMailer(renderer *Renderer, log *logger.Logger) *LogMailer {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogMailer{renderer: renderer, log: log}
}

// Send valida la plantilla y deja el asunto en el log.
func (m *LogMailer) Send(_ context.Context, recipient, templateName string, data map[string]any) error {
	subject, _, err := m.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	m.log.Info().Str("template", templateName).Str("to", recipient).Str("subject", subject).Msg("correo (sin SMTP)")
	return nil
}
