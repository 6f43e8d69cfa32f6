package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// ErrUnavailable el circuito del servidor SMTP está abierto.
var ErrUnavailable = errors.New("mail: servidor SMTP no disponible")

// SMTPConfig datos de conexión SMTP.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// BreakerConfig parámetros del circuit breaker que protege el envío.
type BreakerConfig struct {
	FailureThreshold uint32        // fallas consecutivas para abrir
	Timeout          time.Duration // tiempo abierto antes de probar de nuevo
}

// DefaultBreakerConfig 5 fallas seguidas abren el circuito durante 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 5, Timeout: 30 * time.Second}
}

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía correos con gomail detrás de un circuit breaker.
type SMTPMailer struct {
	from     string
	renderer *Renderer
	send     func(*gomail.Message) error
	cb       *gobreaker.CircuitBreaker
	log      *logger.Logger
}

// NewSMTPMailer construye el mailer SMTP.
func NewSMTPMailer(cfg SMTPConfig, breaker BreakerConfig, renderer *Renderer, log *logger.Logger) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return newSMTPMailer(cfg.From, dialer.DialAndSend, breaker, renderer, log)
}

func newSMTPMailer(from string, send func(...*gomail.Message) error, breaker BreakerConfig, renderer *Renderer, log *logger.Logger) *SMTPMailer {
	if log == nil {
		log = logger.NewNop()
	}
	if breaker.FailureThreshold == 0 {
		breaker = DefaultBreakerConfig()
	}
	m := &SMTPMailer{
		from:     from,
		renderer: renderer,
		send:     func(msg *gomail.Message) error { return send(msg) },
		log:      log,
	}
	m.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "smtp",
		Timeout: breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breaker.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("cambio de estado del circuit breaker")
		},
	})
	return m
}

// Send renderiza la plantilla y la envía a recipient.
func (m *SMTPMailer) Send(ctx context.Context, recipient, templateName string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, body, err := m.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	_, err = m.cb.Execute(func() (interface{}, error) {
		return nil, m.send(msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", ErrUnavailable, templateName)
	}
	if err != nil {
		return fmt.Errorf("mail: enviar %s: %w", templateName, err)
	}
	m.log.Debug().Str("template", templateName).Str("to", recipient).Msg("correo enviado")
	return nil
}

// State estado actual del circuito.
func (m *SMTPMailer) State() gobreaker.State { return m.cb.State() }
