package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
)

func TestRenderer_Plantillas(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	subject, body, err := r.Render(ports.TemplateLowStock, map[string]any{
		"ProductName": "Martillo <grande>", "SKU": "MAR-01", "Quantity": 2, "Warehouse": "Principal", "Threshold": 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alerta de stock bajo: Martillo <grande>", subject)
	assert.Contains(t, body, "Martillo &lt;grande&gt;")
	assert.Contains(t, body, "Principal")

	_, body, err = r.Render(ports.TemplateStockAdjustment, map[string]any{"ProductName": "Clavos", "Type": "OUT", "Quantity": 5})
	require.NoError(t, err)
	assert.Contains(t, body, "una salida")

	_, _, err = r.Render("factura", nil)
	assert.Error(t, err)
}

func TestSMTPMailer_EnviaMensaje(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var got *gomail.Message
	m := newSMTPMailer("inventario@tienda.co", func(msgs ...*gomail.Message) error {
		got = msgs[0]
		return nil
	}, BreakerConfig{}, r, nil)

	err = m.Send(context.Background(), "jefe@tienda.co", ports.TemplateLowStock, map[string]any{"ProductName": "Martillo", "Quantity": 1})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"jefe@tienda.co"}, got.GetHeader("To"))
	assert.Equal(t, []string{"Alerta de stock bajo: Martillo"}, got.GetHeader("Subject"))
}

func TestSMTPMailer_CircuitoSeAbreTrasFallas(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	calls := 0
	m := newSMTPMailer("inventario@tienda.co", func(...*gomail.Message) error {
		calls++
		return errors.New("connection refused")
	}, BreakerConfig{FailureThreshold: 2, Timeout: time.Minute}, r, nil)

	data := map[string]any{"ProductName": "Martillo", "Quantity": 1}
	for range 2 {
		err := m.Send(context.Background(), "a@b.co", ports.TemplateLowStock, data)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, m.State())

	err = m.Send(context.Background(), "a@b.co", ports.TemplateLowStock, data)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, calls)
}

func TestLogMailer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	m := NewLogMailer(r, nil)
	assert.NoError(t, m.Send(context.Background(), "a@b.co", ports.TemplateLowStock, map[string]any{"ProductName": "x"}))
	assert.Error(t, m.Send(context.Background(), "a@b.co", "desconocida", nil))
}
