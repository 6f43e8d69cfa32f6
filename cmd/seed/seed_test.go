package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/app"
	"github.com/jhoicas/inventory-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-ledger-api/pkg/config"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

const sampleCatalog = `<?xml version="1.0" encoding="UTF-8"?>
<catalogo empresa="Tienda Demo" email="alertas@demo.co" bodega="Principal">
  <producto sku="caf-500" nombre="Café molido 500g" precio="18500" cantidad="40"/>
  <producto sku="TE-20" nombre="Té verde x20" precio="7200.50" cantidad="0"/>
</catalogo>`

func TestParseCatalog_UTF8(t *testing.T) {
	c, prices, err := parseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, "Tienda Demo", c.Company)
	require.Len(t, c.Products, 2)
	assert.Equal(t, "Café molido 500g", c.Products[0].Name)
	assert.True(t, decimal.RequireFromString("7200.50").Equal(prices[1]))
}

func TestParseCatalog_ISO88591(t *testing.T) {
	// "Té" en Latin-1: 0xE9 para la é.
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?><catalogo empresa="Caf`)
	buf.WriteByte(0xE9)
	buf.WriteString(`"><producto sku="T1" nombre="T`)
	buf.WriteByte(0xE9)
	buf.WriteString(`" cantidad="1"/></catalogo>`)

	c, _, err := parseCatalog(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Café", c.Company)
	assert.Equal(t, "Té", c.Products[0].Name)
	assert.Equal(t, "Principal", c.Warehouse)
}

func TestParseCatalog_Errores(t *testing.T) {
	cases := map[string]string{
		"sin empresa":  `<catalogo><producto sku="A" nombre="A"/></catalogo>`,
		"sku repetido": `<catalogo empresa="X"><producto sku="a" nombre="A"/><producto sku="A" nombre="B"/></catalogo>`,
		"precio":       `<catalogo empresa="X"><producto sku="A" nombre="A" precio="diez"/></catalogo>`,
		"negativo":     `<catalogo empresa="X"><producto sku="A" nombre="A" cantidad="-1"/></catalogo>`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := parseCatalog(strings.NewReader(raw))
			assert.Error(t, err)
		})
	}
}

func TestSeed_CreaEmpresaYStockInicialPorElLibro(t *testing.T) {
	c, prices, err := parseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	store := memory.NewStore()
	deps := app.Build(app.MemoryStorage(store), app.Options{
		JWT: auth.JWTConfig{Secret: "seed-secret", ExpMinutes: 5, Issuer: "seed"},
	})

	stats, err := seed(context.Background(), deps, c, prices, "clave-segura-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.products)
	assert.Equal(t, 40, stats.units)
	assert.Equal(t, "admin@tienda-demo.local", stats.adminEmail)

	login, err := deps.AuthUC.Login(context.Background(), dto.LoginRequest{Email: stats.adminEmail, Password: "clave-segura-1"})
	require.NoError(t, err)
	p := domain.Principal{UserID: login.User.ID, CompanyID: stats.companyID, Roles: login.User.Roles}

	ledger, err := deps.TransactionUC.List(context.Background(), p, dto.TransactionFilterRequest{})
	require.NoError(t, err)
	require.Len(t, ledger.Items, 1, "un producto sin cantidad no genera entrada")
	assert.Equal(t, "Inventario inicial", ledger.Items[0].Reference)

	rec, err := deps.ReportUC.Reconciliation(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
}

func TestRun_CatalogoEnMemoria(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))
	t.Setenv("SEED_ADMIN_PASSWORD", "clave-segura-123")

	cfg := &config.Config{
		Storage:   config.StorageConfig{Driver: config.StorageMemory},
		JWT:       config.JWTConfig{Secret: "seed-secret", Expiration: 60, Issuer: "seed"},
		Inventory: config.InventoryConfig{LowStockThreshold: 10},
	}
	stats, err := run(context.Background(), cfg, path, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.products)
	assert.Equal(t, 40, stats.units)

	_, err = run(context.Background(), cfg, filepath.Join(t.TempDir(), "no-existe.xml"), logger.NewNop())
	assert.ErrorContains(t, err, "abrir catálogo")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "tienda-demo", slug("Tienda Demo"))
	assert.Equal(t, "demo", slug("¡!"))
}
