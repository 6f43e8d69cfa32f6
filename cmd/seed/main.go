// seed crea una empresa demo (admin, bodega y productos con existencia inicial) a partir de un catálogo XML.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual. Usa la misma configuración que cmd/api
// (STORAGE_DRIVER, DATABASE_URL, JWT_SECRET...). La clave del admin se toma de SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/app"
	"github.com/jhoicas/inventory-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	httpRouter "github.com/jhoicas/inventory-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger-api/pkg/config"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

func main() {
	path := "catalogo.xml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	stats, err := run(context.Background(), cfg, path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("semilla incompleta")
	}
	log.Info().
		Str("company_id", stats.companyID).
		Str("admin", stats.adminEmail).
		Int("products", stats.products).
		Int("units", stats.units).
		Msg("semilla aplicada")
}

// run lee el catálogo y lo siembra; los recursos abiertos se liberan antes de volver.
func run(ctx context.Context, cfg *config.Config, path string, log *logger.Logger) (*seedStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo %s: %w", path, err)
	}
	defer f.Close()

	cat, prices, err := parseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("catálogo inválido: %w", err)
	}

	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: la semilla solo sirve como validación del catálogo")
	}
	storage, closeStorage, err := app.OpenStorage(ctx, cfg.Storage.Driver, cfg.DB, true, log)
	if err != nil {
		return nil, err
	}
	defer closeStorage()

	deps := app.Build(storage, app.Options{
		JWT:                      auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		DefaultLowStockThreshold: cfg.Inventory.LowStockThreshold,
		Log:                      log,
	})

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "cambiar-esta-clave"
	}
	return seed(ctx, deps, cat, prices, password)
}

type seedStats struct {
	companyID  string
	adminEmail string
	products   int
	units      int
}

// seed recorre los casos de uso igual que lo haría un cliente HTTP: el stock inicial entra por el libro (IN).
func seed(ctx context.Context, deps httpRouter.RouterDeps, cat *catalog, prices []decimal.Decimal, password string) (*seedStats, error) {
	company, err := deps.CompanyUC.Create(ctx, dto.CreateCompanyRequest{Name: cat.Company, Email: cat.Email})
	if err != nil {
		return nil, fmt.Errorf("empresa: %w", err)
	}
	email := "admin@" + slug(cat.Company) + ".local"
	admin, err := deps.AuthUC.RegisterUser(ctx, dto.RegisterRequest{
		Name:      "Administrador",
		Email:     email,
		Password:  password,
		CompanyID: company.ID,
		Roles:     []string{domain.RoleAdmin},
	})
	if err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}
	p := domain.Principal{UserID: admin.ID, CompanyID: company.ID, Roles: admin.Roles}

	wh, err := deps.WarehouseUC.Create(ctx, p, dto.CreateWarehouseRequest{Name: cat.Warehouse})
	if err != nil {
		return nil, fmt.Errorf("bodega: %w", err)
	}

	stats := &seedStats{companyID: company.ID, adminEmail: email}
	for i, item := range cat.Products {
		prod, err := deps.ProductUC.Create(ctx, p, dto.CreateProductRequest{
			SKU:       item.SKU,
			Name:      strings.TrimSpace(item.Name),
			UnitPrice: prices[i],
		})
		if err != nil {
			return stats, fmt.Errorf("producto %s: %w", item.SKU, err)
		}
		stats.products++
		if item.Quantity == 0 {
			continue
		}
		if _, err := deps.StockUC.Adjust(ctx, p, dto.StockAdjustRequest{
			ProductID:   prod.ID,
			WarehouseID: wh.ID,
			Type:        entity.TransactionTypeIN,
			Quantity:    item.Quantity,
			Reference:   "Inventario inicial",
		}); err != nil {
			return stats, fmt.Errorf("stock inicial %s: %w", item.SKU, err)
		}
		stats.units += item.Quantity
	}
	return stats, nil
}

// slug nombre de empresa en minúsculas sin espacios para el email del admin.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "demo"
	}
	return s
}
