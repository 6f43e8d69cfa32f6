// Package app arma el grafo de dependencias (repositorios, casos de uso, adaptadores) para cmd/api y los tests HTTP.
package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-ledger-api/internal/application/audit"
	"github.com/jhoicas/inventory-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/inventory-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// Storage repositorios de un adaptador de persistencia más su TxRunner.
type Storage struct {
	Tx           inventory.TxRunner
	Companies    repository.CompanyRepository
	Users        repository.UserRepository
	Categories   repository.CategoryRepository
	Suppliers    repository.SupplierRepository
	Warehouses   repository.WarehouseRepository
	Products     repository.ProductRepository
	StockLevels  repository.StockLevelRepository
	Transactions repository.TransactionRepository
	Purchases    repository.PurchaseRepository
	Sales        repository.SaleRepository
	AuditLogs    repository.AuditLogRepository
	Reports      repository.ReportRepository
}

// MemoryStorage adaptador en memoria (demos locales y tests).
func MemoryStorage(s *memory.Store) Storage {
	return Storage{
		Tx:           s,
		Companies:    s.Companies(),
		Users:        s.Users(),
		Categories:   s.Categories(),
		Suppliers:    s.Suppliers(),
		Warehouses:   s.Warehouses(),
		Products:     s.Products(),
		StockLevels:  s.StockLevels(),
		Transactions: s.Transactions(),
		Purchases:    s.Purchases(),
		Sales:        s.Sales(),
		AuditLogs:    s.AuditLogs(),
		Reports:      s.Reports(),
	}
}

// PostgresStorage adaptador PostgreSQL sobre el pool.
func PostgresStorage(pool *pgxpool.Pool) Storage {
	return Storage{
		Tx:           postgres.NewTxRunner(pool),
		Companies:    postgres.NewCompanyRepository(pool),
		Users:        postgres.NewUserRepository(pool),
		Categories:   postgres.NewCategoryRepository(pool),
		Suppliers:    postgres.NewSupplierRepository(pool),
		Warehouses:   postgres.NewWarehouseRepository(pool),
		Products:     postgres.NewProductRepository(pool),
		StockLevels:  postgres.NewStockLevelRepository(pool),
		Transactions: postgres.NewTransactionRepository(pool),
		Purchases:    postgres.NewPurchaseRepository(pool),
		Sales:        postgres.NewSaleRepository(pool),
		AuditLogs:    postgres.NewAuditLogRepository(pool),
		Reports:      postgres.NewReportRepository(pool),
	}
}

// Options colaboradores opcionales y parámetros del grafo.
type Options struct {
	JWT                      auth.JWTConfig
	DefaultLowStockThreshold int
	Mailer                   ports.Mailer                 // nil: sin alertas ni notificaciones
	Renderer                 ports.ReportRenderer         // nil: sin exportación PDF
	Spreadsheet              ports.ReportSpreadsheet      // nil: sin exportación XLSX
	Observer                 inventory.AdjustmentObserver // nil: sin métricas de ajustes
	Log                      *logger.Logger
}

// Build construye todos los casos de uso y devuelve las dependencias del router.
func Build(s Storage, opts Options) apphttp.RouterDeps {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	rec := audit.NewRecorder(s.AuditLogs, log.Component("audit"))

	alerts := inventory.NewLowStockAlerter(s.Companies, s.Products, s.Warehouses, opts.Mailer, log.Component("alerts"))
	invLog := log.Component("inventory")
	agg := inventory.NewStockAggregator(s.Tx, alerts, opts.Observer, invLog)

	return apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(s.Users, s.Companies, opts.JWT, log.Component("auth")),
		UserUC:         usecase.NewUserUseCase(s.Users, rec, log),
		CompanyUC:      usecase.NewCompanyUseCase(s.Companies, rec, opts.DefaultLowStockThreshold, log),
		WarehouseUC:    usecase.NewWarehouseUseCase(s.Warehouses, rec, log),
		CategoryUC:     usecase.NewCategoryUseCase(s.Categories, rec, log),
		SupplierUC:     usecase.NewSupplierUseCase(s.Suppliers, rec, log),
		ProductUC:      usecase.NewProductUseCase(s.Products, s.Categories, s.Suppliers, rec, log),
		AuditLogUC:     usecase.NewAuditLogUseCase(s.AuditLogs, log),
		NotificationUC: usecase.NewNotificationUseCase(opts.Mailer, log.Component("notifications")),
		StockUC:        inventory.NewStockUseCase(agg, s.Tx, s.StockLevels, invLog),
		TransactionUC:  inventory.NewTransactionUseCase(agg, s.Tx, s.Transactions, invLog),
		PurchaseUC:     inventory.NewPurchaseUseCase(agg, s.Tx, s.Purchases, s.Suppliers, invLog),
		SaleUC:         inventory.NewSaleUseCase(agg, s.Tx, s.Sales, invLog),
		ReportUC:       inventory.NewReportUseCase(s.Reports, s.Companies, opts.Renderer, log.Component("reports")).WithSpreadsheet(opts.Spreadsheet),
		JWTSecret:      opts.JWT.Secret,
	}
}
