package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CompanyUC      *usecase.CompanyUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	CategoryUC     *usecase.CategoryUseCase
	SupplierUC     *usecase.SupplierUseCase
	ProductUC      *usecase.ProductUseCase
	AuditLogUC     *usecase.AuditLogUseCase
	NotificationUC *usecase.NotificationUseCase
	StockUC        *inventory.StockUseCase
	TransactionUC  *inventory.TransactionUseCase
	PurchaseUC     *inventory.PurchaseUseCase
	SaleUC         *inventory.SaleUseCase
	ReportUC       *inventory.ReportUseCase
	JWTSecret      string
}

// Combinaciones de roles usadas en las rutas.
var (
	anyRole      = domain.AllRoles
	adminOnly    = []string{domain.RoleAdmin}
	managers     = []string{domain.RoleAdmin, domain.RoleStoreManager}
	stockWriters = []string{domain.RoleAdmin, domain.RoleStoreManager, domain.RoleWarehouseStaff}
	salesStaff   = []string{domain.RoleAdmin, domain.RoleStoreManager, domain.RoleSalesRep}
)

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	// Alta de empresa pública: es el arranque de un tenant nuevo.
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	companies := protected.Group("/companies")
	companies.Get("/me", RequireRole(anyRole...), companyHandler.GetMine)
	companies.Patch("/me", RequireRole(adminOnly...), companyHandler.UpdateMine)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", RequireRole(anyRole...), userHandler.Me)
	users.Get("/", RequireRole(adminOnly...), userHandler.List)
	users.Patch("/:id/roles", RequireRole(adminOnly...), userHandler.UpdateRoles)

	inv := protected.Group("/inventory")

	crud(inv.Group("/products"), NewProductHandler(deps.ProductUC))
	crud(inv.Group("/categories"), NewCategoryHandler(deps.CategoryUC))
	crud(inv.Group("/suppliers"), NewSupplierHandler(deps.SupplierUC))
	crud(inv.Group("/warehouses"), NewWarehouseHandler(deps.WarehouseUC))

	reportHandler := NewReportHandler(deps.ReportUC)

	stockHandler := NewStockHandler(deps.StockUC)
	inv.Post("/stock/adjust", RequireRole(stockWriters...), stockHandler.Adjust)
	inv.Get("/stock/:productId/:warehouseId", RequireRole(anyRole...), stockHandler.GetLevel)
	levels := inv.Group("/stock-levels")
	levels.Get("/", RequireRole(anyRole...), stockHandler.ListLevels)
	// Antes de /:id para que "low-stock" no se tome como id.
	levels.Get("/low-stock", RequireRole(stockWriters...), reportHandler.LowStock)
	levels.Get("/:id", RequireRole(anyRole...), stockHandler.GetLevelByID)
	levels.Put("/:id", RequireRole(managers...), stockHandler.Count)

	// Libro: sin PATCH ni DELETE, las correcciones son asientos compensatorios.
	txHandler := NewTransactionHandler(deps.TransactionUC)
	txs := inv.Group("/transactions")
	txs.Get("/", RequireRole(anyRole...), txHandler.List)
	txs.Post("/", RequireRole(stockWriters...), txHandler.Create)
	txs.Get("/:id", RequireRole(anyRole...), txHandler.GetByID)
	txs.Post("/:id/reverse", RequireRole(managers...), txHandler.Reverse)

	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases := inv.Group("/purchases")
	purchases.Get("/", RequireRole(managers...), purchaseHandler.List)
	purchases.Post("/", RequireRole(managers...), purchaseHandler.Create)
	purchases.Get("/:id", RequireRole(managers...), purchaseHandler.GetByID)
	purchases.Patch("/:id", RequireRole(managers...), purchaseHandler.Update)
	purchases.Delete("/:id", RequireRole(adminOnly...), purchaseHandler.Delete)

	saleHandler := NewSaleHandler(deps.SaleUC)
	sales := inv.Group("/sales")
	sales.Get("/", RequireRole(salesStaff...), saleHandler.List)
	sales.Post("/", RequireRole(salesStaff...), saleHandler.Create)
	sales.Get("/:id", RequireRole(salesStaff...), saleHandler.GetByID)
	sales.Patch("/:id", RequireRole(managers...), saleHandler.Update)
	sales.Delete("/:id", RequireRole(adminOnly...), saleHandler.Delete)

	reports := inv.Group("/reports")
	reports.Get("/low-stock", RequireRole(stockWriters...), reportHandler.LowStock)
	reports.Get("/purchases", RequireRole(managers...), reportHandler.Purchases)
	reports.Get("/sales", RequireRole(salesStaff...), reportHandler.Sales)
	reports.Get("/reconciliation", RequireRole(adminOnly...), reportHandler.Reconciliation)

	auditHandler := NewAuditLogHandler(deps.AuditLogUC)
	audits := inv.Group("/audit-logs", RequireRole(adminOnly...))
	audits.Get("/", auditHandler.List)
	audits.Get("/by-entity", auditHandler.ByEntity)

	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications := inv.Group("/notifications", RequireRole(managers...))
	notifications.Post("/low-stock", notificationHandler.LowStock)
	notifications.Post("/stock-adjustment", notificationHandler.StockAdjustment)
}

// crudHandler handlers de catálogo con las cinco operaciones básicas.
type crudHandler interface {
	Create(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// crud registra un recurso de catálogo: lectura para todos, escritura managers, borrado admin.
func crud(g fiber.Router, h crudHandler) {
	g.Get("/", RequireRole(anyRole...), h.List)
	g.Post("/", RequireRole(managers...), h.Create)
	g.Get("/:id", RequireRole(anyRole...), h.GetByID)
	g.Put("/:id", RequireRole(managers...), h.Update)
	g.Delete("/:id", RequireRole(adminOnly...), h.Delete)
}
