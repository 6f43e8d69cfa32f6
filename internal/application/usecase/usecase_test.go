package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/application/audit"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/ports"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Entorno
// ─────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memory.Store
	rec        *audit.Recorder
	companies  *CompanyUseCase
	categories *CategoryUseCase
	suppliers  *SupplierUseCase
	warehouses *WarehouseUseCase
	products   *ProductUseCase
	users      *UserUseCase
	auditLogs  *AuditLogUseCase
	admin      domain.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	rec := audit.NewRecorder(store.AuditLogs(), nil)
	f := &fixture{
		store:      store,
		rec:        rec,
		companies:  NewCompanyUseCase(store.Companies(), rec, entity.DefaultLowStockThreshold, nil),
		categories: NewCategoryUseCase(store.Categories(), rec, nil),
		suppliers:  NewSupplierUseCase(store.Suppliers(), rec, nil),
		warehouses: NewWarehouseUseCase(store.Warehouses(), rec, nil),
		products:   NewProductUseCase(store.Products(), store.Categories(), store.Suppliers(), rec, nil),
		users:      NewUserUseCase(store.Users(), rec, nil),
		auditLogs:  NewAuditLogUseCase(store.AuditLogs(), nil),
	}
	company, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{Name: "Ferretería " + uuid.NewString()[:8]})
	require.NoError(t, err)
	admin := f.addUser(t, company.ID, "admin@tienda.co", domain.RoleAdmin)
	f.admin = domain.Principal{UserID: admin.ID, CompanyID: company.ID, Roles: admin.Roles}
	return f
}

func (f *fixture) addUser(t *testing.T, companyID, email string, roles ...string) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		ID: uuid.NewString(), CompanyID: companyID, Email: email, Name: email,
		PasswordHash: "x", Roles: roles, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) otherTenant(t *testing.T) domain.Principal {
	t.Helper()
	company, err := f.companies.Create(context.Background(), dto.CreateCompanyRequest{Name: "Otra " + uuid.NewString()[:8]})
	require.NoError(t, err)
	return domain.Principal{UserID: uuid.NewString(), CompanyID: company.ID, Roles: []string{domain.RoleAdmin}}
}

func (f *fixture) auditCount(t *testing.T, entityName, entityID string) int {
	t.Helper()
	list, err := f.store.AuditLogs().List(context.Background(), repository.AuditLogFilter{
		CompanyID: f.admin.CompanyID, Entity: entityName, EntityID: entityID, Page: repository.Page{Limit: 100},
	})
	require.NoError(t, err)
	return len(list)
}

// ─────────────────────────────────────────────────────────────────────────────
// Empresas
// ─────────────────────────────────────────────────────────────────────────────

func TestCompany_CreateAplicaUmbralPorDefectoYRechazaDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.companies.Create(ctx, dto.CreateCompanyRequest{Name: "  Droguería Sur  "})
	require.NoError(t, err)
	assert.Equal(t, "Droguería Sur", c.Name)
	assert.Equal(t, entity.DefaultLowStockThreshold, c.LowStockThreshold)

	_, err = f.companies.Create(ctx, dto.CreateCompanyRequest{Name: "Droguería Sur"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompany_UpdateMineSoloAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	threshold := 3

	rep := f.admin
	rep.Roles = []string{domain.RoleSalesRep}
	_, err := f.companies.UpdateMine(ctx, rep, dto.UpdateCompanyRequest{LowStockThreshold: &threshold})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.companies.UpdateMine(ctx, f.admin, dto.UpdateCompanyRequest{LowStockThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, 3, out.LowStockThreshold)
	assert.Equal(t, 1, f.auditCount(t, entity.AuditEntityCompany, out.ID))
}

// ─────────────────────────────────────────────────────────────────────────────
// Catálogo
// ─────────────────────────────────────────────────────────────────────────────

func TestCategory_PadreDebeExistirYNoSerPropio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root, err := f.categories.Create(ctx, f.admin, dto.CreateCategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)
	child, err := f.categories.Create(ctx, f.admin, dto.CreateCategoryRequest{Name: "Manuales", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *child.ParentID)

	missing := uuid.NewString()
	_, err = f.categories.Create(ctx, f.admin, dto.CreateCategoryRequest{Name: "X", ParentID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.categories.Update(ctx, f.admin, root.ID, dto.UpdateCategoryRequest{ParentID: &root.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Con hijos no se puede borrar.
	assert.ErrorIs(t, f.categories.Delete(ctx, f.admin, root.ID), domain.ErrConflict)
	require.NoError(t, f.categories.Delete(ctx, f.admin, child.ID))
	require.NoError(t, f.categories.Delete(ctx, f.admin, root.ID))
}

func TestSupplier_CRUDConAuditoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.suppliers.Create(ctx, f.admin, dto.CreateSupplierRequest{Name: "Acme", ContactInfo: "ventas@acme.co"})
	require.NoError(t, err)
	name := "Acme S.A.S."
	updated, err := f.suppliers.Update(ctx, f.admin, s.ID, dto.UpdateSupplierRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "ventas@acme.co", updated.ContactInfo)

	list, err := f.suppliers.List(ctx, f.admin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)

	require.NoError(t, f.suppliers.Delete(ctx, f.admin, s.ID))
	_, err = f.suppliers.GetByID(ctx, f.admin, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 3, f.auditCount(t, entity.AuditEntitySupplier, s.ID))
}

func TestWarehouse_OtraEmpresaEsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, err := f.warehouses.Create(ctx, f.admin, dto.CreateWarehouseRequest{Name: "Principal"})
	require.NoError(t, err)

	other := f.otherTenant(t)
	_, err = f.warehouses.GetByID(ctx, other, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.warehouses.Delete(ctx, other, w.ID), domain.ErrNotFound)

	list, err := f.warehouses.List(ctx, other, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// ─────────────────────────────────────────────────────────────────────────────
// Productos
// ─────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateNormalizaSKUYGeneraBarcode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, f.admin, dto.CreateProductRequest{
		SKU: " mar-01 ", Name: "Martillo", UnitPrice: decimal.RequireFromString("25000.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "MAR-01", p.SKU)
	assert.Len(t, p.Barcode, 12)
	assert.NotEqual(t, byte('0'), p.Barcode[0])
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, 1, f.auditCount(t, entity.AuditEntityProduct, p.ID))

	// SKU duplicado sin importar mayúsculas.
	_, err = f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "MAR-01", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// El mismo SKU en otra empresa es válido.
	_, err = f.products.Create(ctx, f.otherTenant(t), dto.CreateProductRequest{SKU: "mar-01", Name: "Martillo"})
	assert.NoError(t, err)
}

func TestProduct_BarcodeReintentaSiEstaOcupado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "A", Name: "A", Barcode: "111111111111"})
	require.NoError(t, err)

	codes := []string{"111111111111", "222222222222"}
	f.products.barcode = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}
	p, err := f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "B", Name: "B"})
	require.NoError(t, err)
	assert.Equal(t, "222222222222", p.Barcode)

	f.products.barcode = func() string { return "111111111111" }
	_, err = f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "C", Name: "C"})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestProduct_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "X", Name: "X", Barcode: "12345"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Fields)
	assert.Equal(t, "barcode", verr.Fields[0].Field)

	_, err = f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "X", Name: "X", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	missing := uuid.NewString()
	_, err = f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "X", Name: "X", SupplierID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.products.Create(ctx, domain.Principal{}, dto.CreateProductRequest{SKU: "X", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProduct_ListFiltraYUpdateAudita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, err := f.categories.Create(ctx, f.admin, dto.CreateCategoryRequest{Name: "Pinturas"})
	require.NoError(t, err)
	p1, err := f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "PIN-1", Name: "Vinilo blanco", CategoryID: &cat.ID})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "TOR-1", Name: "Tornillo"})
	require.NoError(t, err)

	byCat, err := f.products.List(ctx, f.admin, dto.ProductFilterRequest{CategoryID: cat.ID})
	require.NoError(t, err)
	require.Len(t, byCat.Items, 1)
	assert.Equal(t, p1.ID, byCat.Items[0].ID)

	bySearch, err := f.products.List(ctx, f.admin, dto.ProductFilterRequest{Search: "tor"})
	require.NoError(t, err)
	require.Len(t, bySearch.Items, 1)
	assert.Equal(t, "TOR-1", bySearch.Items[0].SKU)

	price := decimal.NewFromInt(42000)
	sku := "pin-2"
	updated, err := f.products.Update(ctx, f.admin, p1.ID, dto.UpdateProductRequest{UnitPrice: &price, SKU: &sku})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.UnitPrice))
	assert.Equal(t, "PIN-2", updated.SKU)
	assert.Equal(t, 2, f.auditCount(t, entity.AuditEntityProduct, p1.ID))

	require.NoError(t, f.products.Delete(ctx, f.admin, p1.ID))
	assert.ErrorIs(t, f.products.Delete(ctx, f.admin, p1.ID), domain.ErrNotFound)
	assert.Equal(t, 3, f.auditCount(t, entity.AuditEntityProduct, p1.ID))
}

// ─────────────────────────────────────────────────────────────────────────────
// Usuarios y auditoría
// ─────────────────────────────────────────────────────────────────────────────

func TestUser_MeListYRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	staff := f.addUser(t, f.admin.CompanyID, "bodega@tienda.co", domain.RoleWarehouseStaff)
	staffP := domain.Principal{UserID: staff.ID, CompanyID: staff.CompanyID, Roles: staff.Roles}

	me, err := f.users.Me(ctx, staffP)
	require.NoError(t, err)
	assert.Equal(t, "bodega@tienda.co", me.Email)

	_, err = f.users.List(ctx, staffP, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := f.users.List(ctx, f.admin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	out, err := f.users.UpdateRoles(ctx, f.admin, staff.ID, dto.UpdateRolesRequest{
		Roles: []string{domain.RoleStoreManager, domain.RoleWarehouseStaff, domain.RoleStoreManager},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleStoreManager, domain.RoleWarehouseStaff}, out.Roles)

	_, err = f.users.UpdateRoles(ctx, f.admin, staff.ID, dto.UpdateRolesRequest{Roles: []string{"superuser"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.users.UpdateRoles(ctx, f.otherTenant(t), staff.ID, dto.UpdateRolesRequest{Roles: []string{domain.RoleAdmin}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditLog_ListYByEntity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, err := f.warehouses.Create(ctx, f.admin, dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)
	name := "Norte 2"
	_, err = f.warehouses.Update(ctx, f.admin, w.ID, dto.UpdateWarehouseRequest{Name: &name})
	require.NoError(t, err)

	byEntity, err := f.auditLogs.ByEntity(ctx, f.admin, dto.AuditLogFilterRequest{Entity: entity.AuditEntityWarehouse, EntityID: w.ID})
	require.NoError(t, err)
	require.Len(t, byEntity.Items, 2)
	assert.Equal(t, entity.AuditUpdate, byEntity.Items[0].Action)
	assert.Equal(t, f.admin.UserID, byEntity.Items[0].UserID)
	assert.Contains(t, string(byEntity.Items[0].Changes), "Norte 2")

	_, err = f.auditLogs.ByEntity(ctx, f.admin, dto.AuditLogFilterRequest{Entity: entity.AuditEntityWarehouse})
	assert.ErrorIs(t, err, domain.ErrValidation)

	rep := f.admin
	rep.Roles = []string{domain.RoleStoreManager}
	_, err = f.auditLogs.List(ctx, rep, dto.AuditLogFilterRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ─────────────────────────────────────────────────────────────────────────────

type recordingMailer struct {
	template string
	to       string
	data     map[string]any
	err      error
}

func (m *recordingMailer) Send(_ context.Context, to, template string, data map[string]any) error {
	m.to, m.template, m.data = to, template, data
	return m.err
}

func TestNotification_EnviaPlantillas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mailer := &recordingMailer{}
	uc := NewNotificationUseCase(mailer, nil)

	qty := 2
	out, err := uc.LowStock(ctx, f.admin, dto.LowStockNotificationRequest{Email: "jefe@tienda.co", ProductName: "Martillo", Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, out.Sent)
	assert.Equal(t, ports.TemplateLowStock, mailer.template)
	assert.Equal(t, 2, mailer.data["Quantity"])

	_, err = uc.StockAdjustment(ctx, f.admin, dto.StockAdjustmentNotificationRequest{
		Email: "jefe@tienda.co", ProductName: "Martillo", Type: "IN", Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, ports.TemplateStockAdjustment, mailer.template)

	_, err = uc.StockAdjustment(ctx, f.admin, dto.StockAdjustmentNotificationRequest{
		Email: "jefe@tienda.co", ProductName: "Martillo", Type: "ADJUSTMENT", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	mailer.err = errors.New("smtp caído")
	_, err = uc.LowStock(ctx, f.admin, dto.LowStockNotificationRequest{Email: "jefe@tienda.co", ProductName: "Martillo", Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInternal)

	_, err = NewNotificationUseCase(nil, nil).LowStock(ctx, f.admin, dto.LowStockNotificationRequest{Email: "a@b.co", ProductName: "x", Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInternal)
}
