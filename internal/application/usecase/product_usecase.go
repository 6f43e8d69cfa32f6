package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventory-ledger-api/internal/application/apperr"
	"github.com/jhoicas/inventory-ledger-api/internal/application/audit"
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// barcodeAttempts intentos de generar un código de barras libre antes de rendirse.
const barcodeAttempts = 10

// ProductUseCase casos de uso CRUD para productos. La cantidad se mueve solo vía el libro de stock.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	audit      *audit.Recorder
	log        *logger.Logger
	upper      cases.Caser
	barcode    func() string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	rec *audit.Recorder,
	log *logger.Logger,
) *ProductUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &ProductUseCase{
		repo:       repo,
		categories: categories,
		suppliers:  suppliers,
		audit:      rec,
		log:        log,
		upper:      cases.Upper(language.Und),
		barcode:    randomBarcode,
	}
}

// Create crea un producto. El SKU se normaliza en mayúsculas; sin barcode se genera uno.
func (uc *ProductUseCase) Create(ctx context.Context, p domain.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.Invalid("unit_price no puede ser negativo")
	}
	if err := uc.requireRefs(ctx, p.CompanyID, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	barcode := in.Barcode
	if barcode == "" {
		var err error
		if barcode, err = uc.freeBarcode(ctx, p.CompanyID); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		SKU:         uc.normalizeSKU(in.SKU),
		Barcode:     barcode,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Unit:        in.Unit,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, apperr.Wrap(uc.log, "product.create", err, "sku", product.SKU)
	}
	out := toProductResponse(product)
	uc.audit.Record(ctx, p, entity.AuditCreate, entity.AuditEntityProduct, product.ID, out)
	return out, nil
}

// GetByID obtiene un producto con su cantidad derivada.
func (uc *ProductUseCase) GetByID(ctx context.Context, p domain.Principal, id string) (*dto.ProductResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "product.get", err, "id", id)
	}
	if product == nil {
		return nil, notFound("producto", id)
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros por categoría, proveedor y búsqueda libre.
func (uc *ProductUseCase) List(ctx context.Context, p domain.Principal, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	page := toPage(in.PageRequest)
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		CompanyID:  p.CompanyID,
		CategoryID: in.CategoryID,
		SupplierID: in.SupplierID,
		Search:     strings.TrimSpace(in.Search),
		Page:       page,
	})
	if err != nil {
		return nil, apperr.Wrap(uc.log, "product.list", err, "company_id", p.CompanyID)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *toProductResponse(pr))
	}
	return &dto.ProductListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update actualiza los datos de catálogo. No toca la cantidad.
func (uc *ProductUseCase) Update(ctx context.Context, p domain.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.Invalid("unit_price no puede ser negativo")
	}
	product, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return nil, apperr.Wrap(uc.log, "product.update", err, "id", id)
	}
	if product == nil {
		return nil, notFound("producto", id)
	}
	if err := uc.requireRefs(ctx, p.CompanyID, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	before := toProductResponse(product)
	if in.SKU != nil {
		product.SKU = uc.normalizeSKU(*in.SKU)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = in.SupplierID
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, apperr.Wrap(uc.log, "product.update", err, "id", id)
	}
	out := toProductResponse(product)
	uc.audit.Record(ctx, p, entity.AuditUpdate, entity.AuditEntityProduct, id, audit.Change{Before: before, After: out})
	return out, nil
}

// Delete elimina un producto. Conflict si ya tiene niveles, movimientos o documentos.
func (uc *ProductUseCase) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	product, err := uc.repo.GetByID(ctx, p.CompanyID, id)
	if err != nil {
		return apperr.Wrap(uc.log, "product.delete", err, "id", id)
	}
	if product == nil {
		return notFound("producto", id)
	}
	if err := uc.repo.Delete(ctx, p.CompanyID, id); err != nil {
		return apperr.Wrap(uc.log, "product.delete", err, "id", id)
	}
	uc.audit.Record(ctx, p, entity.AuditDelete, entity.AuditEntityProduct, id, toProductResponse(product))
	return nil
}

func (uc *ProductUseCase) normalizeSKU(sku string) string {
	return uc.upper.String(strings.TrimSpace(sku))
}

func (uc *ProductUseCase) requireRefs(ctx context.Context, companyID string, categoryID, supplierID *string) error {
	if categoryID != nil {
		c, err := uc.categories.GetByID(ctx, companyID, *categoryID)
		if err != nil {
			return apperr.Wrap(uc.log, "product.category", err, "category_id", *categoryID)
		}
		if c == nil {
			return notFound("categoría", *categoryID)
		}
	}
	if supplierID != nil {
		s, err := uc.suppliers.GetByID(ctx, companyID, *supplierID)
		if err != nil {
			return apperr.Wrap(uc.log, "product.supplier", err, "supplier_id", *supplierID)
		}
		if s == nil {
			return notFound("proveedor", *supplierID)
		}
	}
	return nil
}

func (uc *ProductUseCase) freeBarcode(ctx context.Context, companyID string) (string, error) {
	for range barcodeAttempts {
		code := uc.barcode()
		taken, err := uc.repo.BarcodeExists(ctx, companyID, code)
		if err != nil {
			return "", apperr.Wrap(uc.log, "product.barcode", err, "company_id", companyID)
		}
		if !taken {
			return code, nil
		}
	}
	uc.log.Error().Str("company_id", companyID).Msg("no se encontró un código de barras libre")
	return "", domain.Internal("product.barcode", fmt.Errorf("sin código libre tras %d intentos", barcodeAttempts))
}

// randomBarcode 12 dígitos; el primero nunca es cero.
func randomBarcode() string {
	return fmt.Sprintf("%d%011d", 1+rand.IntN(9), rand.Int64N(100_000_000_000))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Unit:        p.Unit,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
