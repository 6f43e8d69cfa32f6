package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository   = (*CompanyRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
)

func duplicate(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrDuplicate, what)
}

func referenced(what string) error {
	return fmt.Errorf("%w: %s referenciado por otros registros o referencia inexistente", domain.ErrConflict, what)
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
}

// ── Companies ────────────────────────────────────────────────────────────────

type CompanyRepo struct{ a accessor }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.a.write(func(s *state) error {
		for _, existing := range s.companies {
			if existing.Name == c.Name {
				return duplicate("company name")
			}
		}
		s.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.a.read(func(s *state) error {
		if c, ok := s.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	var out *entity.Company
	err := r.a.read(func(s *state) error {
		for _, c := range s.companies {
			if c.Name == name {
				out = ptr(c)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.companies[c.ID]; !ok {
			return notFound("update company")
		}
		for id, existing := range s.companies {
			if id != c.ID && existing.Name == c.Name {
				return duplicate("company name")
			}
		}
		s.companies[c.ID] = *c
		return nil
	})
}

// ── Users ────────────────────────────────────────────────────────────────────

type UserRepo struct{ a accessor }

func copyUser(u entity.User) *entity.User {
	u.Roles = slices.Clone(u.Roles)
	return &u
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.companies[u.CompanyID]; !ok {
			return referenced("user company")
		}
		for _, existing := range s.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		s.users[u.ID] = *copyUser(*u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, companyID, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(s *state) error {
		if u, ok := s.users[id]; ok && u.CompanyID == companyID {
			out = copyUser(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(s *state) error {
		for _, u := range s.users {
			if strings.EqualFold(u.Email, email) {
				out = copyUser(u)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, p repository.Page) ([]*entity.User, error) {
	var out []*entity.User
	err := r.a.read(func(s *state) error {
		for _, u := range s.users {
			if u.CompanyID == companyID {
				out = append(out, copyUser(u))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.User) int { return cmp.Compare(a.Email, b.Email) })
	return page(out, p), err
}

func (r *UserRepo) UpdateRoles(_ context.Context, companyID, id string, roles []string) error {
	return r.a.write(func(s *state) error {
		u, ok := s.users[id]
		if !ok || u.CompanyID != companyID {
			return notFound("update user roles")
		}
		u.Roles = slices.Clone(roles)
		s.users[id] = u
		return nil
	})
}

// ── Categories ───────────────────────────────────────────────────────────────

type CategoryRepo struct{ a accessor }

func copyCategory(c entity.Category) *entity.Category {
	c.ParentID = cloneStr(c.ParentID)
	return &c
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.a.write(func(s *state) error {
		if c.ParentID != nil {
			if _, ok := s.categories[*c.ParentID]; !ok {
				return referenced("category parent")
			}
		}
		s.categories[c.ID] = *copyCategory(*c)
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, companyID, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.read(func(s *state) error {
		if c, ok := s.categories[id]; ok && c.CompanyID == companyID {
			out = copyCategory(c)
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) ListByCompany(_ context.Context, companyID string, p repository.Page) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.a.read(func(s *state) error {
		for _, c := range s.categories {
			if c.CompanyID == companyID {
				out = append(out, copyCategory(c))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Category) int { return cmp.Compare(a.Name, b.Name) })
	return page(out, p), err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.a.write(func(s *state) error {
		existing, ok := s.categories[c.ID]
		if !ok || existing.CompanyID != c.CompanyID {
			return notFound("update category")
		}
		s.categories[c.ID] = *copyCategory(*c)
		return nil
	})
}

func (r *CategoryRepo) Delete(_ context.Context, companyID, id string) error {
	return r.a.write(func(s *state) error {
		c, ok := s.categories[id]
		if !ok || c.CompanyID != companyID {
			return notFound("delete category")
		}
		for _, child := range s.categories {
			if child.ParentID != nil && *child.ParentID == id {
				return referenced("delete category")
			}
		}
		for _, p := range s.products {
			if p.CategoryID != nil && *p.CategoryID == id {
				return referenced("delete category")
			}
		}
		delete(s.categories, id)
		return nil
	})
}

// ── Suppliers ────────────────────────────────────────────────────────────────

type SupplierRepo struct{ a accessor }

func (r *SupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	return r.a.write(func(s *state) error {
		s.suppliers[sp.ID] = *sp
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, companyID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.a.read(func(s *state) error {
		if sp, ok := s.suppliers[id]; ok && sp.CompanyID == companyID {
			out = &sp
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) ListByCompany(_ context.Context, companyID string, p repository.Page) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.a.read(func(s *state) error {
		for _, sp := range s.suppliers {
			if sp.CompanyID == companyID {
				out = append(out, ptr(sp))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Supplier) int { return cmp.Compare(a.Name, b.Name) })
	return page(out, p), err
}

func (r *SupplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	return r.a.write(func(s *state) error {
		existing, ok := s.suppliers[sp.ID]
		if !ok || existing.CompanyID != sp.CompanyID {
			return notFound("update supplier")
		}
		s.suppliers[sp.ID] = *sp
		return nil
	})
}

func (r *SupplierRepo) Delete(_ context.Context, companyID, id string) error {
	return r.a.write(func(s *state) error {
		sp, ok := s.suppliers[id]
		if !ok || sp.CompanyID != companyID {
			return notFound("delete supplier")
		}
		for _, p := range s.products {
			if p.SupplierID != nil && *p.SupplierID == id {
				return referenced("delete supplier")
			}
		}
		for _, pu := range s.purchases {
			if pu.SupplierID != nil && *pu.SupplierID == id {
				return referenced("delete supplier")
			}
		}
		delete(s.suppliers, id)
		return nil
	})
}

// ── Warehouses ───────────────────────────────────────────────────────────────

type WarehouseRepo struct{ a accessor }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.a.write(func(s *state) error {
		s.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, companyID, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.a.read(func(s *state) error {
		if w, ok := s.warehouses[id]; ok && w.CompanyID == companyID {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) ListByCompany(_ context.Context, companyID string, p repository.Page) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.a.read(func(s *state) error {
		for _, w := range s.warehouses {
			if w.CompanyID == companyID {
				out = append(out, ptr(w))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Warehouse) int { return cmp.Compare(a.Name, b.Name) })
	return page(out, p), err
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.a.write(func(s *state) error {
		existing, ok := s.warehouses[w.ID]
		if !ok || existing.CompanyID != w.CompanyID {
			return notFound("update warehouse")
		}
		s.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) Delete(_ context.Context, companyID, id string) error {
	return r.a.write(func(s *state) error {
		w, ok := s.warehouses[id]
		if !ok || w.CompanyID != companyID {
			return notFound("delete warehouse")
		}
		if s.warehouseInUse(id) {
			return referenced("delete warehouse")
		}
		delete(s.warehouses, id)
		return nil
	})
}

func (s *state) warehouseInUse(id string) bool {
	for _, l := range s.stockLevels {
		if l.WarehouseID == id {
			return true
		}
	}
	for _, t := range s.transactions {
		if t.WarehouseID == id {
			return true
		}
	}
	for _, p := range s.purchases {
		if p.WarehouseID == id {
			return true
		}
	}
	for _, sa := range s.sales {
		if sa.WarehouseID == id {
			return true
		}
	}
	return false
}

// ── Products ─────────────────────────────────────────────────────────────────

type ProductRepo struct{ a accessor }

// withQuantity copia el producto con su cantidad derivada de los niveles.
func (s *state) withQuantity(p entity.Product) *entity.Product {
	p.CategoryID = cloneStr(p.CategoryID)
	p.SupplierID = cloneStr(p.SupplierID)
	p.Quantity = 0
	for _, l := range s.stockLevels {
		if l.ProductID == p.ID && l.CompanyID == p.CompanyID {
			p.Quantity += l.Quantity
		}
	}
	return &p
}

func (s *state) checkProductUnique(p *entity.Product) error {
	for id, existing := range s.products {
		if id == p.ID || existing.CompanyID != p.CompanyID {
			continue
		}
		if existing.SKU == p.SKU {
			return duplicate("product sku")
		}
		if existing.Barcode == p.Barcode {
			return duplicate("product barcode")
		}
	}
	return nil
}

func (s *state) checkProductRefs(p *entity.Product) error {
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return referenced("product category")
		}
	}
	if p.SupplierID != nil {
		if _, ok := s.suppliers[*p.SupplierID]; !ok {
			return referenced("product supplier")
		}
	}
	return nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.write(func(s *state) error {
		if err := s.checkProductUnique(p); err != nil {
			return err
		}
		if err := s.checkProductRefs(p); err != nil {
			return err
		}
		stored := *p
		stored.Quantity = 0
		s.products[p.ID] = stored
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(s *state) error {
		if p, ok := s.products[id]; ok && p.CompanyID == companyID {
			out = s.withQuantity(p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(s *state) error {
		for _, p := range s.products {
			if p.CompanyID == companyID && p.SKU == sku {
				out = s.withQuantity(p)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) BarcodeExists(_ context.Context, companyID, barcode string) (bool, error) {
	var exists bool
	err := r.a.read(func(s *state) error {
		for _, p := range s.products {
			if p.CompanyID == companyID && p.Barcode == barcode {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	search := strings.ToLower(f.Search)
	err := r.a.read(func(s *state) error {
		for _, p := range s.products {
			if p.CompanyID != f.CompanyID {
				continue
			}
			if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
				continue
			}
			if f.SupplierID != "" && (p.SupplierID == nil || *p.SupplierID != f.SupplierID) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) && p.Barcode != f.Search {
				continue
			}
			out = append(out, s.withQuantity(p))
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.SKU, b.SKU)
	})
	return page(out, f.Page), err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.write(func(s *state) error {
		existing, ok := s.products[p.ID]
		if !ok || existing.CompanyID != p.CompanyID {
			return notFound("update product")
		}
		if err := s.checkProductUnique(p); err != nil {
			return err
		}
		if err := s.checkProductRefs(p); err != nil {
			return err
		}
		stored := *p
		stored.Quantity = 0
		s.products[p.ID] = stored
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, companyID, id string) error {
	return r.a.write(func(s *state) error {
		p, ok := s.products[id]
		if !ok || p.CompanyID != companyID {
			return notFound("delete product")
		}
		if s.productInUse(id) {
			return referenced("delete product")
		}
		delete(s.products, id)
		return nil
	})
}

func (s *state) productInUse(id string) bool {
	for _, l := range s.stockLevels {
		if l.ProductID == id {
			return true
		}
	}
	for _, t := range s.transactions {
		if t.ProductID == id {
			return true
		}
	}
	for _, p := range s.purchases {
		if p.ProductID == id {
			return true
		}
	}
	for _, sa := range s.sales {
		if sa.ProductID == id {
			return true
		}
	}
	return false
}
