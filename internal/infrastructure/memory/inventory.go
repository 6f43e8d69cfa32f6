package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var (
	_ repository.StockLevelRepository  = (*StockLevelRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.PurchaseRepository    = (*PurchaseRepo)(nil)
	_ repository.SaleRepository        = (*SaleRepo)(nil)
	_ repository.AuditLogRepository    = (*AuditLogRepo)(nil)
)

// ── Stock levels ─────────────────────────────────────────────────────────────

type StockLevelRepo struct{ a accessor }

func (r *StockLevelRepo) Ensure(_ context.Context, l *entity.StockLevel) error {
	return r.a.write(func(s *state) error {
		key := triple(l.CompanyID, l.ProductID, l.WarehouseID)
		if _, ok := s.stockLevels[key]; ok {
			return nil
		}
		if p, ok := s.products[l.ProductID]; !ok || p.CompanyID != l.CompanyID {
			return referenced("stock level product")
		}
		if w, ok := s.warehouses[l.WarehouseID]; !ok || w.CompanyID != l.CompanyID {
			return referenced("stock level warehouse")
		}
		stored := *l
		stored.Quantity = 0
		stored.UpdatedAt = l.CreatedAt
		s.stockLevels[key] = stored
		return nil
	})
}

// GetForUpdate equivale a Get: dentro de Run el lock del store ya serializa las transacciones.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.Get(ctx, companyID, productID, warehouseID)
}

func (r *StockLevelRepo) Get(_ context.Context, companyID, productID, warehouseID string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.a.read(func(s *state) error {
		if l, ok := s.stockLevels[triple(companyID, productID, warehouseID)]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *StockLevelRepo) GetByID(_ context.Context, companyID, id string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.a.read(func(s *state) error {
		for _, l := range s.stockLevels {
			if l.ID == id && l.CompanyID == companyID {
				out = ptr(l)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *StockLevelRepo) UpdateQuantity(_ context.Context, id string, quantity int, at time.Time) error {
	return r.a.write(func(s *state) error {
		if quantity < 0 {
			return domain.Invalid("la cantidad del nivel no puede ser negativa")
		}
		for key, l := range s.stockLevels {
			if l.ID == id {
				l.Quantity = quantity
				l.UpdatedAt = at
				s.stockLevels[key] = l
				return nil
			}
		}
		return notFound("update stock level")
	})
}

func (r *StockLevelRepo) List(_ context.Context, f repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	err := r.a.read(func(s *state) error {
		for _, l := range s.stockLevels {
			if l.CompanyID != f.CompanyID ||
				(f.ProductID != "" && l.ProductID != f.ProductID) ||
				(f.WarehouseID != "" && l.WarehouseID != f.WarehouseID) {
				continue
			}
			out = append(out, ptr(l))
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.StockLevel) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return page(out, f.Page), err
}

// ── Transactions ─────────────────────────────────────────────────────────────

type TransactionRepo struct{ a accessor }

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	return r.a.write(func(s *state) error {
		if t.Quantity <= 0 {
			return domain.Invalid("quantity debe ser > 0")
		}
		if t.Direction != entity.DirectionIncrease && t.Direction != entity.DirectionDecrease {
			return domain.Invalid("direction inválida")
		}
		if p, ok := s.products[t.ProductID]; !ok || p.CompanyID != t.CompanyID {
			return referenced("transaction product")
		}
		if w, ok := s.warehouses[t.WarehouseID]; !ok || w.CompanyID != t.CompanyID {
			return referenced("transaction warehouse")
		}
		for _, existing := range s.transactions {
			if existing.ID == t.ID {
				return duplicate("transaction id")
			}
		}
		s.transactions = append(s.transactions, *t)
		return nil
	})
}

func (r *TransactionRepo) GetByID(_ context.Context, companyID, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	err := r.a.read(func(s *state) error {
		for _, t := range s.transactions {
			if t.ID == id && t.CompanyID == companyID {
				out = ptr(t)
				break
			}
		}
		return nil
	})
	return out, err
}

// List devuelve los movimientos del más reciente al más antiguo.
func (r *TransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.a.read(func(s *state) error {
		for i := len(s.transactions) - 1; i >= 0; i-- {
			t := s.transactions[i]
			if t.CompanyID != f.CompanyID ||
				(f.ProductID != "" && t.ProductID != f.ProductID) ||
				(f.WarehouseID != "" && t.WarehouseID != f.WarehouseID) ||
				(f.Type != "" && t.Type != f.Type) ||
				(f.From != nil && t.CreatedAt.Before(*f.From)) ||
				(f.To != nil && t.CreatedAt.After(*f.To)) {
				continue
			}
			out = append(out, ptr(t))
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b *entity.Transaction) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(out, f.Page), err
}

// ── Purchases ────────────────────────────────────────────────────────────────

type PurchaseRepo struct{ a accessor }

func copyPurchase(p entity.Purchase) *entity.Purchase {
	p.SupplierID = cloneStr(p.SupplierID)
	return &p
}

func (s *state) checkDocumentRefs(companyID, productID, warehouseID string) error {
	if p, ok := s.products[productID]; !ok || p.CompanyID != companyID {
		return referenced("product")
	}
	if w, ok := s.warehouses[warehouseID]; !ok || w.CompanyID != companyID {
		return referenced("warehouse")
	}
	return nil
}

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.a.write(func(s *state) error {
		if err := s.checkDocumentRefs(p.CompanyID, p.ProductID, p.WarehouseID); err != nil {
			return err
		}
		if p.SupplierID != nil {
			if sp, ok := s.suppliers[*p.SupplierID]; !ok || sp.CompanyID != p.CompanyID {
				return referenced("purchase supplier")
			}
		}
		s.purchases[p.ID] = *copyPurchase(*p)
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, companyID, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.a.read(func(s *state) error {
		if p, ok := s.purchases[id]; ok && p.CompanyID == companyID {
			out = copyPurchase(p)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *PurchaseRepo) ListByCompany(_ context.Context, companyID string, p repository.Page) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := r.a.read(func(s *state) error {
		for _, pu := range s.purchases {
			if pu.CompanyID == companyID {
				out = append(out, copyPurchase(pu))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Purchase) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return page(out, p), err
}

func (r *PurchaseRepo) Update(_ context.Context, p *entity.Purchase) error {
	return r.a.write(func(s *state) error {
		existing, ok := s.purchases[p.ID]
		if !ok || existing.CompanyID != p.CompanyID {
			return notFound("update purchase")
		}
		if err := s.checkDocumentRefs(p.CompanyID, p.ProductID, p.WarehouseID); err != nil {
			return err
		}
		s.purchases[p.ID] = *copyPurchase(*p)
		return nil
	})
}

func (r *PurchaseRepo) Delete(_ context.Context, companyID, id string) error {
	return r.a.write(func(s *state) error {
		p, ok := s.purchases[id]
		if !ok || p.CompanyID != companyID {
			return notFound("delete purchase")
		}
		delete(s.purchases, id)
		return nil
	})
}

// ── Sales ────────────────────────────────────────────────────────────────────

type SaleRepo struct{ a accessor }

func (r *SaleRepo) Create(_ context.Context, sa *entity.Sale) error {
	return r.a.write(func(s *state) error {
		if err := s.checkDocumentRefs(sa.CompanyID, sa.ProductID, sa.WarehouseID); err != nil {
			return err
		}
		s.sales[sa.ID] = *sa
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, companyID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.a.read(func(s *state) error {
		if sa, ok := s.sales[id]; ok && sa.CompanyID == companyID {
			out = &sa
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *SaleRepo) ListByCompany(_ context.Context, companyID string, p repository.Page) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.a.read(func(s *state) error {
		for _, sa := range s.sales {
			if sa.CompanyID == companyID {
				out = append(out, ptr(sa))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Sale) int {
		if c := b.SoldAt.Compare(a.SoldAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return page(out, p), err
}

func (r *SaleRepo) Update(_ context.Context, sa *entity.Sale) error {
	return r.a.write(func(s *state) error {
		existing, ok := s.sales[sa.ID]
		if !ok || existing.CompanyID != sa.CompanyID {
			return notFound("update sale")
		}
		if err := s.checkDocumentRefs(sa.CompanyID, sa.ProductID, sa.WarehouseID); err != nil {
			return err
		}
		s.sales[sa.ID] = *sa
		return nil
	})
}

func (r *SaleRepo) Delete(_ context.Context, companyID, id string) error {
	return r.a.write(func(s *state) error {
		sa, ok := s.sales[id]
		if !ok || sa.CompanyID != companyID {
			return notFound("delete sale")
		}
		delete(s.sales, id)
		return nil
	})
}

// ── Audit logs ───────────────────────────────────────────────────────────────

type AuditLogRepo struct{ a accessor }

func (r *AuditLogRepo) Create(_ context.Context, l *entity.AuditLog) error {
	return r.a.write(func(s *state) error {
		stored := *l
		stored.Changes = slices.Clone(l.Changes)
		s.auditLogs = append(s.auditLogs, stored)
		return nil
	})
}

func (r *AuditLogRepo) List(_ context.Context, f repository.AuditLogFilter) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	err := r.a.read(func(s *state) error {
		for i := len(s.auditLogs) - 1; i >= 0; i-- {
			l := s.auditLogs[i]
			if l.CompanyID != f.CompanyID ||
				(f.Entity != "" && l.Entity != f.Entity) ||
				(f.EntityID != "" && l.EntityID != f.EntityID) {
				continue
			}
			l.Changes = slices.Clone(l.Changes)
			out = append(out, &l)
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b *entity.AuditLog) int { return b.Timestamp.Compare(a.Timestamp) })
	return page(out, f.Page), err
}
