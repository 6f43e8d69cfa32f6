package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo recalcula los reportes recorriendo las tablas en cada llamada.
type ReportRepo struct{ a accessor }

func (r *ReportRepo) LowStock(_ context.Context, companyID string, threshold int) ([]entity.LowStockItem, error) {
	var items []entity.LowStockItem
	err := r.a.read(func(s *state) error {
		withLevel := map[string]bool{}
		for _, l := range s.stockLevels {
			if l.CompanyID != companyID {
				continue
			}
			withLevel[l.ProductID] = true
			if l.Quantity > threshold {
				continue
			}
			p := s.products[l.ProductID]
			w := s.warehouses[l.WarehouseID]
			items = append(items, entity.LowStockItem{
				ProductID:     p.ID,
				SKU:           p.SKU,
				ProductName:   p.Name,
				WarehouseID:   ptr(w.ID),
				WarehouseName: ptr(w.Name),
				Quantity:      l.Quantity,
			})
		}
		if threshold < 0 {
			return nil
		}
		for _, p := range s.products {
			if p.CompanyID == companyID && !withLevel[p.ID] {
				items = append(items, entity.LowStockItem{ProductID: p.ID, SKU: p.SKU, ProductName: p.Name})
			}
		}
		return nil
	})
	slices.SortFunc(items, func(a, b entity.LowStockItem) int {
		if c := cmp.Compare(a.Quantity, b.Quantity); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductName, b.ProductName)
	})
	return items, err
}

func (r *ReportRepo) PurchaseSummary(_ context.Context, companyID string) ([]entity.PurchaseSummaryRow, error) {
	byProduct := map[string]*entity.PurchaseSummaryRow{}
	err := r.a.read(func(s *state) error {
		for _, pu := range s.purchases {
			if pu.CompanyID != companyID {
				continue
			}
			row, ok := byProduct[pu.ProductID]
			if !ok {
				p := s.products[pu.ProductID]
				row = &entity.PurchaseSummaryRow{ProductID: p.ID, SKU: p.SKU, ProductName: p.Name, TotalCost: decimal.Zero}
				byProduct[pu.ProductID] = row
			}
			row.TotalQuantity += pu.Quantity
			row.TotalCost = row.TotalCost.Add(pu.TotalCost())
		}
		return nil
	})
	rows := make([]entity.PurchaseSummaryRow, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b entity.PurchaseSummaryRow) int {
		if c := b.TotalCost.Cmp(a.TotalCost); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductName, b.ProductName)
	})
	return rows, err
}

func (r *ReportRepo) SalesSummary(_ context.Context, companyID string) ([]entity.SalesSummaryRow, error) {
	byProduct := map[string]*entity.SalesSummaryRow{}
	err := r.a.read(func(s *state) error {
		for _, sa := range s.sales {
			if sa.CompanyID != companyID {
				continue
			}
			row, ok := byProduct[sa.ProductID]
			if !ok {
				p := s.products[sa.ProductID]
				row = &entity.SalesSummaryRow{ProductID: p.ID, SKU: p.SKU, ProductName: p.Name, TotalRevenue: decimal.Zero}
				byProduct[sa.ProductID] = row
			}
			row.TotalQuantity += sa.Quantity
			row.TotalRevenue = row.TotalRevenue.Add(sa.Total())
		}
		return nil
	})
	rows := make([]entity.SalesSummaryRow, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b entity.SalesSummaryRow) int {
		if c := b.TotalRevenue.Cmp(a.TotalRevenue); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductName, b.ProductName)
	})
	return rows, err
}

func (r *ReportRepo) Reconciliation(_ context.Context, companyID string) ([]entity.ReconciliationRow, error) {
	type pair struct{ product, warehouse string }
	rowsByPair := map[pair]*entity.ReconciliationRow{}
	get := func(k pair) *entity.ReconciliationRow {
		row, ok := rowsByPair[k]
		if !ok {
			row = &entity.ReconciliationRow{ProductID: k.product, WarehouseID: k.warehouse}
			rowsByPair[k] = row
		}
		return row
	}
	err := r.a.read(func(s *state) error {
		for _, l := range s.stockLevels {
			if l.CompanyID == companyID {
				get(pair{l.ProductID, l.WarehouseID}).LevelQuantity = l.Quantity
			}
		}
		for i := range s.transactions {
			t := &s.transactions[i]
			if t.CompanyID == companyID {
				get(pair{t.ProductID, t.WarehouseID}).LedgerSum += t.SignedQuantity()
			}
		}
		return nil
	})
	var rows []entity.ReconciliationRow
	for _, row := range rowsByPair {
		if row.LevelQuantity != row.LedgerSum {
			rows = append(rows, *row)
		}
	}
	slices.SortFunc(rows, func(a, b entity.ReconciliationRow) int {
		if c := cmp.Compare(a.ProductID, b.ProductID); c != 0 {
			return c
		}
		return cmp.Compare(a.WarehouseID, b.WarehouseID)
	})
	return rows, err
}
