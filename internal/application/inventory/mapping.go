package inventory

import (
	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

func toStockLevelResponse(l *entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ID:          l.ID,
		CompanyID:   l.CompanyID,
		ProductID:   l.ProductID,
		WarehouseID: l.WarehouseID,
		Quantity:    l.Quantity,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:             t.ID,
		CompanyID:      t.CompanyID,
		ProductID:      t.ProductID,
		WarehouseID:    t.WarehouseID,
		Type:           t.Type,
		Direction:      t.Direction,
		Quantity:       t.Quantity,
		SignedQuantity: t.SignedQuantity(),
		Reference:      t.Reference,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
	}
}

func toAdjustmentResult(r *AdjustResult) *dto.AdjustmentResult {
	return &dto.AdjustmentResult{
		Transaction: toTransactionResponse(r.Transaction),
		StockLevel:  toStockLevelResponse(r.Level),
	}
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SupplierID:  p.SupplierID,
		ProductID:   p.ProductID,
		WarehouseID: p.WarehouseID,
		Quantity:    p.Quantity,
		UnitCost:    p.UnitCost,
		TotalCost:   p.TotalCost(),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Total:       s.Total(),
		CreatedBy:   s.CreatedBy,
		SoldAt:      s.SoldAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toPage(p dto.PageRequest) repository.Page {
	p.DefaultPage()
	return repository.Page{Limit: p.Limit, Offset: p.Offset}
}

func pageResponse(p repository.Page) dto.PageResponse {
	return dto.PageResponse{Limit: p.Limit, Offset: p.Offset}
}
