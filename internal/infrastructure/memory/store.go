// Package memory implementa todos los repositorios y el TxRunner en memoria.
// Se usa con STORAGE_DRIVER=memory y en los tests de casos de uso y HTTP.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// state conjunto de "tablas". Los valores se guardan por copia; nunca se comparten punteros con el llamador.
type state struct {
	companies    map[string]entity.Company
	users        map[string]entity.User
	categories   map[string]entity.Category
	suppliers    map[string]entity.Supplier
	warehouses   map[string]entity.Warehouse
	products     map[string]entity.Product
	stockLevels  map[string]entity.StockLevel
	transactions []entity.Transaction // orden de inserción
	purchases    map[string]entity.Purchase
	sales        map[string]entity.Sale
	auditLogs    []entity.AuditLog
}

func newState() *state {
	return &state{
		companies:   map[string]entity.Company{},
		users:       map[string]entity.User{},
		categories:  map[string]entity.Category{},
		suppliers:   map[string]entity.Supplier{},
		warehouses:  map[string]entity.Warehouse{},
		products:    map[string]entity.Product{},
		stockLevels: map[string]entity.StockLevel{},
		purchases:   map[string]entity.Purchase{},
		sales:       map[string]entity.Sale{},
	}
}

// clone copia las tablas para poder descartar los cambios (rollback).
func (s *state) clone() *state {
	return &state{
		companies:    maps.Clone(s.companies),
		users:        maps.Clone(s.users),
		categories:   maps.Clone(s.categories),
		suppliers:    maps.Clone(s.suppliers),
		warehouses:   maps.Clone(s.warehouses),
		products:     maps.Clone(s.products),
		stockLevels:  maps.Clone(s.stockLevels),
		transactions: slices.Clone(s.transactions),
		purchases:    maps.Clone(s.purchases),
		sales:        maps.Clone(s.sales),
		auditLogs:    slices.Clone(s.auditLogs),
	}
}

// accessor da acceso exclusivo al estado: con lock (fuera de tx) o directo (dentro de tx).
type accessor interface {
	read(fn func(s *state) error) error
	write(fn func(s *state) error) error
}

// Store base de datos en memoria. Las transacciones se serializan con un mutex
// y trabajan sobre una copia que solo se publica en el commit.
type Store struct {
	mu   sync.RWMutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// txView acceso al snapshot de una transacción en curso; el lock lo tiene Run.
type txView struct {
	st *state
}

func (v txView) read(fn func(st *state) error) error  { return fn(v.st) }
func (v txView) write(fn func(st *state) error) error { return fn(v.st) }

// Run ejecuta fn con repositorios sobre un snapshot. Error => se descarta el snapshot.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	view := txView{st: snapshot}
	if err := fn(repository.TxRepositories{
		StockLevels:  &StockLevelRepo{a: view},
		Transactions: &TransactionRepo{a: view},
		Products:     &ProductRepo{a: view},
		Warehouses:   &WarehouseRepo{a: view},
		Purchases:    &PurchaseRepo{a: view},
		Sales:        &SaleRepo{a: view},
		AuditLogs:    &AuditLogRepo{a: view},
	}); err != nil {
		return err
	}
	s.data = snapshot
	return nil
}

// Repositorios fuera de transacción.

func (s *Store) Companies() *CompanyRepo        { return &CompanyRepo{a: s} }
func (s *Store) Users() *UserRepo               { return &UserRepo{a: s} }
func (s *Store) Categories() *CategoryRepo      { return &CategoryRepo{a: s} }
func (s *Store) Suppliers() *SupplierRepo       { return &SupplierRepo{a: s} }
func (s *Store) Warehouses() *WarehouseRepo     { return &WarehouseRepo{a: s} }
func (s *Store) Products() *ProductRepo         { return &ProductRepo{a: s} }
func (s *Store) StockLevels() *StockLevelRepo   { return &StockLevelRepo{a: s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{a: s} }
func (s *Store) Purchases() *PurchaseRepo       { return &PurchaseRepo{a: s} }
func (s *Store) Sales() *SaleRepo               { return &SaleRepo{a: s} }
func (s *Store) AuditLogs() *AuditLogRepo       { return &AuditLogRepo{a: s} }
func (s *Store) Reports() *ReportRepo           { return &ReportRepo{a: s} }

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](items []T, p repository.Page) []T {
	if p.Offset > 0 {
		if p.Offset >= len(items) {
			return nil
		}
		items = items[p.Offset:]
	}
	if p.Limit > 0 && len(items) > p.Limit {
		items = items[:p.Limit]
	}
	return items
}

func ptr[T any](v T) *T { return &v }

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	return ptr(*p)
}

func triple(companyID, productID, warehouseID string) string {
	return companyID + "|" + productID + "|" + warehouseID
}
