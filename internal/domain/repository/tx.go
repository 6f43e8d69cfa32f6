package repository

// TxRepositories repositorios atados a una misma transacción de BD.
type TxRepositories struct {
	StockLevels  StockLevelRepository
	Transactions TransactionRepository
	Products     ProductRepository
	Warehouses   WarehouseRepository
	Purchases    PurchaseRepository
	Sales        SaleRepository
	AuditLogs    AuditLogRepository
}
