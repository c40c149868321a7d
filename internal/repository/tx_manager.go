package repository

import "context"

// Repositories rebuilt on the transaction handle.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Cart() CartRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	AuditLogs() AuditLogRepository
}

// TransactionManager hides begin/commit/rollback from the usecases.
// fn returning an error rolls the whole transaction back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
