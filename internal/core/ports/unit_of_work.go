package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It tracks the aggregates its repositories touch and, on Commit, appends
// the transitions they recorded to the transition log in the same
// transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit writes pending transition records and commits the transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	RFQRepository() RFQRepository
	SupplierQuoteRepository() SupplierQuoteRepository
	SalesQuoteRepository() SalesQuoteRepository
	PurchaseOrderRepository() PurchaseOrderRepository
	SalesOrderRepository() SalesOrderRepository
}
