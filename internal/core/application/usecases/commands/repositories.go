// Package commands contains business operations that modify system state.
// It is the write side of the order lifecycle: every transition an actor
// requests is loaded, validated by the domain and persisted in one unit of
// work. Handlers return the post-transition aggregate so callers never need
// a second read to learn the outcome.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RFQRepoFactory interface {
		RFQRepository() ports.RFQRepository
	}

	SupplierQuoteRepoFactory interface {
		SupplierQuoteRepository() ports.SupplierQuoteRepository
	}

	SalesQuoteRepoFactory interface {
		SalesQuoteRepository() ports.SalesQuoteRepository
	}

	PurchaseOrderRepoFactory interface {
		PurchaseOrderRepository() ports.PurchaseOrderRepository
	}

	SalesOrderRepoFactory interface {
		SalesOrderRepository() ports.SalesOrderRepository
	}

	// RFQUoW manages transactions for RFQ-only operations.
	RFQUoW interface {
		TxManager
		RFQRepoFactory
	}

	// RFQUoWFactory creates new RFQ unit of work instances.
	RFQUoWFactory interface {
		Create() RFQUoW
	}

	// UoW manages transactions across every lifecycle aggregate.
	// Used for commands that coordinate changes between several entities.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   quote, err := uow.SalesQuoteRepository().Get(ctx, id)
	//   r, err := uow.RFQRepository().Get(ctx, quote.RFQID())
	//   // ... apply transitions, update both
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RFQRepoFactory
		SupplierQuoteRepoFactory
		SalesQuoteRepoFactory
		PurchaseOrderRepoFactory
		SalesOrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
