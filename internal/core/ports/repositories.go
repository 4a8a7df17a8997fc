// Package ports defines the contracts between the order lifecycle core and
// its infrastructure: the Entity Store repositories, the unit of work that
// binds them to one transaction, and the external collaborators (file store,
// numbering registry, notification sink, identity provider).
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
)

// Every repository follows the same rules:
//   - Get returns errs.ErrObjectNotFound when the row does not exist
//   - Update is conditional on the version the aggregate was read with and
//     returns errs.ErrConcurrentModification when another writer got there first
//   - Add returns errs.ErrDuplicateCreation when a uniqueness constraint fires

// RFQRepository stores RFQs together with their assigned supplier set.
type RFQRepository interface {
	Add(ctx context.Context, aggregate *rfq.RFQ) error
	Update(ctx context.Context, aggregate *rfq.RFQ) error
	Get(ctx context.Context, id kernel.RFQID) (*rfq.RFQ, error)
}

// SupplierQuoteRepository stores supplier bids. At most one quote per
// (rfq, supplier) pair and at most one accepted quote per RFQ.
type SupplierQuoteRepository interface {
	Add(ctx context.Context, aggregate *supplierquote.SupplierQuote) error
	Update(ctx context.Context, aggregate *supplierquote.SupplierQuote) error
	Get(ctx context.Context, id kernel.SupplierQuoteID) (*supplierquote.SupplierQuote, error)

	// ListByRFQ returns the quotes of an RFQ ordered by submission time.
	ListByRFQ(ctx context.Context, rfqID kernel.RFQID) ([]*supplierquote.SupplierQuote, error)
}

type SalesQuoteRepository interface {
	Add(ctx context.Context, aggregate *salesquote.SalesQuote) error
	Update(ctx context.Context, aggregate *salesquote.SalesQuote) error
	Get(ctx context.Context, id kernel.SalesQuoteID) (*salesquote.SalesQuote, error)
}

// PurchaseOrderRepository stores admin-to-supplier orders. The sales quote
// id is unique: a quote issues at most one purchase order.
type PurchaseOrderRepository interface {
	Add(ctx context.Context, aggregate *purchaseorder.PurchaseOrder) error
	Update(ctx context.Context, aggregate *purchaseorder.PurchaseOrder) error
	Get(ctx context.Context, id kernel.PurchaseOrderID) (*purchaseorder.PurchaseOrder, error)
	GetBySalesQuoteID(ctx context.Context, id kernel.SalesQuoteID) (*purchaseorder.PurchaseOrder, error)
}

// SalesOrderRepository stores customer orders. The quote id is unique: this
// is the at-most-once guard of conversion.
type SalesOrderRepository interface {
	Add(ctx context.Context, aggregate *salesorder.SalesOrder) error
	Update(ctx context.Context, aggregate *salesorder.SalesOrder) error
	Get(ctx context.Context, id kernel.SalesOrderID) (*salesorder.SalesOrder, error)
	GetByQuoteID(ctx context.Context, id kernel.SalesQuoteID) (*salesorder.SalesOrder, error)
}
