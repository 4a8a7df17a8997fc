package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/guard"
)

var ErrListPurchaseOrdersQueryIsNotConstructed = errors.New(
	"ListPurchaseOrdersQuery must be created via NewListPurchaseOrdersQuery constructor",
)

// ListPurchaseOrdersQuery lists purchase orders on one side of the archive
// partition. Suppliers see the orders issued to them; customers are refused.
type ListPurchaseOrdersQuery struct {
	actor  kernel.Actor
	filter ArchiveFilter

	guard guard.ConstructorGuard
}

func NewListPurchaseOrdersQuery(actor kernel.Actor, filter ArchiveFilter) (ListPurchaseOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListPurchaseOrdersQuery{}, err
	}
	if actor.Role() == kernel.Customer {
		return ListPurchaseOrdersQuery{}, denyListing(transition.PurchaseOrder, actor.Role())
	}
	return ListPurchaseOrdersQuery{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPurchaseOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListPurchaseOrdersQueryIsNotConstructed)
}

func (q ListPurchaseOrdersQuery) Actor() kernel.Actor   { return q.actor }
func (q ListPurchaseOrdersQuery) Filter() ArchiveFilter { return q.filter }

type PurchaseOrderSummary struct {
	ID                 kernel.PurchaseOrderID
	SalesQuoteID       kernel.SalesQuoteID
	SupplierID         kernel.SupplierID
	Total              kernel.Money
	DeliveryDate       time.Time
	Status             purchaseorder.Status
	SupplierInvoiceURL *string
	ArchivedAt         *time.Time
	CreatedAt          time.Time
}
