package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/guard"
)

var ErrListSalesOrdersQueryIsNotConstructed = errors.New(
	"ListSalesOrdersQuery must be created via NewListSalesOrdersQuery constructor",
)

// ListSalesOrdersQuery lists sales orders on one side of the archive
// partition. Customers see their own orders, admins see all of them and
// suppliers are refused.
//
// Example:
//
//	query, err := NewListSalesOrdersQuery(admin, ArchiveFilterFromFlag(false))
//	if err != nil {
//	    return err
//	}
//	active, err := handler.Handle(ctx, query)
type ListSalesOrdersQuery struct {
	actor  kernel.Actor
	filter ArchiveFilter

	guard guard.ConstructorGuard
}

func NewListSalesOrdersQuery(actor kernel.Actor, filter ArchiveFilter) (ListSalesOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListSalesOrdersQuery{}, err
	}
	if actor.Role() == kernel.Supplier {
		return ListSalesOrdersQuery{}, denyListing(transition.SalesOrder, actor.Role())
	}
	return ListSalesOrdersQuery{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListSalesOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListSalesOrdersQueryIsNotConstructed)
}

func (q ListSalesOrdersQuery) Actor() kernel.Actor   { return q.actor }
func (q ListSalesOrdersQuery) Filter() ArchiveFilter { return q.filter }

type SalesOrderSummary struct {
	ID             kernel.SalesOrderID
	OrderNumber    string
	RFQID          kernel.RFQID
	QuoteID        kernel.SalesQuoteID
	CustomerID     kernel.CustomerID
	ProjectName    string
	Amount         kernel.Money
	Status         salesorder.Status
	PaymentStatus  salesorder.PaymentStatus
	TrackingNumber *string
	Carrier        *string
	PaidAt         *time.Time
	ArchivedAt     *time.Time
	CreatedAt      time.Time
}

func (s SalesOrderSummary) IsArchived() bool {
	return s.ArchivedAt != nil
}
